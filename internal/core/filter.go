package core

import "strings"

// normalizeCategory is the comparison key used by every category filter.
func normalizeCategory(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FilterByCategory returns the expenses whose category matches category,
// ignoring case and surrounding whitespace. Order is preserved.
func FilterByCategory(expenses []Expense, category string) []Expense {
	want := normalizeCategory(category)
	out := make([]Expense, 0)
	for _, e := range expenses {
		if normalizeCategory(e.Category) == want {
			out = append(out, e)
		}
	}
	return out
}

// FilterByDateRange parses start and end as YYYY-MM-DD and returns the
// expenses dated within [start, end]. A malformed bound yields
// ErrInvalidDateFormat.
func FilterByDateRange(expenses []Expense, start, end string) ([]Expense, error) {
	from, err := ParseDate(start)
	if err != nil {
		return nil, err
	}
	to, err := ParseDate(end)
	if err != nil {
		return nil, err
	}
	return FilterByDates(expenses, from, to), nil
}

// FilterByDates is FilterByDateRange over already parsed bounds.
// An inverted range matches nothing.
func FilterByDates(expenses []Expense, from, to Date) []Expense {
	out := make([]Expense, 0)
	for _, e := range expenses {
		if e.Date.Before(from.Time) || e.Date.After(to.Time) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// ParseCategoryList splits a comma-separated list into its normalized,
// non-empty entries.
func ParseCategoryList(list string) []string {
	var out []string
	for _, c := range strings.Split(list, ",") {
		if c = normalizeCategory(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// FilterByCategories returns the expenses whose category appears in the
// comma-separated list, compared case-insensitively.
func FilterByCategories(expenses []Expense, list string) []Expense {
	set := make(map[string]struct{})
	for _, c := range ParseCategoryList(list) {
		set[c] = struct{}{}
	}
	out := make([]Expense, 0)
	for _, e := range expenses {
		if _, ok := set[normalizeCategory(e.Category)]; ok {
			out = append(out, e)
		}
	}
	return out
}
