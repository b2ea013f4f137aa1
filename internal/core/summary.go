package core

import (
	"slices"
	"strings"
)

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// MonthAmount represents an amount aggregated by calendar month (YYYY-MM).
type MonthAmount struct {
	Month  string
	Amount Money
}

// Summary is a full aggregation of one record set.
type Summary struct {
	Count         int
	Total         Money
	ByCategory    []CategoryAmount // first-seen order
	ByMonth       []MonthAmount    // ascending
	TopCategories []CategoryAmount // highest total first
}

// TotalAmount sums every amount in expenses.
func TotalAmount(expenses []Expense) Money {
	var total Money
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// TotalsByCategory groups amounts by trimmed category name, keeping the order
// in which each category first appears.
func TotalsByCategory(expenses []Expense) []CategoryAmount {
	index := make(map[string]int)
	out := make([]CategoryAmount, 0)
	for _, e := range expenses {
		name := strings.TrimSpace(e.Category)
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, CategoryAmount{Name: name})
		}
		out[i].Amount = out[i].Amount.Add(e.Amount)
	}
	return out
}

// TotalsByMonth groups amounts by YYYY-MM, sorted ascending. Lexicographic
// order on the key is chronological order.
func TotalsByMonth(expenses []Expense) []MonthAmount {
	byMonth := make(map[string]Money)
	for _, e := range expenses {
		key := e.Date.MonthKey()
		byMonth[key] = byMonth[key].Add(e.Amount)
	}
	out := make([]MonthAmount, 0, len(byMonth))
	for month, amount := range byMonth {
		out = append(out, MonthAmount{Month: month, Amount: amount})
	}
	slices.SortFunc(out, func(a, b MonthAmount) int {
		return strings.Compare(a.Month, b.Month)
	})
	return out
}

// TopCategories ranks category totals from highest to lowest. Equal totals
// keep first-seen order.
func TopCategories(expenses []Expense) []CategoryAmount {
	return rankCategories(TotalsByCategory(expenses))
}

func rankCategories(totals []CategoryAmount) []CategoryAmount {
	ranked := slices.Clone(totals)
	slices.SortStableFunc(ranked, func(a, b CategoryAmount) int {
		switch {
		case a.Amount.Cents > b.Amount.Cents:
			return -1
		case a.Amount.Cents < b.Amount.Cents:
			return 1
		default:
			return 0
		}
	})
	return ranked
}

// Summarize computes every aggregation for expenses in one pass over the
// category totals.
func Summarize(expenses []Expense) Summary {
	byCategory := TotalsByCategory(expenses)
	return Summary{
		Count:         len(expenses),
		Total:         TotalAmount(expenses),
		ByCategory:    byCategory,
		ByMonth:       TotalsByMonth(expenses),
		TopCategories: rankCategories(byCategory),
	}
}
