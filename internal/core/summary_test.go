package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAggregationScenario(t *testing.T) {
	all := sampleExpenses()

	if got := TotalAmount(all); got.Cents != 5950 {
		t.Fatalf("TotalAmount = %s, want 59.50", got)
	}

	wantCats := []CategoryAmount{
		{Name: "Food", Amount: Money{Cents: 1950}},
		{Name: "Transport", Amount: Money{Cents: 4000}},
	}
	if diff := cmp.Diff(wantCats, TotalsByCategory(all)); diff != "" {
		t.Fatalf("TotalsByCategory mismatch (-want +got):\n%s", diff)
	}

	wantMonths := []MonthAmount{
		{Month: "2024-01", Amount: Money{Cents: 1950}},
		{Month: "2024-02", Amount: Money{Cents: 4000}},
	}
	if diff := cmp.Diff(wantMonths, TotalsByMonth(all)); diff != "" {
		t.Fatalf("TotalsByMonth mismatch (-want +got):\n%s", diff)
	}

	wantTop := []CategoryAmount{
		{Name: "Transport", Amount: Money{Cents: 4000}},
		{Name: "Food", Amount: Money{Cents: 1950}},
	}
	if diff := cmp.Diff(wantTop, TopCategories(all)); diff != "" {
		t.Fatalf("TopCategories mismatch (-want +got):\n%s", diff)
	}
}

func TestTotalsByCategoryTrimsNames(t *testing.T) {
	all := []Expense{
		{Amount: Money{Cents: 100}, Category: " Food", Date: NewDate(2024, 1, 1)},
		{Amount: Money{Cents: 200}, Category: "Food ", Date: NewDate(2024, 1, 2)},
	}
	got := TotalsByCategory(all)
	if len(got) != 1 || got[0].Name != "Food" || got[0].Amount.Cents != 300 {
		t.Fatalf("unexpected totals: %+v", got)
	}
}

func TestTopCategoriesStableOnTies(t *testing.T) {
	all := []Expense{
		{Amount: Money{Cents: 500}, Category: "B", Date: NewDate(2024, 1, 1)},
		{Amount: Money{Cents: 900}, Category: "C", Date: NewDate(2024, 1, 1)},
		{Amount: Money{Cents: 500}, Category: "A", Date: NewDate(2024, 1, 1)},
		{Amount: Money{Cents: 500}, Category: "D", Date: NewDate(2024, 1, 1)},
	}
	var names []string
	for _, c := range TopCategories(all) {
		names = append(names, c.Name)
	}
	if diff := cmp.Diff([]string{"C", "B", "A", "D"}, names); diff != "" {
		t.Fatalf("tie order mismatch (-want +got):\n%s", diff)
	}
}

func TestTotalsAgree(t *testing.T) {
	sets := [][]Expense{
		nil,
		sampleExpenses(),
		{
			{Amount: Money{Cents: 1}, Category: "x", Date: NewDate(2023, 12, 31)},
			{Amount: Money{Cents: 10}, Category: "y", Date: NewDate(2024, 1, 1)},
			{Amount: Money{Cents: 33}, Category: "x", Date: NewDate(2024, 1, 1)},
			{Amount: Money{Cents: 1}, Category: "z", Date: NewDate(2025, 6, 15)},
		},
	}
	for i, set := range sets {
		total := TotalAmount(set)
		var byCat, byMonth Money
		for _, c := range TotalsByCategory(set) {
			byCat = byCat.Add(c.Amount)
		}
		for _, m := range TotalsByMonth(set) {
			byMonth = byMonth.Add(m.Amount)
		}
		if byCat != total || byMonth != total {
			t.Fatalf("set %d: total %s, by category %s, by month %s", i, total, byCat, byMonth)
		}
	}
}

func TestTotalsByMonthSortedAcrossYears(t *testing.T) {
	all := []Expense{
		{Amount: Money{Cents: 1}, Category: "x", Date: NewDate(2024, 3, 1)},
		{Amount: Money{Cents: 1}, Category: "x", Date: NewDate(2023, 11, 1)},
		{Amount: Money{Cents: 1}, Category: "x", Date: NewDate(2024, 1, 1)},
	}
	var months []string
	for _, m := range TotalsByMonth(all) {
		months = append(months, m.Month)
	}
	if diff := cmp.Diff([]string{"2023-11", "2024-01", "2024-03"}, months); diff != "" {
		t.Fatalf("month order mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleExpenses())
	if s.Count != 3 || s.Total.Cents != 5950 {
		t.Fatalf("unexpected summary header: %+v", s)
	}
	if len(s.ByCategory) != 2 || s.ByCategory[0].Name != "Food" {
		t.Fatalf("unexpected by-category: %+v", s.ByCategory)
	}
	if len(s.TopCategories) != 2 || s.TopCategories[0].Name != "Transport" {
		t.Fatalf("unexpected top categories: %+v", s.TopCategories)
	}
	if len(s.ByMonth) != 2 || s.ByMonth[0].Month != "2024-01" {
		t.Fatalf("unexpected by-month: %+v", s.ByMonth)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Count != 0 || s.Total.Cents != 0 || len(s.ByCategory) != 0 || len(s.ByMonth) != 0 || len(s.TopCategories) != 0 {
		t.Fatalf("expected empty summary, got %+v", s)
	}
}
