package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-02-29 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2024-02-29" || d.MonthKey() != "2024-02" {
		t.Fatalf("unexpected date: %s / %s", d, d.MonthKey())
	}
	if !d.Equal(NewDate(2024, 2, 29).Time) {
		t.Fatalf("parsed date differs from NewDate: %v", d)
	}

	for _, bad := range []string{"", "2024-2-1", "01/02/2024", "2023-02-29", "2024-13-01", "yesterday"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidDateFormat) {
			t.Fatalf("ParseDate(%q) error = %v, want ErrInvalidDateFormat", bad, err)
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
	if err := (Money{Cents: -5}).Validate(); err == nil {
		t.Fatalf("expected error for negative")
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Amount:      Money{Cents: 100},
		Category:    "Food",
		Description: "ok",
		Date:        NewDate(2025, 1, 1),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	long := good
	long.Description = strings.Repeat("x", 250)
	if err := long.Validate(); err != nil {
		t.Fatalf("long description should validate, got %v", err)
	}

	bads := []struct {
		e    Expense
		want error
	}{
		{Expense{Amount: Money{Cents: 0}, Category: "c", Description: "a", Date: NewDate(2025, 1, 1)}, ErrInvalidAmount},
		{Expense{Amount: Money{Cents: 1}, Category: "  ", Description: "a", Date: NewDate(2025, 1, 1)}, ErrEmptyCategory},
		{Expense{Amount: Money{Cents: 1}, Category: "c", Description: "", Date: NewDate(2025, 1, 1)}, ErrEmptyDescription},
		{Expense{Amount: Money{Cents: 1}, Category: "c", Description: "a"}, ErrZeroDate},
	}
	for i, tc := range bads {
		if err := tc.e.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d: got %v, want %v", i, err, tc.want)
		}
	}
}

func TestNewExpenseTrims(t *testing.T) {
	e, err := NewExpense(Money{Cents: 250}, "  Food ", " Lunch  ", NewDate(2024, 1, 15))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Category != "Food" || e.Description != "Lunch" {
		t.Fatalf("fields not trimmed: %+v", e)
	}
	if _, err := NewExpense(Money{Cents: 250}, "Food", "   ", NewDate(2024, 1, 15)); !errors.Is(err, ErrEmptyDescription) {
		t.Fatalf("expected ErrEmptyDescription, got %v", err)
	}
}
