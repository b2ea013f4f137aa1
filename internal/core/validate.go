package core

import (
	"fmt"
	"strings"
)

// Input validators used by interactive front ends. Each returns the parsed
// value or the reason it was rejected; retrying is left to the caller.

// ValidateAmount accepts a strictly positive decimal amount.
func ValidateAmount(input string) (Money, error) {
	m, err := ParseMoney(input)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q must be a positive number", ErrInvalidAmount, strings.TrimSpace(input))
	}
	return m, nil
}

// ValidateCategory accepts any non-blank category and returns it trimmed.
func ValidateCategory(input string) (string, error) {
	v := strings.TrimSpace(input)
	if v == "" {
		return "", ErrEmptyCategory
	}
	return v, nil
}

// ValidateDescription accepts any non-blank description and returns it trimmed.
func ValidateDescription(input string) (string, error) {
	v := strings.TrimSpace(input)
	if v == "" {
		return "", ErrEmptyDescription
	}
	return v, nil
}

// ValidateDate parses a YYYY-MM-DD date. Blank input means today.
func ValidateDate(input string) (Date, error) {
	if strings.TrimSpace(input) == "" {
		return Today(), nil
	}
	return ParseDate(input)
}
