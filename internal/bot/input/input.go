// Package input normalizes free-form numeric answers from the draft
// conversation. Users type prices like "50 000$" or "50,000 USD"; the
// parsers keep the original text for display and extract a comparable
// number for filtering.
package input

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// ErrNoDigits is returned when the text contains nothing numeric.
var ErrNoDigits = errors.New("input: no digits found")

// ParsePrice extracts a price from free-form text by keeping only the
// digits. "50 000$" and "50,000" both normalize to 50000. The returned
// text is the input as typed, trimmed.
func ParsePrice(text string) (int64, string, error) {
	trimmed := strings.TrimSpace(text)

	var digits strings.Builder
	for _, r := range trimmed {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, "", ErrNoDigits
	}

	value, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0, "", err
	}
	return value, trimmed, nil
}

// ParseArea extracts an area in square meters: the first numeric token in
// the text, allowing one decimal separator. "65.5 m2" normalizes to 65.5
// without picking up the digit in the unit.
func ParseArea(text string) (float64, string, error) {
	trimmed := strings.TrimSpace(text)

	var (
		cleaned strings.Builder
		sawDot  bool
	)
loop:
	for _, r := range trimmed {
		switch {
		case unicode.IsDigit(r):
			cleaned.WriteRune(r)
		case (r == '.' || r == ',') && !sawDot && cleaned.Len() > 0:
			cleaned.WriteByte('.')
			sawDot = true
		case cleaned.Len() > 0:
			break loop
		}
	}

	s := strings.TrimSuffix(cleaned.String(), ".")
	if s == "" {
		return 0, "", ErrNoDigits
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, "", err
	}
	return value, trimmed, nil
}
