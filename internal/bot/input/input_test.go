package input

import (
	"errors"
	"testing"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want int64
	}{
		{"plain", "50000", 50000},
		{"spaces", "50 000", 50000},
		{"currency suffix", "50,000$", 50000},
		{"words around", "narxi 120000 so'm", 120000},
		{"already numeric", "7", 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, text, err := ParsePrice(tc.in)
			if err != nil {
				t.Fatalf("ParsePrice(%q) returned error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParsePrice(%q) = %d, want %d", tc.in, got, tc.want)
			}
			if text == "" {
				t.Errorf("ParsePrice(%q) dropped the original text", tc.in)
			}
		})
	}
}

func TestParsePrice_NoDigits(t *testing.T) {
	_, _, err := ParsePrice("kelishiladi")
	if !errors.Is(err, ErrNoDigits) {
		t.Fatalf("got %v, want ErrNoDigits", err)
	}
}

func TestParseArea(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want float64
	}{
		{"integer", "65", 65},
		{"decimal point", "65.5", 65.5},
		{"decimal comma", "65,5", 65.5},
		{"unit suffix", "65.5 m2", 65.5},
		{"second dot ends the number", "65.5.2", 65.5},
		{"trailing dot", "65.", 65},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, _, err := ParseArea(tc.in)
			if err != nil {
				t.Fatalf("ParseArea(%q) returned error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParseArea(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseArea_NoDigits(t *testing.T) {
	_, _, err := ParseArea("katta")
	if !errors.Is(err, ErrNoDigits) {
		t.Fatalf("got %v, want ErrNoDigits", err)
	}
}
