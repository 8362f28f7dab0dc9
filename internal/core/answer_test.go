package core

import (
	"errors"
	"testing"
)

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{name: "integer", input: "42", expected: 42},
		{name: "decimal", input: "3.14159", expected: 3.14159},
		{name: "negative", input: "-273.15", expected: -273.15},
		{name: "thousands separators", input: "1,299,792", expected: 1299792},
		{name: "underscores", input: "6_022", expected: 6022},
		{name: "scientific", input: "3e8", expected: 3e8},
		{name: "kilo suffix", input: "12k", expected: 12000},
		{name: "million suffix", input: "2.5m", expected: 2500000},
		{name: "billion suffix", input: "1.2B", expected: 1.2e9},
		{name: "dollar sign", input: "$189.50", expected: 189.5},
		{name: "surrounding space", input: "  7  ", expected: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNumeric(tt.input)
			if err != nil {
				t.Fatalf("ParseNumeric(%q) error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseNumeric(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseNumericRejectsText(t *testing.T) {
	for _, input := range []string{"", "   ", "abc", "NaN", "inf", "k"} {
		if _, err := ParseNumeric(input); !errors.Is(err, ErrNotANumber) {
			t.Errorf("ParseNumeric(%q) error = %v, want ErrNotANumber", input, err)
		}
	}
}

func TestNewAnswerKinds(t *testing.T) {
	a, err := NewAnswer("p1", KindNumeric, "1.5k")
	if err != nil {
		t.Fatalf("NewAnswer numeric failed: %v", err)
	}
	if a.Value != 1500 || a.Player != "p1" {
		t.Errorf("Unexpected numeric answer: %+v", a)
	}

	a, err = NewAnswer("p2", KindNameMatch, "  RTX 4090 ")
	if err != nil {
		t.Fatalf("NewAnswer name-match failed: %v", err)
	}
	if a.Text != "RTX 4090" {
		t.Errorf("Expected trimmed text, got %q", a.Text)
	}

	if _, err := NewAnswer("p3", KindNumeric, "banana"); err == nil {
		t.Error("Expected error for non-numeric answer in numeric category")
	}
}

func TestAnswerUsed(t *testing.T) {
	steal := PowerUpStealPoint
	a := Answer{Player: "p1", PowerUp: &steal}
	if !a.Used(PowerUpStealPoint) {
		t.Error("Answer should report the attached power-up")
	}
	if a.Used(PowerUpDoublePoints) {
		t.Error("Answer should not report a power-up it does not carry")
	}
	if (Answer{}).Used(PowerUpStealPoint) {
		t.Error("Answer without power-up should report none")
	}
}
