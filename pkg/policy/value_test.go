package policy

import (
	"errors"
	"testing"
)

func TestParseValue_Absolute(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"h", Hour},
		{"d", Day},
		{"w", Week},
		{"m", Month},
		{"y", Year},
		{"2w", 2 * Week},
		{"10h", 10 * Hour},
		{"1.5d", 1.5 * Day},
		{"2W", 2 * Week},  // units are case-insensitive
		{"3", 3 * Day},    // bare numbers are days
		{"0.5", 0.5 * Day},
		{"", Forever},
		{"oo", Forever},
		{"∞", Forever},
		{"inf", Forever},
		{"  2w  ", 2 * Week}, // surrounding whitespace ignored
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, relative, err := ParseValue(tt.input)
			if err != nil {
				t.Fatalf("ParseValue(%q) failed: %v", tt.input, err)
			}
			if relative {
				t.Errorf("ParseValue(%q) relative = true, want false", tt.input)
			}
			if got != tt.want {
				t.Errorf("ParseValue(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseValue_Relative(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"2*", 2},
		{"2x", 2},
		{"2X", 2},
		{"1.5x", 1.5},
		{"150%", 1.5},
		{"50%", 0.5},
		{"1%", 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, relative, err := ParseValue(tt.input)
			if err != nil {
				t.Fatalf("ParseValue(%q) failed: %v", tt.input, err)
			}
			if !relative {
				t.Errorf("ParseValue(%q) relative = false, want true", tt.input)
			}
			if got != tt.want {
				t.Errorf("ParseValue(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseValue_Errors(t *testing.T) {
	inputs := []string{"abc", "x", "*", "%", "zz*", "one d", "1.2.3"}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, _, err := ParseValue(input)
			if err == nil {
				t.Fatalf("ParseValue(%q) succeeded, want error", input)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Errorf("ParseValue(%q) error type = %T, want *ParseError", input, err)
			}
		})
	}
}

func TestParseValue_ExactSeconds(t *testing.T) {
	if got, _, _ := ParseValue("2w"); got != 1209600 {
		t.Errorf("ParseValue(\"2w\") = %v, want 1209600", got)
	}
	if got, _, _ := ParseValue("150%"); got != 1.5 {
		t.Errorf("ParseValue(\"150%%\") = %v, want 1.5", got)
	}
	if got, _, _ := ParseValue(""); got != 1000*Year {
		t.Errorf("ParseValue(\"\") = %v, want %v", got, 1000*Year)
	}
}
