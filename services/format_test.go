package services

import (
	"encoding/json"
	"testing"
)

func TestParseNum(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect float64
	}{
		{"integer", "42", 42},
		{"decimal", "3.75", 3.75},
		{"whitespace", "  12.5  ", 12.5},
		{"negative", "-8", -8},
		{"empty", "", 0},
		{"garbage", "abc", 0},
		{"trailing text", "12abc", 0},
		{"nan", "NaN", 0},
		{"infinity", "Inf", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseNum(tt.input); got != tt.expect {
				t.Errorf("ParseNum(%q) = %v, want %v", tt.input, got, tt.expect)
			}
		})
	}
}

func TestParseQty(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect int
	}{
		{"integer", "4", 4},
		{"decimal truncates", "3.7", 3},
		{"whitespace", " 10 ", 10},
		{"empty", "", 0},
		{"garbage", "lots", 0},
		{"negative", "-2", -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseQty(tt.input); got != tt.expect {
				t.Errorf("ParseQty(%q) = %v, want %v", tt.input, got, tt.expect)
			}
		})
	}
}

func TestFlexFloat_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect float64
	}{
		{"number", `12.5`, 12.5},
		{"numeric string", `"12.5"`, 12.5},
		{"integer string", `"4"`, 4},
		{"empty string", `""`, 0},
		{"junk string", `"n/a"`, 0},
		{"null", `null`, 0},
		{"boolean coerces to zero", `true`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexFloat
			if err := json.Unmarshal([]byte(tt.input), &f); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.input, err)
			}
			if float64(f) != tt.expect {
				t.Errorf("FlexFloat(%s) = %v, want %v", tt.input, float64(f), tt.expect)
			}
		})
	}
}

func TestFormatGBP(t *testing.T) {
	tests := []struct {
		name   string
		input  float64
		expect string
	}{
		{"zero", 0, "£0.00"},
		{"small", 5, "£5.00"},
		{"with decimals", 42.5, "£42.50"},
		{"hundreds", 999.99, "£999.99"},
		{"thousands", 1234.56, "£1,234.56"},
		{"millions", 1234567.89, "£1,234,567.89"},
		{"negative", -100, "-£100.00"},
		{"exact thousand", 1000, "£1,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatGBP(tt.input); got != tt.expect {
				t.Errorf("FormatGBP(%v) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestFormatQty(t *testing.T) {
	tests := []struct {
		name   string
		input  float64
		expect string
	}{
		{"whole", 4, "4"},
		{"zero", 0, "0"},
		{"fractional", 2.5, "2.50"},
		{"small fraction", 0.25, "0.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatQty(tt.input); got != tt.expect {
				t.Errorf("FormatQty(%v) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestParseYesNo(t *testing.T) {
	tests := []struct {
		input  string
		expect bool
	}{
		{"Yes", true},
		{"yes", true},
		{" YES ", true},
		{"No", false},
		{"", false},
		{"true", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseYesNo(tt.input); got != tt.expect {
				t.Errorf("parseYesNo(%q) = %v, want %v", tt.input, got, tt.expect)
			}
		})
	}
}
