package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseNum parses a float from a form/cell value. Unparseable or missing
// values coerce to zero so arithmetic never sees NaN.
func ParseNum(val string) float64 {
	x, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}

// ParseQty parses an integer quantity, coercing anything unparseable to zero.
// A decimal entry like "3.7" truncates to 3, matching integer quantity input.
func ParseQty(val string) int {
	s := strings.TrimSpace(val)
	x, err := strconv.Atoi(s)
	if err == nil {
		return x
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

// FlexFloat decodes a JSON value that may be a number, a numeric string or
// absent. The original survey snapshots stored numerics as form strings, so
// decoding tolerates both and coerces junk to zero.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*f = 0
			return nil
		}
		*f = FlexFloat(ParseNum(str))
		return nil
	}
	var x float64
	if err := json.Unmarshal(data, &x); err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(x)
	return nil
}

// FormatGBP formats an amount as pounds sterling with thousands grouping
// and exactly 2 decimal places, e.g. £1,234.50.
func FormatGBP(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	result := "£" + groupThousands(intPart) + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts commas every 3 digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "," + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + "," + result
}

// FormatQty renders a quantity: whole numbers without decimals, fractional
// values with 2 decimal places.
func FormatQty(qty float64) string {
	if qty == math.Trunc(qty) {
		return fmt.Sprintf("%.0f", qty)
	}
	return fmt.Sprintf("%.2f", qty)
}

// yesNo renders a boolean the way the export sheets expect it.
func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// parseYesNo is the inverse of yesNo; anything other than "yes" is false.
func parseYesNo(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "yes")
}
