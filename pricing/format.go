// Package pricing formats amounts as localized en-IN currency strings.
package pricing

import (
	"math"
	"strconv"
	"strings"
)

// Formatter renders INR amounts with Indian digit grouping (thousand, then
// lakh/crore pairs). MaxFractionDigits 0 rounds to whole rupees; 2 keeps
// paise.
type Formatter struct {
	MaxFractionDigits int
}

// Format returns e.g. ₹1,23,456.78 for 123456.78.
func (f Formatter) Format(value float64) string {
	rounded := strconv.FormatFloat(math.Abs(value), 'f', f.MaxFractionDigits, 64)

	whole, frac := rounded, ""
	if i := strings.IndexByte(rounded, '.'); i >= 0 {
		whole, frac = rounded[:i], rounded[i+1:]
	}

	out := "₹" + groupIndian(whole)
	if frac != "" {
		out += "." + frac
	}
	if value < 0 {
		out = "-" + out
	}
	return out
}

// groupIndian inserts commas after the first three digits from the right,
// then every two.
func groupIndian(whole string) string {
	if len(whole) <= 3 {
		return whole
	}
	head, tail := whole[:len(whole)-3], whole[len(whole)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}

// FormatINR is the two-decimal convenience used on checkout and order views.
func FormatINR(value float64) string {
	return Formatter{MaxFractionDigits: 2}.Format(value)
}

// FormatINRWhole is the whole-rupee variant the cart summary uses.
func FormatINRWhole(value float64) string {
	return Formatter{MaxFractionDigits: 0}.Format(value)
}
