// Package coins converts between human-readable coin amounts and base units.
// Base units relate to human amounts by a per-coin decimals exponent fetched
// from chain metadata; when metadata is unavailable the chain-wide default of
// 9 applies.
package coins

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultDecimals is assumed when coin metadata cannot be resolved.
const DefaultDecimals = 9

// displayPrecision bounds the human-readable precision: values are truncated
// (not rounded) to this many decimal places for display and comparison.
const displayPrecision = 10

// ToBase converts a human amount to base units: round(amount * 10^decimals).
// Negative amounts map to zero.
func ToBase(amount float64, decimals uint8) uint64 {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	return uint64(math.Round(amount * math.Pow10(int(decimals))))
}

// ToHuman converts base units back to a human amount.
func ToHuman(base uint64, decimals uint8) float64 {
	return float64(base) / math.Pow10(int(decimals))
}

// Truncate cuts a human amount down to the display precision without rounding.
func Truncate(amount float64) float64 {
	scale := math.Pow10(displayPrecision)
	return math.Trunc(amount*scale) / scale
}

// ParseAmount parses a positive decimal amount from user input.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("amount is empty")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("amount must be positive")
	}
	return v, nil
}

// Format renders base units as a human-readable amount with trailing zeros
// trimmed, keeping at least two decimal places.
func Format(base uint64, decimals uint8) string {
	human := ToHuman(base, decimals)
	s := strconv.FormatFloat(Truncate(human), 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i < 0 {
		return s + ".00"
	} else if len(s)-i-1 < 2 {
		return s + strings.Repeat("0", 2-(len(s)-i-1))
	}
	return s
}

// Symbol extracts the trailing symbol from a coin type identifier like
// "0xabc::usdx::USDX". Unparseable types are returned as-is.
func Symbol(coinType string) string {
	parts := strings.Split(coinType, "::")
	if len(parts) < 3 {
		return coinType
	}
	return parts[len(parts)-1]
}
