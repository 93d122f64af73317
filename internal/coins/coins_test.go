package coins

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToBase(t *testing.T) {
	require.Equal(t, uint64(50_000_000_000), ToBase(50, 9))
	require.Equal(t, uint64(1_500_000), ToBase(1.5, 6))
	require.Equal(t, uint64(0), ToBase(0, 9))
	require.Equal(t, uint64(0), ToBase(-3, 9))
}

// A coin amount converted to base units and back with the same decimals
// recovers the original value up to the display precision (truncation).
func TestRoundTrip(t *testing.T) {
	amounts := []float64{1, 0.5, 42.123456789, 1234.25, 0.000000001}
	for _, dec := range []uint8{6, 9} {
		for _, amount := range amounts {
			base := ToBase(amount, dec)
			back := ToHuman(base, dec)
			require.Equal(t, Truncate(amount), Truncate(back),
				"amount %v decimals %d", amount, dec)
		}
	}
}

func TestTruncate_DoesNotRound(t *testing.T) {
	// 10 decimal places, the 11th digit is dropped not rounded up.
	require.Equal(t, 0.9999999999, Truncate(0.99999999999))
}

func TestParseAmount(t *testing.T) {
	v, err := ParseAmount(" 12.5 ")
	require.NoError(t, err)
	require.Equal(t, 12.5, v)

	for _, s := range []string{"", "abc", "0", "-1", "NaN", "Inf"} {
		_, err := ParseAmount(s)
		require.Error(t, err, "input %q", s)
	}
}

func TestFormat(t *testing.T) {
	require.Equal(t, "50.00", Format(50_000_000_000, 9))
	require.Equal(t, "1.50", Format(1_500_000, 6))
	require.Equal(t, "0.00", Format(0, 9))
}

func TestSymbol(t *testing.T) {
	require.Equal(t, "USDX", Symbol("0xabc::usdx::USDX"))
	require.Equal(t, "weird", Symbol("weird"))
}
