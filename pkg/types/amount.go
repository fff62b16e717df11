package types

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// Denomination constants.
// 1 EMB = 10^18 base units. All amounts inside the ledger core are in
// base units; whole-token values exist only at the configuration and
// CLI boundary.
const (
	Decimals = 18
	Symbol   = "EMB"
)

// oneCoin is 10^18, the number of base units per whole token.
var oneCoin = uint256.MustFromDecimal("1000000000000000000")

// OneCoin returns 10^18 base units as a fresh value.
func OneCoin() *uint256.Int {
	return new(uint256.Int).Set(oneCoin)
}

// Coins converts a whole-token count to base units.
func Coins(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), oneCoin)
}

// ParseAmount converts a decimal token string (e.g. "12.5") to base units.
// At most Decimals fractional digits are accepted.
func ParseAmount(s string) (*uint256.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > Decimals {
		return nil, fmt.Errorf("amount %q has more than %d fractional digits", s, Decimals)
	}

	w, err := uint256.FromDecimal(whole)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	out := new(uint256.Int)
	if _, overflow := out.MulOverflow(w, oneCoin); overflow {
		return nil, fmt.Errorf("amount %q overflows", s)
	}

	if frac != "" {
		// Right-pad the fractional part to Decimals digits.
		f, err := uint256.FromDecimal(frac + strings.Repeat("0", Decimals-len(frac)))
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q: %w", s, err)
		}
		if _, overflow := out.AddOverflow(out, f); overflow {
			return nil, fmt.Errorf("amount %q overflows", s)
		}
	}
	return out, nil
}

// FormatAmount renders base units as a decimal token string, trimming
// trailing fractional zeros.
func FormatAmount(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	whole := new(uint256.Int)
	frac := new(uint256.Int)
	whole.DivMod(v, oneCoin, frac)
	if frac.IsZero() {
		return whole.Dec()
	}
	f := fmt.Sprintf("%018s", frac.Dec())
	f = strings.TrimRight(f, "0")
	return whole.Dec() + "." + f
}
