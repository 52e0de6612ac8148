package inter

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/params"
)

// HONEY and ETH both use 18 decimals, so the same helpers serve both.
var ether = big.NewInt(params.Ether)

// HoneyToWei converts a whole number of tokens into wei.
func HoneyToWei(tokens uint64) *big.Int {
	return new(big.Int).Mul(new(big.Int).SetUint64(tokens), ether)
}

// ParseAmount converts a decimal token string ("2.3", "0.001") into wei.
// Amounts with more than 18 fractional digits or negative amounts are rejected.
func ParseAmount(s string) (*big.Int, error) {
	r, ok := new(big.Rat).SetString(strings.TrimSpace(s))
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	if r.Sign() < 0 {
		return nil, fmt.Errorf("negative amount %q", s)
	}
	r.Mul(r, new(big.Rat).SetInt(ether))
	if !r.IsInt() {
		return nil, fmt.Errorf("amount %q has more than 18 decimals", s)
	}
	return new(big.Int).Set(r.Num()), nil
}

// WeiToFloat converts a wei amount to tokens as the nearest float64.
// A nil amount is treated as zero.
func WeiToFloat(wei *big.Int) float64 {
	if wei == nil {
		return 0
	}
	f, _ := new(big.Rat).SetFrac(wei, ether).Float64()
	return f
}

// FormatAmount renders a wei amount as tokens with a fixed number of decimals.
func FormatAmount(wei *big.Int, decimals int) string {
	if wei == nil {
		wei = new(big.Int)
	}
	return new(big.Rat).SetFrac(wei, ether).FloatString(decimals)
}

// CopyAmount returns an independent copy of a wei amount, never nil.
func CopyAmount(wei *big.Int) *big.Int {
	if wei == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(wei)
}
