package fraction

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrMalformed is returned when string is not a binary fraction produced by
// Convert.
var ErrMalformed = errors.New("malformed binary fraction")

var half = decimal.New(5, -1)

// Reconstruct returns exact decimal value of binary fraction "0.<bits>".
// Every binary fraction has finite decimal expansion, so no precision is lost.
func Reconstruct(binary string) (decimal.Decimal, error) {
	bits, ok := strings.CutPrefix(binary, "0.")
	if !ok || len(bits) == 0 {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformed, binary)
	}

	sum, weight := decimal.Zero, half
	for i, b := range bits {
		switch b {
		case '1':
			sum = sum.Add(weight)
		case '0':
		default:
			return decimal.Zero, fmt.Errorf("%w: unexpected symbol %q at position %d in %q", ErrMalformed, b, i, binary)
		}
		weight = weight.Mul(half)
	}
	return sum, nil
}

// TruncationError returns absolute difference between d (taken as the
// shortest decimal which identifies it) and value of its binary
// representation.
func TruncationError(d float64, binary string) (decimal.Decimal, error) {
	v, err := Reconstruct(binary)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(d).Sub(v).Abs(), nil
}
