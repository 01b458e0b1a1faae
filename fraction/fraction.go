// Package fraction converts decimal fractions into their binary positional
// representation by repeated multiply-and-floor digit extraction.
package fraction

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// Radix of produced representation.
	Radix = 2
	// DigitLimit is maximum number of fractional digits produced for a single
	// value. Representation is truncated after that, never rounded.
	DigitLimit = 8
)

// ErrOutOfRange is returned for values which are not in [0, 1).
var ErrOutOfRange = errors.New("value is not a fraction in [0, 1)")

// Converter produces truncated binary representations. It keeps no state
// between calls and is safe for concurrent use.
type Converter struct {
	limit int
}

// New returns converter producing at most limit fractional digits.
func New(limit int) *Converter {
	if limit <= 0 {
		// this should never happen
		panic(fmt.Sprintf("invalid digit limit %d", limit))
	}
	return &Converter{limit: limit}
}

// Limit returns maximum number of fractional digits converter produces.
func (c *Converter) Limit() int {
	return c.limit
}

// Step describes extraction of a single digit.
type Step struct {
	// Product is remainder multiplied by radix, its integer part is the digit.
	Product   float64
	Digit     int
	Remainder float64
}

// Convert returns representation of d in form "0.<digits>". Extraction stops
// after the digit which leaves zero remainder, so exact fractions produce
// short strings (0.5 -> "0.1") and zero produces "0.0". Otherwise exactly
// Limit() digits are produced and the rest is dropped.
func (c *Converter) Convert(d float64) (string, error) {
	steps, err := c.Steps(d)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(2 + len(steps))
	sb.WriteString("0.")
	for _, s := range steps {
		sb.WriteString(strconv.FormatInt(int64(s.Digit), Radix))
	}
	return sb.String(), nil
}

// Steps returns digit extraction steps Convert goes through for d.
func (c *Converter) Steps(d float64) ([]Step, error) {
	if math.IsNaN(d) || d < 0 || d >= 1 {
		return nil, fmt.Errorf("%w: %v", ErrOutOfRange, d)
	}

	steps := make([]Step, 0, c.limit)
	rem := d
	for range c.limit {
		p := rem * Radix
		digit := math.Floor(p)
		rem = p - digit
		steps = append(steps, Step{Product: p, Digit: int(digit), Remainder: rem})
		if rem == 0 {
			break
		}
	}
	return steps, nil
}
