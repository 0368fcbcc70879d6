package uid

import (
	"fmt"
	"strings"
)

// Encode renders digits (least-significant first) as exactly length symbols
// of a.
//
// When there are more digits than length, only the lowest length digits are
// kept and the high-order ones are dropped. When there are fewer, the output
// is left-padded with the alphabet's zero symbol.
func Encode(digits []int, a *Alphabet, length int) string {
	var sb strings.Builder
	sb.Grow(length)

	n := len(digits)
	if n > length {
		n = length
	}
	for i := n; i < length; i++ {
		sb.WriteRune(a.Symbol(0))
	}
	for i := n - 1; i >= 0; i-- {
		sb.WriteRune(a.Symbol(digits[i]))
	}
	return sb.String()
}

// Decode returns the digits of id, least-significant first.
func Decode(id string, a *Alphabet) ([]int, error) {
	runes := []rune(id)
	digits := make([]int, len(runes))
	for i, r := range runes {
		d, ok := a.Digit(r)
		if !ok {
			return nil, fmt.Errorf("%w: %q at position %d", ErrSymbolNotInAlphabet, r, i)
		}
		digits[len(runes)-1-i] = d
	}
	return digits, nil
}
