package uid

import (
	"fmt"
	"sort"
	"strings"
)

const (
	charsHex16   = "0123456789abcdef"
	charsUpper36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	charsLower36 = "0123456789abcdefghijklmnopqrstuvwxyz"
	charsBase58  = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	charsBase62  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	charsBase66  = charsBase62 + "-._~"
	charsBase71  = charsBase62 + "!'()*-._~"
)

// Preset alphabets. They are shared process-wide and never mutated.
var (
	Hex16   = mustPreset("hex16", charsHex16)
	Upper36 = mustPreset("upper36", charsUpper36)
	Lower36 = mustPreset("lower36", charsLower36)
	Base58  = mustPreset("base58", charsBase58)
	Base62  = mustPreset("base62", charsBase62)
	Base66  = mustPreset("base66", charsBase66)
	Base71  = mustPreset("base71", charsBase71)
)

// DefaultAlphabet is used when no alphabet is configured.
var DefaultAlphabet = Base58

var presets = map[string]*Alphabet{
	"hex16":   Hex16,
	"hex":     Hex16,
	"upper36": Upper36,
	"lower36": Lower36,
	"base58":  Base58,
	"b58":     Base58,
	"base62":  Base62,
	"b62":     Base62,
	"base66":  Base66,
	"b66":     Base66,
	"base71":  Base71,
	"b71":     Base71,
}

// Alphabet is an ordered set of symbols defining a numeral base. The symbol
// at index 0 is the zero digit.
//
// Custom alphabets are not checked for duplicate symbols. An alphabet with
// duplicates still works, but the generated identifiers are biased towards
// the repeated symbols.
type Alphabet struct {
	name    string
	symbols []rune
	index   map[rune]int
}

// NewAlphabet builds a custom alphabet from the symbols of s.
func NewAlphabet(s string) (*Alphabet, error) {
	return newAlphabet("custom", []rune(s))
}

func newAlphabet(name string, symbols []rune) (*Alphabet, error) {
	if len(symbols) < 2 {
		return nil, fmt.Errorf("%w, got %d", ErrAlphabetTooShort, len(symbols))
	}
	a := &Alphabet{
		name:    name,
		symbols: append([]rune(nil), symbols...),
		index:   make(map[rune]int, len(symbols)),
	}
	for i, r := range a.symbols {
		// first occurrence wins when decoding
		if _, ok := a.index[r]; !ok {
			a.index[r] = i
		}
	}
	return a, nil
}

func mustPreset(name, chars string) *Alphabet {
	a, err := newAlphabet(name, []rune(chars))
	if err != nil {
		panic(err)
	}
	return a
}

// ResolveAlphabet turns a loosely typed alphabet setting into an Alphabet.
// nil selects DefaultAlphabet, a string naming a preset selects that preset,
// and any other string or rune slice is used as a custom symbol set.
func ResolveAlphabet(v any) (*Alphabet, error) {
	switch a := v.(type) {
	case nil:
		return DefaultAlphabet, nil
	case *Alphabet:
		if a == nil {
			return DefaultAlphabet, nil
		}
		return a, nil
	case string:
		if p, ok := LookupPreset(a); ok {
			return p, nil
		}
		return NewAlphabet(a)
	case []rune:
		return newAlphabet("custom", a)
	default:
		return nil, fmt.Errorf("%w, got %T", ErrInvalidAlphabetType, v)
	}
}

// LookupPreset returns the preset registered under name.
func LookupPreset(name string) (*Alphabet, bool) {
	a, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	return a, ok
}

// PresetNames returns every registered preset name, aliases included, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Name returns the preset name, or "custom".
func (a *Alphabet) Name() string { return a.name }

// Len returns the number of symbols, which is the numeral base.
func (a *Alphabet) Len() int { return len(a.symbols) }

// Symbol returns the symbol for digit value i.
func (a *Alphabet) Symbol(i int) rune { return a.symbols[i] }

// Contains reports whether r is one of the alphabet's symbols.
func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

// Digit returns the value of symbol r.
func (a *Alphabet) Digit(r rune) (int, bool) {
	d, ok := a.index[r]
	return d, ok
}

func (a *Alphabet) String() string { return string(a.symbols) }
