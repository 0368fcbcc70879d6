package uid

import (
	"fmt"
	"math"
)

// DefaultBitStrength is used when neither a bit strength nor a length is given.
const DefaultBitStrength = 128

// MaxBitStrength bounds every resolved size so bits, bytes and length all
// stay representable as int.
const MaxBitStrength = math.MaxInt32 &^ 7

type sizeMode uint8

const (
	sizeDefault sizeMode = iota
	sizeBits
	sizeLength
)

// Size selects how large generated identifiers are, either by bits of
// entropy or by output length. The zero value means DefaultBitStrength.
type Size struct {
	mode  sizeMode
	value int
}

// BitStrength sizes identifiers by bits of entropy. bits must be a positive
// multiple of 8.
func BitStrength(bits int) Size { return Size{mode: sizeBits, value: bits} }

// Length sizes identifiers by their exact character length.
func Length(n int) Size { return Size{mode: sizeLength, value: n} }

// SizeFromOptions builds a Size from optional settings as they arrive from
// config files or requests. Setting both is an error.
func SizeFromOptions(bitStrength, length *int) (Size, error) {
	switch {
	case bitStrength != nil && length != nil:
		return Size{}, ErrConflictingSize
	case bitStrength != nil:
		return BitStrength(*bitStrength), nil
	case length != nil:
		return Length(*length), nil
	default:
		return Size{}, nil
	}
}

func (s Size) String() string {
	switch s.mode {
	case sizeBits:
		return fmt.Sprintf("%d bits", s.value)
	case sizeLength:
		return fmt.Sprintf("%d chars", s.value)
	default:
		return fmt.Sprintf("%d bits (default)", DefaultBitStrength)
	}
}

// Resolved is the consistent size triple derived for one alphabet.
type Resolved struct {
	BitStrength int
	ByteCount   int
	Length      int
}

// ResolveSize derives the bit strength, byte count and output length of s
// for the given alphabet.
func ResolveSize(s Size, a *Alphabet) (Resolved, error) {
	bitsPerSymbol := math.Log2(float64(a.Len()))

	switch s.mode {
	case sizeLength:
		if s.value <= 0 {
			return Resolved{}, fmt.Errorf("%w, got %d", ErrInvalidOutputLength, s.value)
		}
		bitsF := math.Ceil(float64(s.value) * bitsPerSymbol)
		if bitsF > MaxBitStrength {
			return Resolved{}, fmt.Errorf("%w, got %d (at most %d bits)", ErrInvalidOutputLength, s.value, MaxBitStrength)
		}
		bits := int(bitsF)
		return Resolved{
			BitStrength: bits,
			ByteCount:   (bits + 7) / 8,
			Length:      s.value,
		}, nil
	default:
		bits := DefaultBitStrength
		if s.mode == sizeBits {
			bits = s.value
		}
		if bits <= 0 || bits%8 != 0 {
			return Resolved{}, fmt.Errorf("%w, got %d", ErrInvalidBitStrength, bits)
		}
		if bits > MaxBitStrength {
			return Resolved{}, fmt.Errorf("%w, got %d (at most %d)", ErrInvalidBitStrength, bits, MaxBitStrength)
		}
		return Resolved{
			BitStrength: bits,
			ByteCount:   bits / 8,
			Length:      int(math.Ceil(float64(bits) / bitsPerSymbol)),
		}, nil
	}
}
