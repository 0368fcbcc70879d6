package uid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSize(t *testing.T) {
	tests := []struct {
		name     string
		size     Size
		alphabet *Alphabet
		want     Resolved
	}{
		{"64 bits hex", BitStrength(64), Hex16, Resolved{BitStrength: 64, ByteCount: 8, Length: 16}},
		{"default base58", Size{}, Base58, Resolved{BitStrength: 128, ByteCount: 16, Length: 22}},
		{"128 bits hex", BitStrength(128), Hex16, Resolved{BitStrength: 128, ByteCount: 16, Length: 32}},
		{"128 bits lower36", BitStrength(128), Lower36, Resolved{BitStrength: 128, ByteCount: 16, Length: 25}},
		{"256 bits base62", BitStrength(256), Base62, Resolved{BitStrength: 256, ByteCount: 32, Length: 43}},
		{"16 chars hex", Length(16), Hex16, Resolved{BitStrength: 64, ByteCount: 8, Length: 16}},
		{"10 chars base58", Length(10), Base58, Resolved{BitStrength: 59, ByteCount: 8, Length: 10}},
		{"3 chars hex", Length(3), Hex16, Resolved{BitStrength: 12, ByteCount: 2, Length: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveSize(tt.size, tt.alphabet)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveSizeErrors(t *testing.T) {
	for _, bits := range []int{0, -8, 7, 60, 129} {
		_, err := ResolveSize(BitStrength(bits), Base58)
		assert.ErrorIs(t, err, ErrInvalidBitStrength, "bits=%d", bits)
	}
	for _, n := range []int{0, -1} {
		_, err := ResolveSize(Length(n), Base58)
		assert.ErrorIs(t, err, ErrInvalidOutputLength, "length=%d", n)
	}
}

func TestResolveSizeUpperBound(t *testing.T) {
	_, err := ResolveSize(Length(math.MaxInt), Base58)
	assert.ErrorIs(t, err, ErrInvalidOutputLength)

	_, err = ResolveSize(Length(2_000_000_000), Hex16)
	assert.ErrorIs(t, err, ErrInvalidOutputLength)

	_, err = ResolveSize(BitStrength(math.MaxInt&^7), Base58)
	assert.ErrorIs(t, err, ErrInvalidBitStrength)

	_, err = ResolveSize(BitStrength(MaxBitStrength+8), Base58)
	assert.ErrorIs(t, err, ErrInvalidBitStrength)

	r, err := ResolveSize(BitStrength(MaxBitStrength), Hex16)
	require.NoError(t, err)
	assert.Equal(t, MaxBitStrength/8, r.ByteCount)
	assert.Equal(t, MaxBitStrength/4, r.Length)

	_, err = New(WithSize(Length(math.MaxInt)))
	assert.ErrorIs(t, err, ErrInvalidOutputLength)
}

func TestSizeFromOptions(t *testing.T) {
	bits, length := 64, 12

	_, err := SizeFromOptions(&bits, &length)
	assert.ErrorIs(t, err, ErrConflictingSize)

	s, err := SizeFromOptions(&bits, nil)
	require.NoError(t, err)
	assert.Equal(t, BitStrength(64), s)

	s, err = SizeFromOptions(nil, &length)
	require.NoError(t, err)
	assert.Equal(t, Length(12), s)

	s, err = SizeFromOptions(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, Size{}, s)
	assert.Equal(t, "128 bits (default)", s.String())
}

func TestIsConfigError(t *testing.T) {
	_, err := New(WithSize(BitStrength(3)))
	assert.True(t, IsConfigError(err))

	_, err = New(WithAlphabet(true))
	assert.True(t, IsConfigError(err))

	assert.False(t, IsConfigError(ErrEntropyUnavailable))
	assert.False(t, IsConfigError(nil))
}
