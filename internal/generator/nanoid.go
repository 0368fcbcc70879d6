package generator

import (
	"context"
	"fmt"
	"unicode/utf8"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/weiawesome/wes-io-live/uid-service/pkg/uid"
)

const (
	DefaultNanoIDSize     = 21
	DefaultNanoIDAlphabet = "_-0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NanoIDGenerator generates NanoID identifiers with configurable size and alphabet.
type NanoIDGenerator struct {
	size     int
	alphabet *uid.Alphabet
}

// NewNanoIDGenerator creates a new NanoIDGenerator.
// size must be between 1 and 256. alphabet is resolved like any other
// alphabet setting, so preset names work too; nil selects the NanoID default.
func NewNanoIDGenerator(size int, alphabet any) (*NanoIDGenerator, error) {
	if size < 1 || size > 256 {
		return nil, fmt.Errorf("nanoid size must be between 1 and 256, got %d", size)
	}
	if alphabet == nil {
		alphabet = DefaultNanoIDAlphabet
	}
	a, err := uid.ResolveAlphabet(alphabet)
	if err != nil {
		return nil, err
	}
	if a.Len() > 255 {
		return nil, fmt.Errorf("nanoid alphabet must have at most 255 symbols, got %d", a.Len())
	}
	return &NanoIDGenerator{
		size:     size,
		alphabet: a,
	}, nil
}

func (g *NanoIDGenerator) Kind() string { return KindNanoID }

func (g *NanoIDGenerator) Generate(ctx context.Context) (string, error) {
	id, err := gonanoid.Generate(g.alphabet.String(), g.size)
	if err != nil {
		return "", fmt.Errorf("failed to generate NanoID: %w", err)
	}
	return id, nil
}

func (g *NanoIDGenerator) GenerateBatch(ctx context.Context, count int) ([]string, error) {
	return batch(ctx, count, g.Generate)
}

func (g *NanoIDGenerator) Validate(id string) error {
	if n := utf8.RuneCountInString(id); n != g.size {
		return fmt.Errorf("%w: expected length %d, got %d", ErrInvalidID, g.size, n)
	}
	for _, c := range id {
		if !g.alphabet.Contains(c) {
			return fmt.Errorf("%w: character '%c' not in alphabet", ErrInvalidID, c)
		}
	}
	return nil
}

func (g *NanoIDGenerator) Inspect(id string) (*Inspection, error) {
	if err := g.Validate(id); err != nil {
		return nil, err
	}
	return &Inspection{
		Kind:     KindNanoID,
		Length:   g.size,
		Alphabet: g.alphabet.String(),
	}, nil
}
