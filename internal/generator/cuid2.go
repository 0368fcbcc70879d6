package generator

import (
	"context"
	"fmt"

	"github.com/nrednav/cuid2"
)

const DefaultCUID2Length = 24

// CUID2Generator generates CUID2 (Collision-resistant Unique IDentifier) IDs.
type CUID2Generator struct {
	length   int
	generate func() string
}

// NewCUID2Generator creates a new CUID2Generator with the given length.
// length must be between 2 and 32.
func NewCUID2Generator(length int) (*CUID2Generator, error) {
	if length < 2 || length > 32 {
		return nil, fmt.Errorf("cuid2 length must be between 2 and 32, got %d", length)
	}
	gen, err := cuid2.Init(cuid2.WithLength(length))
	if err != nil {
		return nil, fmt.Errorf("failed to init CUID2 generator: %w", err)
	}
	return &CUID2Generator{
		length:   length,
		generate: gen,
	}, nil
}

func (g *CUID2Generator) Kind() string { return KindCUID2 }

func (g *CUID2Generator) Generate(ctx context.Context) (string, error) {
	return g.generate(), nil
}

func (g *CUID2Generator) GenerateBatch(ctx context.Context, count int) ([]string, error) {
	return batch(ctx, count, g.Generate)
}

func (g *CUID2Generator) Validate(id string) error {
	if len(id) != g.length {
		return fmt.Errorf("%w: expected length %d, got %d", ErrInvalidID, g.length, len(id))
	}
	if !cuid2.IsCuid(id) {
		return fmt.Errorf("%w: invalid CUID2 format", ErrInvalidID)
	}
	return nil
}

func (g *CUID2Generator) Inspect(id string) (*Inspection, error) {
	if err := g.Validate(id); err != nil {
		return nil, err
	}
	return &Inspection{
		Kind:   KindCUID2,
		Length: len(id),
	}, nil
}
