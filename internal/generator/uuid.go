package generator

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/weiawesome/wes-io-live/uid-service/pkg/uid"
)

// UUIDGenerator generates UUID v4 IDs from the configured entropy source.
type UUIDGenerator struct {
	src uid.EntropySource
}

func NewUUIDGenerator(src uid.EntropySource) *UUIDGenerator {
	return &UUIDGenerator{src: src}
}

func (g *UUIDGenerator) Kind() string { return KindUUID }

func (g *UUIDGenerator) Generate(ctx context.Context) (string, error) {
	id, err := uuid.NewRandomFromReader(uid.EntropyReader(g.src))
	if err != nil {
		return "", fmt.Errorf("failed to generate UUID: %w", err)
	}
	return id.String(), nil
}

func (g *UUIDGenerator) GenerateBatch(ctx context.Context, count int) ([]string, error) {
	return batch(ctx, count, g.Generate)
}

func (g *UUIDGenerator) Validate(id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	if parsed.Version() != 4 {
		return fmt.Errorf("%w: expected UUID v4, got v%d", ErrInvalidID, parsed.Version())
	}
	return nil
}

func (g *UUIDGenerator) Inspect(id string) (*Inspection, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	return &Inspection{
		Kind:        KindUUID,
		Length:      len(id),
		UUIDVersion: int(parsed.Version()),
		UUIDVariant: parsed.Variant().String(),
	}, nil
}
