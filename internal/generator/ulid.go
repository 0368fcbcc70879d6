package generator

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/weiawesome/wes-io-live/uid-service/pkg/uid"
)

// ULIDGenerator generates ULIDs whose random part comes from the configured
// entropy source.
type ULIDGenerator struct {
	src uid.EntropySource
	now func() time.Time
}

func NewULIDGenerator(src uid.EntropySource) *ULIDGenerator {
	return &ULIDGenerator{src: src, now: time.Now}
}

func (g *ULIDGenerator) Kind() string { return KindULID }

func (g *ULIDGenerator) Generate(ctx context.Context) (string, error) {
	id, err := ulid.New(ulid.Timestamp(g.now()), uid.EntropyReader(g.src))
	if err != nil {
		return "", fmt.Errorf("failed to generate ULID: %w", err)
	}
	return id.String(), nil
}

func (g *ULIDGenerator) GenerateBatch(ctx context.Context, count int) ([]string, error) {
	return batch(ctx, count, g.Generate)
}

func (g *ULIDGenerator) Validate(id string) error {
	if len(id) != ulid.EncodedSize {
		return fmt.Errorf("%w: expected length %d, got %d", ErrInvalidID, ulid.EncodedSize, len(id))
	}
	if _, err := ulid.ParseStrict(id); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	return nil
}

func (g *ULIDGenerator) Inspect(id string) (*Inspection, error) {
	if err := g.Validate(id); err != nil {
		return nil, err
	}
	parsed := ulid.MustParseStrict(id)
	return &Inspection{
		Kind:          KindULID,
		Length:        len(id),
		TimestampMs:   int64(parsed.Time()),
		RandomPayload: hex.EncodeToString(parsed.Entropy()),
	}, nil
}
