package generator

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/weiawesome/wes-io-live/uid-service/pkg/uid"
)

const (
	ksuidEncodedSize = 27
	ksuidPayloadSize = 16
)

// KSUIDGenerator generates KSUIDs with a payload drawn from the configured
// entropy source.
type KSUIDGenerator struct {
	src uid.EntropySource
	now func() time.Time
}

func NewKSUIDGenerator(src uid.EntropySource) *KSUIDGenerator {
	return &KSUIDGenerator{src: src, now: time.Now}
}

func (g *KSUIDGenerator) Kind() string { return KindKSUID }

func (g *KSUIDGenerator) Generate(ctx context.Context) (string, error) {
	payload := make([]byte, ksuidPayloadSize)
	if _, err := io.ReadFull(uid.EntropyReader(g.src), payload); err != nil {
		return "", fmt.Errorf("failed to generate KSUID: %w", err)
	}
	id, err := ksuid.FromParts(g.now(), payload)
	if err != nil {
		return "", fmt.Errorf("failed to generate KSUID: %w", err)
	}
	return id.String(), nil
}

func (g *KSUIDGenerator) GenerateBatch(ctx context.Context, count int) ([]string, error) {
	return batch(ctx, count, g.Generate)
}

func (g *KSUIDGenerator) Validate(id string) error {
	_, err := g.parse(id)
	return err
}

func (g *KSUIDGenerator) parse(id string) (ksuid.KSUID, error) {
	if len(id) != ksuidEncodedSize {
		return ksuid.Nil, fmt.Errorf("%w: expected length %d, got %d", ErrInvalidID, ksuidEncodedSize, len(id))
	}
	parsed, err := ksuid.Parse(id)
	if err != nil {
		return ksuid.Nil, fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	return parsed, nil
}

func (g *KSUIDGenerator) Inspect(id string) (*Inspection, error) {
	parsed, err := g.parse(id)
	if err != nil {
		return nil, err
	}
	return &Inspection{
		Kind:          KindKSUID,
		Length:        len(id),
		TimestampMs:   parsed.Time().UnixMilli(),
		RandomPayload: hex.EncodeToString(parsed.Payload()),
	}, nil
}
