package generator

import (
	"context"
	"errors"
)

// Kinds of generator a profile can use.
const (
	KindRandom    = "random"
	KindUUID      = "uuid"
	KindULID      = "ulid"
	KindKSUID     = "ksuid"
	KindNanoID    = "nanoid"
	KindCUID2     = "cuid2"
	KindSnowflake = "snowflake"
)

var (
	ErrInvalidID   = errors.New("invalid id")
	ErrUnknownKind = errors.New("unknown generator kind")
)

// Generator defines the interface for ID generation, validation, and inspection.
type Generator interface {
	Kind() string
	Generate(ctx context.Context) (string, error)
	GenerateBatch(ctx context.Context, count int) ([]string, error)
	Validate(id string) error
	Inspect(id string) (*Inspection, error)
}

// Inspection holds what can be read back from an ID.
type Inspection struct {
	Kind          string `json:"kind"`
	Length        int    `json:"length"`
	Alphabet      string `json:"alphabet,omitempty"`    // random/nanoid: character set used
	BitStrength   int    `json:"bit_strength,omitempty"` // random only
	TimestampMs   int64  `json:"timestamp_ms,omitempty"` // snowflake/ulid/ksuid: absolute unix ms
	MachineID     int64  `json:"machine_id,omitempty"`   // snowflake only
	Sequence      int64  `json:"sequence,omitempty"`     // snowflake only
	UUIDVersion   int    `json:"uuid_version,omitempty"`
	UUIDVariant   string `json:"uuid_variant,omitempty"`
	RandomPayload string `json:"random_payload,omitempty"` // hex-encoded random part
}

type generateFunc func(ctx context.Context) (string, error)

// batch calls generate count times, stopping early once ctx is done.
func batch(ctx context.Context, count int, generate generateFunc) ([]string, error) {
	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		id, err := generate(ctx)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
