package generator

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

const (
	timestampBits = 41
	machineIDBits = 10
	sequenceBits  = 12

	maxMachineID = (1 << machineIDBits) - 1 // 1023
	maxSequence  = (1 << sequenceBits) - 1  // 4095

	machineIDShift = sequenceBits
	timestampShift = sequenceBits + machineIDBits
)

// SnowflakeGenerator generates 64-bit snowflake IDs. Unlike the random
// kinds it keeps state, so calls are serialised.
type SnowflakeGenerator struct {
	mu        sync.Mutex
	epoch     int64 // custom epoch in ms
	machineID int64 // 10-bit machine ID
	sequence  int64 // 12-bit sequence
	lastTime  int64 // last generation timestamp in ms
	now       func() int64
}

// NewSnowflakeGenerator creates a new SnowflakeGenerator.
// machineID must be in range [0, 1023].
// epoch is the custom epoch in unix milliseconds.
func NewSnowflakeGenerator(machineID int64, epoch int64) (*SnowflakeGenerator, error) {
	if machineID < 0 || machineID > maxMachineID {
		return nil, fmt.Errorf("machine_id must be between 0 and %d, got %d", maxMachineID, machineID)
	}
	return &SnowflakeGenerator{
		epoch:     epoch,
		machineID: machineID,
		now:       func() int64 { return time.Now().UnixMilli() },
	}, nil
}

func (g *SnowflakeGenerator) Kind() string { return KindSnowflake }

func (g *SnowflakeGenerator) Generate(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generateLocked()
}

func (g *SnowflakeGenerator) GenerateBatch(ctx context.Context, count int) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return batch(ctx, count, func(context.Context) (string, error) {
		return g.generateLocked()
	})
}

// generateLocked must be called with g.mu held.
func (g *SnowflakeGenerator) generateLocked() (string, error) {
	now := g.now()
	if now < g.epoch {
		return "", fmt.Errorf("current time is before custom epoch")
	}
	if now < g.lastTime {
		return "", fmt.Errorf("clock moved backwards: current=%d, last=%d", now, g.lastTime)
	}

	if now == g.lastTime {
		g.sequence = (g.sequence + 1) & maxSequence
		if g.sequence == 0 {
			// Sequence exhausted, wait for next millisecond
			for now <= g.lastTime {
				now = g.now()
			}
		}
	} else {
		g.sequence = 0
	}
	g.lastTime = now

	id := ((now - g.epoch) << timestampShift) | (g.machineID << machineIDShift) | g.sequence
	return strconv.FormatInt(id, 10), nil
}

func (g *SnowflakeGenerator) decode(id string) (ts, mid, seq int64, err error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: invalid integer format", ErrInvalidID)
	}
	if n < 0 {
		return 0, 0, 0, fmt.Errorf("%w: id must be a positive integer", ErrInvalidID)
	}
	ts = (n>>timestampShift)&((1<<timestampBits)-1) + g.epoch
	mid = (n >> machineIDShift) & maxMachineID
	seq = n & maxSequence
	return ts, mid, seq, nil
}

func (g *SnowflakeGenerator) Validate(id string) error {
	ts, _, _, err := g.decode(id)
	if err != nil {
		return err
	}
	if ts > g.now() {
		return fmt.Errorf("%w: timestamp is in the future", ErrInvalidID)
	}
	return nil
}

func (g *SnowflakeGenerator) Inspect(id string) (*Inspection, error) {
	ts, mid, seq, err := g.decode(id)
	if err != nil {
		return nil, err
	}
	return &Inspection{
		Kind:        KindSnowflake,
		Length:      len(id),
		TimestampMs: ts,
		MachineID:   mid,
		Sequence:    seq,
	}, nil
}
