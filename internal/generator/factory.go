package generator

import (
	"fmt"
	"strings"

	"github.com/weiawesome/wes-io-live/uid-service/pkg/uid"
)

// Options describes one generator as configured for a profile. Fields that
// do not apply to Kind are ignored.
type Options struct {
	Kind        string
	Alphabet    any
	BitStrength *int
	Length      *int

	MachineID int64
	Epoch     int64
}

// New builds the generator described by opts. Random, UUID, ULID and KSUID
// generators draw their bytes from src.
func New(opts Options, src uid.EntropySource) (Generator, error) {
	if src == nil {
		src = uid.CryptoSource
	}

	switch strings.ToLower(opts.Kind) {
	case "", KindRandom:
		size, err := uid.SizeFromOptions(opts.BitStrength, opts.Length)
		if err != nil {
			return nil, err
		}
		return NewRandomGenerator(opts.Alphabet, size, src)
	case KindUUID:
		return NewUUIDGenerator(src), nil
	case KindULID:
		return NewULIDGenerator(src), nil
	case KindKSUID:
		return NewKSUIDGenerator(src), nil
	case KindNanoID:
		size := DefaultNanoIDSize
		if opts.Length != nil {
			size = *opts.Length
		}
		return NewNanoIDGenerator(size, opts.Alphabet)
	case KindCUID2:
		length := DefaultCUID2Length
		if opts.Length != nil {
			length = *opts.Length
		}
		return NewCUID2Generator(length)
	case KindSnowflake:
		return NewSnowflakeGenerator(opts.MachineID, opts.Epoch)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, opts.Kind)
	}
}
