package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/weiawesome/wes-io-live/uid-service/internal/generator"
	"github.com/weiawesome/wes-io-live/uid-service/internal/ledger"
	"github.com/weiawesome/wes-io-live/uid-service/pkg/log"
	"github.com/weiawesome/wes-io-live/uid-service/pkg/uid"
)

var (
	ErrUnknownProfile    = errors.New("unknown profile")
	ErrInvalidBatchCount = errors.New("invalid batch count")
	ErrCollision         = errors.New("could not issue a unique id")
	ErrSizeTooLarge      = errors.New("requested id size too large")
)

const (
	DefaultMaxBatch       = 1000
	DefaultMaxAttempts    = 3
	DefaultMaxBitStrength = 4096
)

type idService struct {
	profiles    map[string]*Profile
	ledger      ledger.Ledger
	source      uid.EntropySource
	maxBatch    int
	maxAttempts int
	maxBits     int
}

// Options tunes NewIDService. Zero values select the defaults.
type Options struct {
	Ledger      ledger.Ledger
	Source      uid.EntropySource
	MaxBatch    int
	MaxAttempts int

	// MaxBitStrength caps the entropy of caller-sized custom IDs.
	MaxBitStrength int
}

// NewIDService creates a new ID service over the given profiles.
func NewIDService(profiles map[string]*Profile, opts Options) IDService {
	s := &idService{
		profiles:    profiles,
		ledger:      opts.Ledger,
		source:      opts.Source,
		maxBatch:    opts.MaxBatch,
		maxAttempts: opts.MaxAttempts,
		maxBits:     opts.MaxBitStrength,
	}
	if s.ledger == nil {
		s.ledger = ledger.Nop()
	}
	if s.source == nil {
		s.source = uid.CryptoSource
	}
	if s.maxBatch <= 0 {
		s.maxBatch = DefaultMaxBatch
	}
	if s.maxAttempts <= 0 {
		s.maxAttempts = DefaultMaxAttempts
	}
	if s.maxBits <= 0 {
		s.maxBits = DefaultMaxBitStrength
	}
	return s
}

func (s *idService) profile(name string) (*Profile, error) {
	p, ok := s.profiles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return p, nil
}

func (s *idService) checkCount(count int) error {
	if count < 1 || count > s.maxBatch {
		return fmt.Errorf("%w: must be between 1 and %d, got %d", ErrInvalidBatchCount, s.maxBatch, count)
	}
	return nil
}

func (s *idService) Generate(ctx context.Context, profile string) (string, error) {
	p, err := s.profile(profile)
	if err != nil {
		return "", err
	}
	if p.Unique {
		return s.generateUnique(ctx, p)
	}
	return p.Generator.Generate(ctx)
}

// generateUnique regenerates on ledger collisions. Generation errors are
// returned at once; only collisions are retried.
func (s *idService) generateUnique(ctx context.Context, p *Profile) (string, error) {
	ctx = log.WithProfile(ctx, p.Name, p.Generator.Kind())
	l := log.Ctx(ctx)

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		id, err := p.Generator.Generate(ctx)
		if err != nil {
			return "", err
		}
		ok, err := s.ledger.Claim(ctx, p.Name, id)
		if err != nil {
			return "", err
		}
		if ok {
			return id, nil
		}
		l.Warn().Int(log.FieldAttempt, attempt).Msg("issued id collided, regenerating")
	}
	return "", fmt.Errorf("%w after %d attempts", ErrCollision, s.maxAttempts)
}

func (s *idService) GenerateBatch(ctx context.Context, profile string, count int) ([]string, error) {
	if err := s.checkCount(count); err != nil {
		return nil, err
	}
	p, err := s.profile(profile)
	if err != nil {
		return nil, err
	}
	if !p.Unique {
		return p.Generator.GenerateBatch(ctx, count)
	}

	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		id, err := s.generateUnique(ctx, p)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *idService) GenerateCustom(ctx context.Context, req *CustomRequest) ([]string, error) {
	count := req.Count
	if count == 0 {
		count = 1
	}
	if err := s.checkCount(count); err != nil {
		return nil, err
	}

	size, err := uid.SizeFromOptions(req.BitStrength, req.Length)
	if err != nil {
		return nil, err
	}
	gen, err := generator.NewRandomGenerator(req.Alphabet, size, s.source)
	if err != nil {
		return nil, err
	}
	if bits := gen.Size().BitStrength; bits > s.maxBits {
		return nil, fmt.Errorf("%w: %d bits, at most %d", ErrSizeTooLarge, bits, s.maxBits)
	}

	l := log.Ctx(ctx)
	l.Debug().
		Str(log.FieldAlphabet, gen.Alphabet().Name()).
		Int(log.FieldCount, count).
		Msg("custom generation")

	return gen.GenerateBatch(ctx, count)
}

func (s *idService) Validate(ctx context.Context, profile, id string) error {
	p, err := s.profile(profile)
	if err != nil {
		return err
	}
	return p.Generator.Validate(id)
}

func (s *idService) Inspect(ctx context.Context, profile, id string) (*generator.Inspection, error) {
	p, err := s.profile(profile)
	if err != nil {
		return nil, err
	}
	return p.Generator.Inspect(id)
}

func (s *idService) Profiles() []ProfileInfo {
	infos := make([]ProfileInfo, 0, len(s.profiles))
	for _, p := range s.profiles {
		infos = append(infos, p.Info())
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}
