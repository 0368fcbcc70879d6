package generator

import (
	"context"
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/weiawesome/wes-io-live/uid-service/pkg/uid"
)

// RandomGenerator produces fixed-length random IDs over a configurable
// alphabet.
type RandomGenerator struct {
	gen *uid.Generator
}

// NewRandomGenerator creates a RandomGenerator. alphabet accepts anything
// uid.ResolveAlphabet does.
func NewRandomGenerator(alphabet any, size uid.Size, src uid.EntropySource) (*RandomGenerator, error) {
	gen, err := uid.New(uid.WithAlphabet(alphabet), uid.WithSize(size), uid.WithEntropy(src))
	if err != nil {
		return nil, err
	}
	return &RandomGenerator{gen: gen}, nil
}

func (g *RandomGenerator) Kind() string { return KindRandom }

// Generate waits for the ID on ctx. Cancelling ctx abandons the wait but not
// the entropy read already in flight.
func (g *RandomGenerator) Generate(ctx context.Context) (string, error) {
	return g.gen.GenerateAsync().Wait(ctx)
}

func (g *RandomGenerator) GenerateBatch(ctx context.Context, count int) ([]string, error) {
	return batch(ctx, count, g.Generate)
}

func (g *RandomGenerator) Validate(id string) error {
	if err := g.gen.Validate(id); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidID, err)
	}
	return nil
}

func (g *RandomGenerator) Inspect(id string) (*Inspection, error) {
	if err := g.Validate(id); err != nil {
		return nil, err
	}
	a := g.gen.Alphabet()
	digits, err := uid.Decode(id, a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidID, err)
	}

	value := new(big.Int)
	base := big.NewInt(int64(a.Len()))
	for i := len(digits) - 1; i >= 0; i-- {
		value.Mul(value, base)
		value.Add(value, big.NewInt(int64(digits[i])))
	}

	return &Inspection{
		Kind:          KindRandom,
		Length:        utf8.RuneCountInString(id),
		Alphabet:      a.String(),
		BitStrength:   g.gen.Size().BitStrength,
		RandomPayload: value.Text(16),
	}, nil
}

// Size returns the resolved size of the generated IDs.
func (g *RandomGenerator) Size() uid.Resolved { return g.gen.Size() }

// Alphabet returns the alphabet IDs are drawn from.
func (g *RandomGenerator) Alphabet() *uid.Alphabet { return g.gen.Alphabet() }
