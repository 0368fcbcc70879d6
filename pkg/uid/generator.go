// Package uid generates random identifiers of a fixed length over a chosen
// alphabet.
//
// Random bytes are drawn from an EntropySource, converted to digits in the
// alphabet's base and rendered to exactly the resolved length:
//
//	gen, err := uid.New(uid.WithAlphabet("base62"), uid.WithSize(uid.BitStrength(256)))
//	id, err := gen.Generate()
package uid

import (
	"context"
	"fmt"
	"unicode/utf8"
)

// Generator produces identifiers for one resolved configuration. It holds no
// mutable state and is safe for concurrent use.
type Generator struct {
	alphabet *Alphabet
	size     Resolved
	source   EntropySource
}

type options struct {
	alphabet any
	size     Size
	source   EntropySource
}

// Option configures a Generator.
type Option func(*options)

// WithAlphabet sets the alphabet: a preset name, a custom symbol string,
// a []rune or an *Alphabet. See ResolveAlphabet.
func WithAlphabet(a any) Option {
	return func(o *options) { o.alphabet = a }
}

// WithSize sets the identifier size.
func WithSize(s Size) Option {
	return func(o *options) { o.size = s }
}

// WithEntropy replaces the crypto/rand entropy source.
func WithEntropy(src EntropySource) Option {
	return func(o *options) { o.source = src }
}

// New resolves the configuration once. The result never changes afterwards.
func New(opts ...Option) (*Generator, error) {
	o := options{source: CryptoSource}
	for _, opt := range opts {
		opt(&o)
	}
	if o.source == nil {
		o.source = CryptoSource
	}

	a, err := ResolveAlphabet(o.alphabet)
	if err != nil {
		return nil, err
	}
	size, err := ResolveSize(o.size, a)
	if err != nil {
		return nil, err
	}

	return &Generator{
		alphabet: a,
		size:     size,
		source:   o.source,
	}, nil
}

// Alphabet returns the generator's alphabet.
func (g *Generator) Alphabet() *Alphabet { return g.alphabet }

// Size returns the resolved size.
func (g *Generator) Size() Resolved { return g.size }

// Generate draws fresh entropy and returns a new identifier. It fails with
// ErrEntropyUnavailable when the source fails; no identifier is produced
// in that case.
func (g *Generator) Generate() (string, error) {
	buf, err := obtain(g.source, g.size.ByteCount)
	if err != nil {
		return "", err
	}
	return g.render(buf), nil
}

func (g *Generator) render(buf []byte) string {
	return Encode(ToDigits(buf, g.alphabet.Len()), g.alphabet, g.size.Length)
}

// GenerateAsync starts a generation and returns immediately.
func (g *Generator) GenerateAsync() *Future {
	f := &Future{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.id, f.err = g.Generate()
	}()
	return f
}

// Validate checks that id has the generator's length and only uses symbols
// of its alphabet.
func (g *Generator) Validate(id string) error {
	if n := utf8.RuneCountInString(id); n != g.size.Length {
		return fmt.Errorf("%w: expected %d, got %d", ErrLengthMismatch, g.size.Length, n)
	}
	for i, r := range []rune(id) {
		if !g.alphabet.Contains(r) {
			return fmt.Errorf("%w: %q at position %d", ErrSymbolNotInAlphabet, r, i)
		}
	}
	return nil
}

// Future is the deferred result of GenerateAsync.
type Future struct {
	done chan struct{}
	id   string
	err  error
}

// Done is closed once the result is available.
func (f *Future) Done() <-chan struct{} { return f.done }

// Wait blocks until the identifier is ready or ctx ends. Ending ctx only
// stops the wait; the generation itself still runs to completion.
func (f *Future) Wait(ctx context.Context) (string, error) {
	select {
	case <-f.done:
		return f.id, f.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
