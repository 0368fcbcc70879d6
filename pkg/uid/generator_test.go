package uid

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSource struct{}

func (failingSource) Obtain(int) ([]byte, error) { return nil, errors.New("pool exhausted") }

type shortSource struct{}

func (shortSource) Obtain(n int) ([]byte, error) { return make([]byte, n-1), nil }

type blockingSource struct {
	release chan struct{}
}

func (s blockingSource) Obtain(n int) ([]byte, error) {
	<-s.release
	return make([]byte, n), nil
}

func TestNewDefaults(t *testing.T) {
	gen, err := New()
	require.NoError(t, err)
	assert.Same(t, Base58, gen.Alphabet())
	assert.Equal(t, Resolved{BitStrength: 128, ByteCount: 16, Length: 22}, gen.Size())
}

func TestNewErrors(t *testing.T) {
	_, err := New(WithAlphabet(42))
	assert.ErrorIs(t, err, ErrInvalidAlphabetType)

	_, err = New(WithSize(BitStrength(12)))
	assert.ErrorIs(t, err, ErrInvalidBitStrength)

	_, err = New(WithSize(Length(-3)))
	assert.ErrorIs(t, err, ErrInvalidOutputLength)
}

func TestGenerateLengthAndAlphabet(t *testing.T) {
	alphabets := []any{"hex16", "upper36", "lower36", "base58", "base62", "base66", "base71", "αβγ"}
	sizes := []Size{{}, BitStrength(8), BitStrength(64), BitStrength(256), Length(1), Length(7), Length(40)}

	for _, a := range alphabets {
		for _, s := range sizes {
			gen, err := New(WithAlphabet(a), WithSize(s))
			require.NoError(t, err)

			for i := 0; i < 50; i++ {
				id, err := gen.Generate()
				require.NoError(t, err)
				require.Equal(t, gen.Size().Length, len([]rune(id)), "%v %s", a, s)
				require.NoError(t, gen.Validate(id))
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	gen, err := New(
		WithAlphabet(Hex16),
		WithSize(Length(3)),
		WithEntropy(NewReaderSource(bytes.NewReader([]byte{0x01, 0x00}))),
	)
	require.NoError(t, err)

	id, err := gen.Generate()
	require.NoError(t, err)
	assert.Equal(t, "100", id)
}

func TestGenerateAllZeroEntropy(t *testing.T) {
	gen, err := New(WithEntropy(NewReaderSource(bytes.NewReader(make([]byte, 16)))))
	require.NoError(t, err)

	id, err := gen.Generate()
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("1", 22), id)
}

func TestGenerateUnique(t *testing.T) {
	gen, err := New(WithSize(BitStrength(64)))
	require.NoError(t, err)

	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		id, err := gen.Generate()
		require.NoError(t, err)
		_, dup := seen[id]
		require.False(t, dup, "collision on %s", id)
		seen[id] = struct{}{}
	}
}

func TestGenerateConcurrent(t *testing.T) {
	gen, err := New(WithAlphabet("base62"), WithSize(BitStrength(128)))
	require.NoError(t, err)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[string]struct{})
	)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 250; i++ {
				id, err := gen.Generate()
				assert.NoError(t, err)
				mu.Lock()
				ids[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, ids, 2000)
}

func TestGenerateEntropyFailure(t *testing.T) {
	sources := map[string]EntropySource{
		"error":     failingSource{},
		"short":     shortSource{},
		"exhausted": NewReaderSource(bytes.NewReader([]byte{1, 2, 3})),
	}
	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			gen, err := New(WithEntropy(src))
			require.NoError(t, err)

			id, err := gen.Generate()
			assert.ErrorIs(t, err, ErrEntropyUnavailable)
			assert.Empty(t, id)

			id, err = gen.GenerateAsync().Wait(context.Background())
			assert.ErrorIs(t, err, ErrEntropyUnavailable)
			assert.Empty(t, id)
		})
	}
}

func TestGenerateAsync(t *testing.T) {
	gen, err := New(WithAlphabet("hex16"), WithSize(BitStrength(64)))
	require.NoError(t, err)

	f := gen.GenerateAsync()
	select {
	case <-f.Done():
	case <-time.After(time.Second):
		t.Fatal("future did not complete")
	}

	id, err := f.Wait(context.Background())
	require.NoError(t, err)
	assert.Len(t, id, 16)
}

func TestFutureWaitContext(t *testing.T) {
	src := blockingSource{release: make(chan struct{})}
	gen, err := New(WithEntropy(src))
	require.NoError(t, err)

	f := gen.GenerateAsync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = f.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(src.release)
	id, err := f.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("1", 22), id)
}

func TestValidate(t *testing.T) {
	gen, err := New(WithAlphabet("hex16"), WithSize(Length(4)))
	require.NoError(t, err)

	assert.NoError(t, gen.Validate("0af9"))
	assert.ErrorIs(t, gen.Validate("0af"), ErrLengthMismatch)
	assert.ErrorIs(t, gen.Validate("0aF9"), ErrSymbolNotInAlphabet)
}

func TestEntropyReader(t *testing.T) {
	r := EntropyReader(NewReaderSource(bytes.NewReader([]byte{1, 2, 3, 4})))

	buf := make([]byte, 4)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte{1, 2, 3, 4}, buf)

	_, err = r.Read(buf)
	assert.ErrorIs(t, err, ErrEntropyUnavailable)
}
