package uid

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// EntropySource supplies cryptographically random bytes. Every call must
// return n fresh, independent bytes.
type EntropySource interface {
	Obtain(n int) ([]byte, error)
}

// CryptoSource reads from crypto/rand.
var CryptoSource EntropySource = NewReaderSource(rand.Reader)

type readerSource struct {
	r io.Reader
}

// NewReaderSource returns a source that reads from r. Tests use it with a
// fixed reader to get deterministic identifiers.
func NewReaderSource(r io.Reader) EntropySource {
	return &readerSource{r: r}
}

func (s *readerSource) Obtain(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.r, buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntropyUnavailable, err)
	}
	return buf, nil
}

// obtain calls src and makes sure a misbehaving source cannot hand back a
// short buffer.
func obtain(src EntropySource, n int) ([]byte, error) {
	buf, err := src.Obtain(n)
	if err != nil {
		if errors.Is(err, ErrEntropyUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrEntropyUnavailable, err)
	}
	if len(buf) != n {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrEntropyUnavailable, len(buf), n)
	}
	return buf, nil
}

type entropyReader struct {
	src EntropySource
}

// EntropyReader adapts src to an io.Reader.
func EntropyReader(src EntropySource) io.Reader {
	return entropyReader{src: src}
}

func (r entropyReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	buf, err := obtain(r.src, len(p))
	if err != nil {
		return 0, err
	}
	return copy(p, buf), nil
}
