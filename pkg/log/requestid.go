package log

import (
	"sync/atomic"

	"github.com/google/uuid"
)

const (
	headerRequestID      = "X-Request-ID"
	metadataKeyRequestID = "x-request-id"
)

// RequestIDFunc produces a request ID when the caller did not send one.
type RequestIDFunc func() (string, error)

var requestIDFunc atomic.Pointer[RequestIDFunc]

// SetRequestIDFunc replaces the request ID source used by the middlewares.
// Passing nil restores the UUID default.
func SetRequestIDFunc(fn RequestIDFunc) {
	if fn == nil {
		requestIDFunc.Store(nil)
		return
	}
	requestIDFunc.Store(&fn)
}

// NewRequestID returns a fresh request ID, falling back to a UUID if the
// configured source fails.
func NewRequestID() string {
	if fn := requestIDFunc.Load(); fn != nil {
		if id, err := (*fn)(); err == nil && id != "" {
			return id
		}
	}
	return uuid.New().String()
}
