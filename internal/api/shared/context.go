package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

type ctxKey int

// traceKey is the context key under which the per-request trace ID lives.
const traceKey ctxKey = iota

// WithTraceID returns a child context carrying a freshly generated trace
// ID, used to correlate log lines and error responses for one request.
func WithTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, traceKey, newTraceID())
}

// GetTraceID returns the context's trace ID, or "" when none was set.
func GetTraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceKey).(string)
	return id
}

// newTraceID produces a 32-character hex ID. When the random source is
// unavailable it falls back to the clock so IDs stay distinct rather than
// ever repeating a constant.
func newTraceID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		now := time.Now()
		return fmt.Sprintf("%016x%016x", uint64(now.UnixNano()), uint64(now.Unix()))
	}
	return hex.EncodeToString(b[:])
}
