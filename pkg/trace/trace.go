package trace

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

// HeaderName is the request/response header carrying the trace ID.
const HeaderName = "X-Trace-ID"

// NewID returns a fresh trace ID.
func NewID() string {
	return uuid.NewString()
}

// FromContext 从 context 中获取 trace_id
func FromContext(ctx context.Context) string {
	if traceID, ok := ctx.Value(ctxKey{}).(string); ok {
		return traceID
	}
	return ""
}

// WithContext 将 trace_id 添加到 context 中
func WithContext(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, traceID)
}

// Ensure returns the header value when present, otherwise a new ID.
func Ensure(headerValue string) string {
	if headerValue != "" {
		return headerValue
	}
	return NewID()
}
