// Package requestid assigns every request an id that travels through the
// context and comes back in the X-Request-ID response header, so a log line
// can be tied to the request that produced it.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

// RequestIDKey is the context key the id is stored under.
const RequestIDKey contextKey = "request_id"

// RequestIDHeader is the header the id is read from and echoed to.
const RequestIDHeader = "X-Request-ID"

// FromContext returns the request id, or "" when none was assigned.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// WithRequestID stores the id on the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// Middleware reuses a client-supplied X-Request-ID or mints a UUID, then
// sets it on both the response header and the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
	})
}
