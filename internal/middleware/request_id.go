package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDContextKey is the key for the request ID in context
const RequestIDContextKey ContextKey = "request_id"

// RequestID adds a unique request ID to each request and echoes it back in
// the X-Request-ID header
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.NewString()

			ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
			w.Header().Set("X-Request-ID", requestID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
