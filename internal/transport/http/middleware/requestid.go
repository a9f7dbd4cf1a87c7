package middleware

import (
	"context"
	"net/http"

	"github.com/yourhostel/stat-syncer/pkg/uid"
)

// RequestIDKey is the context key for request ID.
type contextKey string

const RequestIDKey contextKey = "request_id"

// maxRequestIDLength caps inbound X-Request-ID values. The id ends up
// in the access log and on the authenticated principal, so an
// oversized client value is replaced rather than carried along.
const maxRequestIDLength = 64

// RequestID is a middleware that attaches a unique request ID to each
// request. A sane client-supplied X-Request-ID is kept so callers can
// correlate; anything else gets a fresh id.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uid.New()
		}

		// Echo to the response header
		w.Header().Set("X-Request-ID", requestID)

		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the request ID from context.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}
