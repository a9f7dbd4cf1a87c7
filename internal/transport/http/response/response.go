package response

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/yourhostel/stat-syncer/internal/domain"
	"github.com/yourhostel/stat-syncer/pkg/apierror"
)

// envelope is the common JSON response wrapper.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// OK writes a 200 response with the standard envelope.
func OK(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, data)
}

// JSON writes an arbitrary status response with the standard envelope.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		log.Printf("response: encode error: %v", err)
	}
}

// Raw writes pre-encoded JSON as-is, without the envelope.
// Used by the cached statistic endpoints so responses stay
// byte-identical between cache hits and misses.
func Raw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Printf("response: write error: %v", err)
	}
}

// Error writes an error response, mapping known error types to their
// HTTP status. Unknown errors become a generic 500.
func Error(w http.ResponseWriter, err error) {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(apiErr.Status)
		w.Write(apiErr.ToJSON())
		return
	}

	var domErr *domain.CustomError
	if errors.As(err, &domErr) {
		apiErr = mapDomainError(domErr)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(apiErr.Status)
		w.Write(apiErr.ToJSON())
		return
	}

	log.Printf("response: unhandled error: %v", err)
	internal := apierror.InternalError("internal server error")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(internal.Status)
	w.Write(internal.ToJSON())
}

func mapDomainError(err *domain.CustomError) *apierror.APIError {
	switch err {
	case domain.ErrNotFound, domain.ErrUserNotFound:
		return apierror.NotFound(err.Message)
	case domain.ErrUserExists:
		return apierror.Conflict(err.Message)
	case domain.ErrBadCredential:
		return apierror.Unauthorized(err.Message)
	default:
		return apierror.InternalError(err.Message)
	}
}
