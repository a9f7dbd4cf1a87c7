package apierror

import (
	"encoding/json"
	"net/http"
)

// APIError is an error with an associated HTTP status code.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

// ToJSON renders the error as a JSON body.
func (e *APIError) ToJSON() []byte {
	body, err := json.Marshal(map[string]interface{}{
		"success": false,
		"error":   e,
	})
	if err != nil {
		return []byte(`{"success":false,"error":{"code":"INTERNAL","message":"internal server error"}}`)
	}
	return body
}

// BadRequest returns a 400 error.
func BadRequest(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: "BAD_REQUEST", Message: message}
}

// Unauthorized returns a 401 error.
func Unauthorized(message string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Code: "UNAUTHORIZED", Message: message}
}

// NotFound returns a 404 error.
func NotFound(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: message}
}

// Conflict returns a 409 error.
func Conflict(message string) *APIError {
	return &APIError{Status: http.StatusConflict, Code: "CONFLICT", Message: message}
}

// InternalError returns a 500 error.
func InternalError(message string) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Code: "INTERNAL", Message: message}
}
