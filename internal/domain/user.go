package domain

import (
	"time"
)

// User is a stored credential record. PasswordHash never leaves the
// service layer; handlers return only Username and Roles.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
}

// Common errors
var (
	ErrNotFound      = &CustomError{Code: "NOT_FOUND", Message: "Resource not found"}
	ErrUserNotFound  = &CustomError{Code: "USER_NOT_FOUND", Message: "User not found"}
	ErrUserExists    = &CustomError{Code: "USER_EXISTS", Message: "Username already taken"}
	ErrBadCredential = &CustomError{Code: "BAD_CREDENTIALS", Message: "Invalid username or password"}
)

// CustomError represents a custom error.
type CustomError struct {
	Code    string
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}
