// Package server provides the HTTP REST API for TalentBridge.
package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrEmailAlreadyExists indicates email is already registered and verified
type ErrEmailAlreadyExists struct {
	Email    string
	Provider string
}

func (e *ErrEmailAlreadyExists) Error() string {
	if e.Provider != "" && e.Provider != "local" {
		return fmt.Sprintf("this email is already registered using %s, please login using %s", e.Provider, e.Provider)
	}
	return "email already registered"
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrEmailNotVerified indicates the account exists but has not confirmed
// its email address yet
type ErrEmailNotVerified struct{}

func (e *ErrEmailNotVerified) Error() string {
	return "please verify your email first"
}

// ErrInvalidToken indicates a verification or reset token that is unknown,
// expired, or already used
type ErrInvalidToken struct {
	Purpose string // "verification" or "reset"
}

func (e *ErrInvalidToken) Error() string {
	return fmt.Sprintf("%s token invalid or expired", e.Purpose)
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrReportNotFound indicates a report does not exist or is not visible to
// the requester
type ErrReportNotFound struct {
	ReportID uuid.UUID
}

func (e *ErrReportNotFound) Error() string {
	return fmt.Sprintf("report not found: %s", e.ReportID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	case *ErrEmailNotVerified:
		return http.StatusForbidden
	case *ErrInvalidToken, *ErrValidation:
		return http.StatusBadRequest
	case *ErrUserNotFound, *ErrReportNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
