// Package errors provides domain-specific error types.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for domain errors.
const (
	ErrCodeSessionExpired     = "SESSION_EXPIRED"
	ErrCodeHTTP               = "HTTP_ERROR"
	ErrCodeDecode             = "DECODE_ERROR"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// SessionReason describes why a session is no longer usable.
type SessionReason string

const (
	// SessionReasonRefreshFailed means a re-authentication attempt was rejected.
	SessionReasonRefreshFailed SessionReason = "refresh_failed"
	// SessionReasonNoSession means no session existed when an authenticated endpoint was called.
	SessionReasonNoSession SessionReason = "no_session"
	// SessionReasonLoggedOut means the session was ended and no login happened since.
	SessionReasonLoggedOut SessionReason = "logged_out"
)

// Constraint names a staged-filter validation gate.
type Constraint string

const (
	ConstraintDateOrder     Constraint = "date_order"
	ConstraintDurationOrder Constraint = "duration_order"
	ConstraintValue         Constraint = "value"
)

// DomainError represents a domain-specific error.
type DomainError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"`

	// UpstreamStatus is the status code returned by the remote API, if any.
	UpstreamStatus int `json:"upstreamStatus,omitempty"`
	// Reason is set for SESSION_EXPIRED errors.
	Reason SessionReason `json:"reason,omitempty"`
	// Constraint is set for VALIDATION_ERROR errors raised by filter gates.
	Constraint Constraint `json:"constraint,omitempty"`
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewSessionExpiredError creates a new session expired error.
func NewSessionExpiredError(reason SessionReason, err error) *DomainError {
	return &DomainError{
		Code:       ErrCodeSessionExpired,
		Message:    "session expired, please sign in again",
		Details:    string(reason),
		HTTPStatus: http.StatusUnauthorized,
		Reason:     reason,
		Err:        err,
	}
}

// NewHTTPError creates an error for a non-2xx upstream response.
// An empty message falls back to a status-based one.
func NewHTTPError(status int, message string) *DomainError {
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", status)
	}
	return &DomainError{
		Code:           ErrCodeHTTP,
		Message:        message,
		HTTPStatus:     http.StatusBadGateway,
		UpstreamStatus: status,
	}
}

// NewDecodeError creates an error for a JSON response that failed to parse.
func NewDecodeError(status int, err error) *DomainError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &DomainError{
		Code:           ErrCodeDecode,
		Message:        "failed to decode response",
		Details:        details,
		HTTPStatus:     http.StatusBadGateway,
		UpstreamStatus: status,
		Err:            err,
	}
}

// NewValidationError creates a new validation error.
func NewValidationError(message string, details string) *DomainError {
	return &DomainError{
		Code:       ErrCodeValidation,
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusBadRequest,
		Constraint: ConstraintValue,
	}
}

// NewConstraintError creates a validation error for a failed filter gate.
func NewConstraintError(constraint Constraint, message string) *DomainError {
	return &DomainError{
		Code:       ErrCodeValidation,
		Message:    message,
		Details:    string(constraint),
		HTTPStatus: http.StatusBadRequest,
		Constraint: constraint,
	}
}

// NewNotFoundError creates a new not found error.
func NewNotFoundError(resource, identifier string) *DomainError {
	return &DomainError{
		Code:       ErrCodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		Details:    identifier,
		HTTPStatus: http.StatusNotFound,
	}
}

// NewConflictError creates a new conflict error.
func NewConflictError(message string, details string) *DomainError {
	return &DomainError{
		Code:       ErrCodeConflict,
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusConflict,
	}
}

// NewBadRequestError creates a new bad request error.
func NewBadRequestError(message string, details string) *DomainError {
	return &DomainError{
		Code:       ErrCodeBadRequest,
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, err error) *DomainError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &DomainError{
		Code:       ErrCodeInternal,
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewServiceUnavailableError creates a new service unavailable error.
func NewServiceUnavailableError(service string, err error) *DomainError {
	return &DomainError{
		Code:       ErrCodeServiceUnavailable,
		Message:    fmt.Sprintf("%s is unavailable", service),
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

// GetDomainError extracts the domain error from an error.
func GetDomainError(err error) (*DomainError, bool) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

// IsDomainError checks if the error is a domain error.
func IsDomainError(err error) bool {
	_, ok := GetDomainError(err)
	return ok
}

func hasCode(err error, code string) bool {
	domainErr, ok := GetDomainError(err)
	return ok && domainErr.Code == code
}

// IsSessionExpired checks if the error is a session expired error.
func IsSessionExpired(err error) bool {
	return hasCode(err, ErrCodeSessionExpired)
}

// IsHTTPError checks if the error is an upstream HTTP error.
func IsHTTPError(err error) bool {
	return hasCode(err, ErrCodeHTTP)
}

// IsDecodeError checks if the error is a decode error.
func IsDecodeError(err error) bool {
	return hasCode(err, ErrCodeDecode)
}

// IsValidationError checks if the error is a validation error.
func IsValidationError(err error) bool {
	return hasCode(err, ErrCodeValidation)
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

// IsConflict checks if the error is a conflict error.
func IsConflict(err error) bool {
	return hasCode(err, ErrCodeConflict)
}

// UpstreamStatus returns the remote status carried by an HTTP or decode error.
func UpstreamStatus(err error) int {
	if domainErr, ok := GetDomainError(err); ok {
		return domainErr.UpstreamStatus
	}
	return 0
}

// IsExpectedUnauthenticated reports whether err is the benign "not signed in
// yet" outcome. Such errors are surfaced to the caller but never reported to
// users or alerting as failures.
func IsExpectedUnauthenticated(err error) bool {
	domainErr, ok := GetDomainError(err)
	if !ok || domainErr.Code != ErrCodeSessionExpired {
		return false
	}
	return domainErr.Reason == SessionReasonNoSession || domainErr.Reason == SessionReasonLoggedOut
}
