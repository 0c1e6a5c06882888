package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes shared by the session core and the console surface.
const (
	CodeValidationFailed     = "VALIDATION_FAILED"
	CodeNotFound             = "NOT_FOUND"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeForbidden            = "FORBIDDEN"
	CodeConflict             = "CONFLICT"
	CodeInternal             = "INTERNAL_ERROR"
	CodeUpstream             = "UPSTREAM_ERROR"
	CodeCredentialMalformed  = "CREDENTIAL_MALFORMED"
	CodeAuthenticationFailed = "AUTHENTICATION_FAILED"
	CodeSessionInvalidated   = "SESSION_INVALIDATED"
	CodeLoginSuperseded      = "LOGIN_SUPERSEDED"
	CodeRateLimited          = "RATE_LIMITED"
)

// Sentinels for errors.Is. Matching is by Code, so any DomainError carrying
// the same code satisfies errors.Is against these.
var (
	ErrCredentialMalformed  = &DomainError{Code: CodeCredentialMalformed, Message: "credential malformed", HTTPStatus: http.StatusUnauthorized}
	ErrAuthenticationFailed = &DomainError{Code: CodeAuthenticationFailed, Message: "authentication failed", HTTPStatus: http.StatusUnauthorized}
	ErrSessionInvalidated   = &DomainError{Code: CodeSessionInvalidated, Message: "session invalidated", HTTPStatus: http.StatusUnauthorized}
	ErrLoginSuperseded      = &DomainError{Code: CodeLoginSuperseded, Message: "login superseded by a newer session change", HTTPStatus: http.StatusConflict}
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok || t == nil {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidationFailed, message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewDecodeError reports a credential that is not a usable token.
func NewDecodeError(reason string, err error) error {
	return &DomainError{
		Code:       CodeCredentialMalformed,
		Message:    "credential malformed: " + reason,
		HTTPStatus: http.StatusUnauthorized,
		Err:        err,
	}
}

// NewAuthenticationFailure reports a rejected or unreachable sign-in. status
// is the backend status, zero when the call never got an answer.
func NewAuthenticationFailure(message string, status int, err error) error {
	if message == "" {
		message = "invalid username or password"
	}
	details := map[string]any{}
	if status != 0 {
		details["upstream_status"] = status
	}
	return &DomainError{
		Code:       CodeAuthenticationFailed,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
		Details:    details,
		Err:        err,
	}
}

// NewSessionInvalidated reports a 401 received on an authenticated call.
func NewSessionInvalidated(message string) error {
	if message == "" {
		message = "session expired or revoked"
	}
	return &DomainError{
		Code:       CodeSessionInvalidated,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewUpstreamError maps a non-2xx backend answer onto the local taxonomy.
func NewUpstreamError(status int, message string) error {
	if message == "" {
		message = http.StatusText(status)
	}
	details := map[string]any{"upstream_status": status}
	switch status {
	case http.StatusBadRequest:
		return NewDomainError(CodeValidationFailed, message, status, details)
	case http.StatusForbidden:
		return NewDomainError(CodeForbidden, message, status, details)
	case http.StatusNotFound:
		return NewDomainError(CodeNotFound, message, status, details)
	case http.StatusConflict:
		return NewDomainError(CodeConflict, message, status, details)
	default:
		return NewDomainError(CodeUpstream, message, http.StatusBadGateway, details)
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
