package errors

import "fmt"

// ErrorCode represents a Darek error code.
type ErrorCode string

const (
	ErrInvalidRequest         ErrorCode = "INVALID_REQUEST"         // 400
	ErrNotFound               ErrorCode = "NOT_FOUND"               // 404
	ErrExtractionFailed       ErrorCode = "EXTRACTION_FAILED"       // 422
	ErrPersistenceUnavailable ErrorCode = "PERSISTENCE_UNAVAILABLE" // 503
	ErrServiceNotConfigured   ErrorCode = "SERVICE_NOT_CONFIGURED"  // 503
	ErrServiceUnauthorized    ErrorCode = "SERVICE_UNAUTHORIZED"    // 502
	ErrServiceNotFound        ErrorCode = "SERVICE_NOT_FOUND"       // 404
	ErrServiceAmbiguous       ErrorCode = "SERVICE_AMBIGUOUS"       // 409
	ErrServiceTimeout         ErrorCode = "SERVICE_TIMEOUT"         // 504
	ErrServiceUnreachable     ErrorCode = "SERVICE_UNREACHABLE"     // 502
	ErrInternal               ErrorCode = "INTERNAL"                // 500
)

// DarekError represents a structured error with code, status, and details.
type DarekError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *DarekError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *DarekError {
	return &DarekError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing record.
func NewNotFound(identifier string) *DarekError {
	return &DarekError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("record not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewExtraction creates a 422 error when a slot cannot be parsed from command text.
// The slot name identifies which extractor failed (e.g. "duration", "expression").
func NewExtraction(slot, msg string) *DarekError {
	return &DarekError{
		Code:    ErrExtractionFailed,
		Status:  422,
		Message: msg,
		Details: map[string]any{"slot": slot},
	}
}

// NewPersistenceUnavailable creates a 503 error wrapping a storage failure.
func NewPersistenceUnavailable(err error) *DarekError {
	msg := "storage unavailable"
	if err != nil {
		msg = err.Error()
	}
	return &DarekError{
		Code:    ErrPersistenceUnavailable,
		Status:  503,
		Message: msg,
	}
}

// NewServiceNotConfigured creates a 503 error when a service credential is absent.
func NewServiceNotConfigured(service, envVar string) *DarekError {
	return &DarekError{
		Code:    ErrServiceNotConfigured,
		Status:  503,
		Message: fmt.Sprintf("%s is not configured: set %s", service, envVar),
		Details: map[string]any{"service": service, "env": envVar},
	}
}

// NewServiceUnauthorized creates a 502 error when the upstream rejects credentials.
func NewServiceUnauthorized(service string) *DarekError {
	return &DarekError{
		Code:    ErrServiceUnauthorized,
		Status:  502,
		Message: fmt.Sprintf("%s rejected the configured credentials", service),
		Details: map[string]any{"service": service},
	}
}

// NewServiceNotFound creates a 404 error when the upstream has no data for a query.
func NewServiceNotFound(service, query string) *DarekError {
	return &DarekError{
		Code:    ErrServiceNotFound,
		Status:  404,
		Message: fmt.Sprintf("%s has no data for %q", service, query),
		Details: map[string]any{"service": service, "query": query},
	}
}

// NewServiceAmbiguous creates a 409 error when a lookup matches several entries.
func NewServiceAmbiguous(service, query string) *DarekError {
	return &DarekError{
		Code:    ErrServiceAmbiguous,
		Status:  409,
		Message: fmt.Sprintf("%s found several matches for %q", service, query),
		Details: map[string]any{"service": service, "query": query},
	}
}

// NewServiceTimeout creates a 504 error when the upstream did not answer in time.
func NewServiceTimeout(service string) *DarekError {
	return &DarekError{
		Code:    ErrServiceTimeout,
		Status:  504,
		Message: fmt.Sprintf("%s timed out", service),
		Details: map[string]any{"service": service},
	}
}

// NewServiceUnreachable creates a 502 error for transport failures and unexpected upstream statuses.
func NewServiceUnreachable(service string, err error) *DarekError {
	msg := fmt.Sprintf("%s is unreachable", service)
	if err != nil {
		msg = fmt.Sprintf("%s is unreachable: %v", service, err)
	}
	return &DarekError{
		Code:    ErrServiceUnreachable,
		Status:  502,
		Message: msg,
		Details: map[string]any{"service": service},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *DarekError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &DarekError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a DarekError with the given code.
func Is(err error, code ErrorCode) bool {
	if dErr, ok := err.(*DarekError); ok {
		return dErr.Code == code
	}
	return false
}

// CodeOf returns the code of a DarekError, or ErrInternal for any other error.
func CodeOf(err error) ErrorCode {
	if dErr, ok := err.(*DarekError); ok {
		return dErr.Code
	}
	return ErrInternal
}

// SlotOf returns the slot name of an EXTRACTION_FAILED error, or "" for any other error.
func SlotOf(err error) string {
	dErr, ok := err.(*DarekError)
	if !ok || dErr.Code != ErrExtractionFailed {
		return ""
	}
	slot, _ := dErr.Details["slot"].(string)
	return slot
}
