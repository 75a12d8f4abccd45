package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the checkout engine.
var (
	// ErrInvalidRequest indicates the caller supplied malformed input.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrSessionNotFound indicates no checkout session exists for the given ID.
	ErrSessionNotFound = errors.New("checkout session not found")

	// ErrPassengerIndexOutOfRange indicates a passenger index outside the session's passenger list.
	ErrPassengerIndexOutOfRange = errors.New("passenger index out of range")

	// ErrUnknownField indicates a field name the engine does not track.
	ErrUnknownField = errors.New("unknown field")

	// ErrValidationFailed indicates whole-form validation did not pass.
	ErrValidationFailed = errors.New("passenger validation failed")

	// ErrSubmissionInProgress indicates a submission for the session is already running.
	ErrSubmissionInProgress = errors.New("submission already in progress")

	// ErrAlreadySubmitted indicates payment was already initiated for the session.
	ErrAlreadySubmitted = errors.New("checkout already submitted")

	// ErrConcurrentUpdate indicates the session kept changing under a write until it gave up.
	ErrConcurrentUpdate = errors.New("checkout session changed concurrently")

	// ErrSessionForbidden indicates the session is bound to a different account.
	ErrSessionForbidden = errors.New("checkout session belongs to another account")

	// ErrPaymentInitiationFailed indicates the payment backend rejected or failed the request.
	ErrPaymentInitiationFailed = errors.New("payment initiation failed")

	// ErrZeroAmount indicates the resolved total amount is zero.
	ErrZeroAmount = errors.New("total amount resolved to zero")

	// ErrProfileUnavailable indicates the authenticated profile could not be fetched.
	ErrProfileUnavailable = errors.New("profile unavailable")

	// ErrUnparseablePrice indicates a price token matched none of the accepted shapes.
	ErrUnparseablePrice = errors.New("unparseable price")
)

// GatewayError wraps a failure from the payment-initiation backend.
type GatewayError struct {
	// Gateway is the name of the backend that failed
	Gateway string

	// Err is the underlying error
	Err error

	// Retryable indicates whether the call may succeed if repeated
	Retryable bool
}

// NewGatewayError creates a non-retryable GatewayError.
func NewGatewayError(gateway string, err error) *GatewayError {
	return &GatewayError{Gateway: gateway, Err: err}
}

// NewRetryableGatewayError creates a GatewayError that callers may retry.
func NewRetryableGatewayError(gateway string, err error) *GatewayError {
	return &GatewayError{Gateway: gateway, Err: err, Retryable: true}
}

// Error implements the error interface.
func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway %s: %v", e.Gateway, e.Err)
}

// Unwrap returns the underlying error.
func (e *GatewayError) Unwrap() error {
	return e.Err
}

// Is reports ErrPaymentInitiationFailed for every GatewayError.
func (e *GatewayError) Is(target error) bool {
	return target == ErrPaymentInitiationFailed
}

// ValidationFailure carries the full error map produced by a failed whole-form validation.
type ValidationFailure struct {
	Errors ValidationErrorMap
}

// NewValidationFailure creates a ValidationFailure for the given error map.
func NewValidationFailure(errs ValidationErrorMap) *ValidationFailure {
	return &ValidationFailure{Errors: errs}
}

// Error implements the error interface.
func (v *ValidationFailure) Error() string {
	return fmt.Sprintf("%s: %d field error(s) across %d passenger(s)",
		ErrValidationFailed, v.Errors.Count(), len(v.Errors))
}

// Unwrap lets errors.Is match ErrValidationFailed.
func (v *ValidationFailure) Unwrap() error {
	return ErrValidationFailed
}

// WrapInvalidRequest wraps ErrInvalidRequest with a formatted message.
func WrapInvalidRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// IsInvalidRequest reports whether err is, or wraps, ErrInvalidRequest.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// IsValidationFailed reports whether err is, or wraps, ErrValidationFailed.
func IsValidationFailed(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}

// IsRetryable reports whether err carries a retryable GatewayError.
func IsRetryable(err error) bool {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Retryable
	}
	return false
}
