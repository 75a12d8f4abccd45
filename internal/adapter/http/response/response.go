// Package response builds the JSON bodies of the checkout API.
// Successful calls return the resource itself; every failure is a flat ErrorDetail.
package response

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorDetail contains structured error information.
type ErrorDetail struct {
	// Code is a machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// Details contains field-specific error details (for request validation errors)
	Details map[string]string `json:"details,omitempty"`

	// Passengers contains per-passenger field errors (for form validation failures)
	Passengers map[int]map[string]string `json:"passengers,omitempty"`
}

// Error codes used in API responses.
const (
	CodeInvalidRequest     = "invalid_request"
	CodeValidationError    = "validation_error"
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeConflict           = "conflict"
	CodeMethodNotAllowed   = "method_not_allowed"
	CodeBodyTooLarge       = "body_too_large"
	CodePassengersInvalid  = "passengers_invalid"
	CodeZeroAmount         = "zero_amount"
	CodePaymentFailed      = "payment_failed"
	CodeServiceUnavailable = "service_unavailable"
	CodeTimeout            = "timeout"
	CodeInternalError      = "internal_error"
)

// Error messages used in API responses.
const (
	MsgInvalidRequestBody   = "Failed to parse request body"
	MsgValidationFailed     = "Request validation failed"
	MsgUnauthorized         = "A valid bearer token is required"
	MsgSessionNotFound      = "Checkout session not found or expired"
	MsgSubmissionInProgress = "A submission for this checkout is already in progress"
	MsgAlreadySubmitted     = "Payment for this checkout has already been initiated"
	MsgConcurrentUpdate     = "The checkout was changed by another request, please retry"
	MsgSessionForbidden     = "This checkout belongs to another account"
	MsgPassengersInvalid    = "Some passenger details are missing or invalid"
	MsgZeroAmount           = "The booking total could not be determined"
	MsgPaymentFailed        = "Payment could not be initiated, please try again"
	MsgProfileUnavailable   = "Saved profile is currently unavailable"
	MsgTimeout              = "Request timed out"
	MsgRequestCancelled     = "Request was cancelled"
	MsgInternalError        = "An unexpected error occurred"
	MsgRouteNotFound        = "Route not found"
	MsgMethodNotAllowed     = "Method not allowed"
	MsgBodyTooLarge         = "Request body is too large"
)

// OK writes a 200 OK response with the given data.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

// Created writes a 201 Created response with the given data.
func Created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

// NoContent writes a 204 No Content response.
func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// HTTPErrorHandler renders errors that escape handlers, such as unknown routes or
// oversized bodies rejected by middleware, in the same shape as handler errors.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		_ = InternalServerError(c)
		return
	}

	switch he.Code {
	case http.StatusNotFound:
		_ = NotFound(c, MsgRouteNotFound)
	case http.StatusMethodNotAllowed:
		_ = c.JSON(he.Code, &ErrorDetail{Code: CodeMethodNotAllowed, Message: MsgMethodNotAllowed})
	case http.StatusRequestEntityTooLarge:
		_ = c.JSON(he.Code, &ErrorDetail{Code: CodeBodyTooLarge, Message: MsgBodyTooLarge})
	case http.StatusUnauthorized:
		_ = Unauthorized(c)
	case http.StatusBadRequest:
		_ = InvalidRequestBody(c)
	default:
		if he.Code >= 500 {
			_ = InternalServerError(c)
			return
		}
		_ = c.JSON(he.Code, &ErrorDetail{Code: CodeInvalidRequest, Message: http.StatusText(he.Code)})
	}
}
