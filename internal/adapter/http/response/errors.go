package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func writeError(c echo.Context, status int, detail *ErrorDetail) error {
	return c.JSON(status, detail)
}

func simple(c echo.Context, status int, code, message string) error {
	return writeError(c, status, &ErrorDetail{Code: code, Message: message})
}

// BadRequest rejects a request whose parameters cannot be used.
func BadRequest(c echo.Context, message string) error {
	return simple(c, http.StatusBadRequest, CodeInvalidRequest, message)
}

// InvalidRequestBody rejects a body that failed to decode.
func InvalidRequestBody(c echo.Context) error {
	return simple(c, http.StatusBadRequest, CodeInvalidRequest, MsgInvalidRequestBody)
}

// ValidationError rejects a request with per-field details, keyed by field name.
func ValidationError(c echo.Context, details map[string]string) error {
	return writeError(c, http.StatusBadRequest, &ErrorDetail{
		Code:    CodeValidationError,
		Message: MsgValidationFailed,
		Details: details,
	})
}

// ValidationErrorWithMessage rejects a request with a single validation message.
func ValidationErrorWithMessage(c echo.Context, message string) error {
	return simple(c, http.StatusBadRequest, CodeValidationError, message)
}

// Unauthorized reports a bearer token that failed verification.
func Unauthorized(c echo.Context) error {
	return simple(c, http.StatusUnauthorized, CodeUnauthorized, MsgUnauthorized)
}

// Forbidden reports a session bound to another account.
func Forbidden(c echo.Context, message string) error {
	return simple(c, http.StatusForbidden, CodeForbidden, message)
}

// NotFound reports a missing or expired resource.
func NotFound(c echo.Context, message string) error {
	return simple(c, http.StatusNotFound, CodeNotFound, message)
}

// Conflict reports a session whose state does not allow the request right now.
func Conflict(c echo.Context, message string) error {
	return simple(c, http.StatusConflict, CodeConflict, message)
}

// PassengersInvalid reports a failed submit together with every passenger's errors.
func PassengersInvalid(c echo.Context, passengers map[int]map[string]string) error {
	return writeError(c, http.StatusUnprocessableEntity, &ErrorDetail{
		Code:       CodePassengersInvalid,
		Message:    MsgPassengersInvalid,
		Passengers: passengers,
	})
}

// ZeroAmount reports a booking whose total resolved to zero while zero totals are rejected.
func ZeroAmount(c echo.Context) error {
	return simple(c, http.StatusUnprocessableEntity, CodeZeroAmount, MsgZeroAmount)
}

// PaymentFailed reports a gateway failure. Backend details stay in the logs.
func PaymentFailed(c echo.Context) error {
	return simple(c, http.StatusBadGateway, CodePaymentFailed, MsgPaymentFailed)
}

// ServiceUnavailableWithMessage reports a dependency that is not configured or not reachable.
func ServiceUnavailableWithMessage(c echo.Context, message string) error {
	return simple(c, http.StatusServiceUnavailable, CodeServiceUnavailable, message)
}

// GatewayTimeout reports a request that ran out of time.
func GatewayTimeout(c echo.Context) error {
	return simple(c, http.StatusGatewayTimeout, CodeTimeout, MsgTimeout)
}

// RequestCancelled reports a request the client abandoned.
func RequestCancelled(c echo.Context) error {
	return simple(c, http.StatusGatewayTimeout, CodeTimeout, MsgRequestCancelled)
}

// InternalServerError hides an unexpected failure behind a generic message.
func InternalServerError(c echo.Context) error {
	return simple(c, http.StatusInternalServerError, CodeInternalError, MsgInternalError)
}
