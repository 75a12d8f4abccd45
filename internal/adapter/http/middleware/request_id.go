// Package middleware provides the HTTP middleware of the checkout API:
// request correlation, access logging, panic recovery, body limits and bearer extraction.
package middleware

import (
	"regexp"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// RequestIDHeader carries the correlation ID in both directions.
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "request_id"
)

// Client-supplied IDs end up in logs and response headers, so only short opaque tokens are accepted.
var requestIDFormat = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,64}$`)

// RequestID returns middleware that assigns every request a correlation ID.
// A well-formed incoming X-Request-ID is kept; anything else is replaced by a fresh UUID.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqID := c.Request().Header.Get(RequestIDHeader)
			if !requestIDFormat.MatchString(reqID) {
				reqID = uuid.NewString()
			}

			c.Set(requestIDKey, reqID)
			c.Response().Header().Set(RequestIDHeader, reqID)
			return next(c)
		}
	}
}

// GetRequestID returns the request's correlation ID, or "" outside the middleware.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(requestIDKey).(string); ok {
		return id
	}
	return ""
}
