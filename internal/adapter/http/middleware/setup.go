package middleware

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/flight-booking/passenger-checkout/internal/adapter/http/response"
)

// DefaultBodyLimit caps request bodies. Checkout payloads are a handful of short strings.
const DefaultBodyLimit = "64K"

// Options configures the global middleware chain.
type Options struct {
	// BodyLimit is an echo size string such as "64K"; empty disables the limit
	BodyLimit string

	Recovery RecoveryConfig
}

// DefaultOptions returns the options used by Setup.
func DefaultOptions() Options {
	return Options{
		BodyLimit: DefaultBodyLimit,
		Recovery:  DefaultRecoveryConfig(),
	}
}

// Setup registers the global middleware on e. Call it before registering routes.
// Order matters: the request ID must exist before anything logs, and recovery sits
// innermost so a panicking handler still produces an access log line.
// Bearer handling is route-scoped; see OptionalBearer.
func Setup(e *echo.Echo, log zerolog.Logger) {
	SetupWithOptions(e, log, DefaultOptions())
}

// SetupWithOptions registers the global middleware with custom options.
func SetupWithOptions(e *echo.Echo, log zerolog.Logger, opts Options) {
	e.HTTPErrorHandler = response.HTTPErrorHandler

	e.Use(RequestID())
	e.Use(RequestLogger(log))
	if opts.BodyLimit != "" {
		e.Use(echomw.BodyLimit(opts.BodyLimit))
	}
	e.Use(RecoverWithConfig(log, opts.Recovery))
}
