package middleware

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/flight-booking/passenger-checkout/internal/adapter/http/response"
	"github.com/flight-booking/passenger-checkout/internal/domain"
)

// bearerTokenKey is the context key for storing the bearer token.
const bearerTokenKey = "bearer_token"

// ErrMissingBearer is returned when the Authorization header carries no bearer token.
var ErrMissingBearer = errors.New("missing bearer token")

// AuthConfig configures bearer token handling.
type AuthConfig struct {
	// Secret verifies HS256 tokens. When empty, tokens are forwarded unverified
	// and the profile service is left to reject them.
	Secret string
}

// OptionalBearer returns middleware that extracts a bearer token when present.
// Requests without an Authorization header pass through as guests.
// A token that fails verification is rejected with 401. The subject of a verified
// token is put on the request context for the use case (see domain.SubjectFromContext).
func OptionalBearer(cfg AuthConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			token, err := parseBearer(header)
			if err != nil {
				return response.Unauthorized(c)
			}

			if cfg.Secret != "" {
				subject, err := verifyToken(token, cfg.Secret)
				if err != nil {
					return response.Unauthorized(c)
				}
				req := c.Request()
				c.SetRequest(req.WithContext(domain.WithSubject(req.Context(), subject)))
			}

			c.Set(bearerTokenKey, token)
			return next(c)
		}
	}
}

// GetBearerToken retrieves the bearer token from the echo context.
// Returns an empty string for guests.
func GetBearerToken(c echo.Context) string {
	if token, ok := c.Get(bearerTokenKey).(string); ok {
		return token
	}
	return ""
}

func parseBearer(header string) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrMissingBearer
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingBearer
	}
	return token, nil
}

func verifyToken(raw, secret string) (string, error) {
	token, err := jwt.Parse(raw, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	return token.Claims.GetSubject()
}
