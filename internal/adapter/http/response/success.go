package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health states.
const (
	HealthOK       = "ok"
	HealthDegraded = "degraded"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`

	// Components maps each configured backend to "ok" or its failure
	Components map[string]string `json:"components,omitempty"`
}

// Health writes the health check response. Any component not reporting
// HealthOK degrades the service and turns the status code into 503.
func Health(c echo.Context, components map[string]string) error {
	status := HealthOK
	for _, state := range components {
		if state != HealthOK {
			status = HealthDegraded
			break
		}
	}

	code := http.StatusOK
	if status != HealthOK {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, &HealthResponse{Status: status, Components: components})
}
