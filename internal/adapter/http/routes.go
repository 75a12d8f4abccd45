package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all checkout API routes.
// auth runs on every checkout route; pass middleware.OptionalBearer to accept signed-in callers.
func RegisterRoutes(e *echo.Echo, h *CheckoutHandler, auth ...echo.MiddlewareFunc) {
	// Health check endpoint (no version prefix)
	e.GET("/health", h.Health)

	api := e.Group("/api/v1")
	api.GET("/prices/parse", h.ParsePrice)

	sessions := api.Group("/checkout/sessions", auth...)
	sessions.POST("", h.StartSession)
	sessions.GET("/:id", h.GetSession)
	sessions.POST("/:id/autofill", h.Autofill)
	sessions.POST("/:id/validate", h.Validate)
	sessions.POST("/:id/submit", h.Submit)

	passengers := sessions.Group("/:id/passengers/:index")
	passengers.PATCH("", h.UpdatePassenger)
	passengers.PATCH("/document", h.UpdateDocument)
	passengers.PUT("/country-code", h.UpdateCountryCode)
	passengers.POST("/touch", h.TouchField)
}
