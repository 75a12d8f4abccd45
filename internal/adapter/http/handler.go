package http

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/flight-booking/passenger-checkout/internal/adapter/http/middleware"
	"github.com/flight-booking/passenger-checkout/internal/adapter/http/response"
	"github.com/flight-booking/passenger-checkout/internal/domain"
	"github.com/flight-booking/passenger-checkout/internal/usecase"
)

// healthCheckTimeout bounds each backend check made by the health endpoint.
const healthCheckTimeout = 2 * time.Second

// HealthCheck checks one backend, e.g. a Redis or Postgres ping.
type HealthCheck func(ctx context.Context) error

// CheckoutHandler handles HTTP requests for checkout session endpoints.
type CheckoutHandler struct {
	useCase      usecase.CheckoutUseCase
	gbpToBDTRate float64
	checks       map[string]HealthCheck
}

// NewCheckoutHandler creates a new CheckoutHandler with the given use case.
// gbpToBDTRate is used by the price preview endpoint.
func NewCheckoutHandler(uc usecase.CheckoutUseCase, gbpToBDTRate float64) *CheckoutHandler {
	if gbpToBDTRate <= 0 {
		gbpToBDTRate = usecase.DefaultGBPToBDTRate
	}
	return &CheckoutHandler{
		useCase:      uc,
		gbpToBDTRate: gbpToBDTRate,
		checks:       make(map[string]HealthCheck),
	}
}

// WithHealthCheck adds a backend check reported by the health endpoint under name.
func (h *CheckoutHandler) WithHealthCheck(name string, check HealthCheck) *CheckoutHandler {
	h.checks[name] = check
	return h
}

// StartSession handles POST /api/v1/checkout/sessions
//
// @Summary Open a checkout session
// @Description Creates blank passenger forms from the traveler counts. Authenticated callers get the first passenger filled from their profile.
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body StartSessionRequest true "Traveler counts and selected offer"
// @Param Authorization header string false "Bearer token"
// @Success 201 {object} SessionResponseDTO
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 401 {object} response.ErrorDetail "Invalid bearer token"
// @Router /api/v1/checkout/sessions [post]
func (h *CheckoutHandler) StartSession(c echo.Context) error {
	var req StartSessionRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	state, err := h.useCase.Start(c.Request().Context(), ToStartInput(&req, middleware.GetBearerToken(c)))
	if err != nil {
		return h.handleError(c, err)
	}
	return response.Created(c, ToSessionResponseDTO(state))
}

// GetSession handles GET /api/v1/checkout/sessions/:id
//
// @Summary Get a checkout session
// @Tags checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SessionResponseDTO
// @Failure 403 {object} response.ErrorDetail "Session belongs to another account"
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Router /api/v1/checkout/sessions/{id} [get]
func (h *CheckoutHandler) GetSession(c echo.Context) error {
	state, err := h.useCase.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, ToSessionResponseDTO(state))
}

// UpdatePassenger handles PATCH /api/v1/checkout/sessions/:id/passengers/:index
//
// @Summary Update a passenger field
// @Description Sets one passenger-level field and revalidates it. For phone_number send the national number only.
// @Tags checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param index path int true "Passenger index"
// @Param request body UpdateFieldRequest true "Field and value"
// @Success 200 {object} SessionResponseDTO
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 403 {object} response.ErrorDetail "Session belongs to another account"
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Router /api/v1/checkout/sessions/{id}/passengers/{index} [patch]
func (h *CheckoutHandler) UpdatePassenger(c echo.Context) error {
	return h.updateField(c, false)
}

// UpdateDocument handles PATCH /api/v1/checkout/sessions/:id/passengers/:index/document
//
// @Summary Update an identity document field
// @Tags checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param index path int true "Passenger index"
// @Param request body UpdateFieldRequest true "Field and value"
// @Success 200 {object} SessionResponseDTO
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 403 {object} response.ErrorDetail "Session belongs to another account"
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Router /api/v1/checkout/sessions/{id}/passengers/{index}/document [patch]
func (h *CheckoutHandler) UpdateDocument(c echo.Context) error {
	return h.updateField(c, true)
}

func (h *CheckoutHandler) updateField(c echo.Context, document bool) error {
	index, err := passengerIndex(c)
	if err != nil {
		return h.handleValidationError(c, err)
	}

	var req UpdateFieldRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(document); err != nil {
		return h.handleValidationError(c, err)
	}

	ctx := c.Request().Context()
	field := domain.Field(req.Field)

	var state domain.CheckoutState
	if document {
		state, err = h.useCase.UpdateDocumentField(ctx, c.Param("id"), index, field, req.Value)
	} else {
		state, err = h.useCase.UpdatePassengerField(ctx, c.Param("id"), index, field, req.Value)
	}
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, ToSessionResponseDTO(state))
}

// UpdateCountryCode handles PUT /api/v1/checkout/sessions/:id/passengers/:index/country-code
//
// @Summary Change a passenger's phone country code
// @Tags checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param index path int true "Passenger index"
// @Param request body CountryCodeRequest true "Country code"
// @Success 200 {object} SessionResponseDTO
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 403 {object} response.ErrorDetail "Session belongs to another account"
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Router /api/v1/checkout/sessions/{id}/passengers/{index}/country-code [put]
func (h *CheckoutHandler) UpdateCountryCode(c echo.Context) error {
	index, err := passengerIndex(c)
	if err != nil {
		return h.handleValidationError(c, err)
	}

	var req CountryCodeRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	state, err := h.useCase.UpdatePhoneCountryCode(c.Request().Context(), c.Param("id"), index, req.CountryCode)
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, ToSessionResponseDTO(state))
}

// TouchField handles POST /api/v1/checkout/sessions/:id/passengers/:index/touch
//
// @Summary Mark a field as touched
// @Description Called when a field loses focus. The field is validated and its error becomes visible.
// @Tags checkout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param index path int true "Passenger index"
// @Param request body TouchFieldRequest true "Field"
// @Success 200 {object} SessionResponseDTO
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 403 {object} response.ErrorDetail "Session belongs to another account"
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Router /api/v1/checkout/sessions/{id}/passengers/{index}/touch [post]
func (h *CheckoutHandler) TouchField(c echo.Context) error {
	index, err := passengerIndex(c)
	if err != nil {
		return h.handleValidationError(c, err)
	}

	var req TouchFieldRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	state, err := h.useCase.TouchField(c.Request().Context(), c.Param("id"), index, domain.Field(req.Field), req.Document)
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, ToSessionResponseDTO(state))
}

// Autofill handles POST /api/v1/checkout/sessions/:id/autofill
//
// @Summary Fill the first passenger from the saved profile
// @Tags checkout
// @Produce json
// @Param id path string true "Session ID"
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} SessionResponseDTO
// @Failure 401 {object} response.ErrorDetail "Missing or invalid bearer token"
// @Failure 403 {object} response.ErrorDetail "Session belongs to another account"
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Failure 503 {object} response.ErrorDetail "Profile unavailable"
// @Router /api/v1/checkout/sessions/{id}/autofill [post]
func (h *CheckoutHandler) Autofill(c echo.Context) error {
	token := middleware.GetBearerToken(c)
	if token == "" {
		return response.Unauthorized(c)
	}

	state, err := h.useCase.Autofill(c.Request().Context(), c.Param("id"), token)
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, ToSessionResponseDTO(state))
}

// Validate handles POST /api/v1/checkout/sessions/:id/validate
//
// @Summary Validate the whole form
// @Description Runs every rule on every passenger and marks all fields touched.
// @Tags checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} ValidationResponseDTO
// @Failure 403 {object} response.ErrorDetail "Session belongs to another account"
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Router /api/v1/checkout/sessions/{id}/validate [post]
func (h *CheckoutHandler) Validate(c echo.Context) error {
	res, err := h.useCase.Validate(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, ToValidationResponseDTO(res))
}

// Submit handles POST /api/v1/checkout/sessions/:id/submit
//
// @Summary Submit the booking and initiate payment
// @Tags checkout
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SwaggerSubmitResponse
// @Failure 403 {object} response.ErrorDetail "Session belongs to another account"
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Failure 409 {object} response.ErrorDetail "Submission in progress or already submitted"
// @Failure 422 {object} SwaggerPassengersInvalid "Passenger details invalid"
// @Failure 502 {object} response.ErrorDetail "Payment initiation failed"
// @Router /api/v1/checkout/sessions/{id}/submit [post]
func (h *CheckoutHandler) Submit(c echo.Context) error {
	res, err := h.useCase.Submit(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, ToSubmitResponseDTO(res))
}

// ParsePrice handles GET /api/v1/prices/parse
//
// @Summary Normalize a price string
// @Description Shows how a price string will be charged. Unreadable input yields zero BDT.
// @Tags prices
// @Produce json
// @Param price query string true "Price string, e.g. GBP 312.40"
// @Success 200 {object} PriceResponseDTO
// @Failure 400 {object} response.ErrorDetail "Missing price"
// @Router /api/v1/prices/parse [get]
func (h *CheckoutHandler) ParsePrice(c echo.Context) error {
	price := c.QueryParam("price")
	if strings.TrimSpace(price) == "" {
		errs := &ValidationErrors{}
		errs.Add("price", "price is required")
		return h.handleValidationError(c, errs)
	}
	return response.OK(c, ToPriceResponseDTO(price, h.gbpToBDTRate))
}

// Health handles GET /health
//
// @Summary Health check
// @Description Reports the state of every configured backend. Any failing backend yields 503.
// @Tags health
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Failure 503 {object} response.HealthResponse
// @Router /health [get]
func (h *CheckoutHandler) Health(c echo.Context) error {
	if len(h.checks) == 0 {
		return response.Health(c, nil)
	}

	components := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
		err := check(ctx)
		cancel()

		if err != nil {
			components[name] = err.Error()
			continue
		}
		components[name] = response.HealthOK
	}
	return response.Health(c, components)
}

func passengerIndex(c echo.Context) (int, error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		errs := &ValidationErrors{}
		errs.Add("index", "index must be a non-negative integer")
		return 0, errs
	}
	return index, nil
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *CheckoutHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}

	// Fallback for non-structured validation errors
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to appropriate HTTP responses.
func (h *CheckoutHandler) handleError(c echo.Context, err error) error {
	var failure *domain.ValidationFailure
	switch {
	case errors.As(err, &failure):
		return response.PassengersInvalid(c, failure.Errors)
	case errors.Is(err, domain.ErrSessionNotFound):
		return response.NotFound(c, response.MsgSessionNotFound)
	case errors.Is(err, domain.ErrPassengerIndexOutOfRange):
		return response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrSessionForbidden):
		return response.Forbidden(c, response.MsgSessionForbidden)
	case errors.Is(err, domain.ErrSubmissionInProgress):
		return response.Conflict(c, response.MsgSubmissionInProgress)
	case errors.Is(err, domain.ErrAlreadySubmitted):
		return response.Conflict(c, response.MsgAlreadySubmitted)
	case errors.Is(err, domain.ErrConcurrentUpdate):
		return response.Conflict(c, response.MsgConcurrentUpdate)
	case errors.Is(err, domain.ErrZeroAmount):
		return response.ZeroAmount(c)
	case errors.Is(err, domain.ErrPaymentInitiationFailed):
		return response.PaymentFailed(c)
	case errors.Is(err, domain.ErrProfileUnavailable):
		return response.ServiceUnavailableWithMessage(c, response.MsgProfileUnavailable)
	case errors.Is(err, context.DeadlineExceeded):
		return response.GatewayTimeout(c)
	case errors.Is(err, context.Canceled):
		return response.RequestCancelled(c)
	case errors.Is(err, domain.ErrUnknownField), errors.Is(err, domain.ErrInvalidRequest):
		return response.ValidationErrorWithMessage(c, err.Error())
	}

	// Default to internal server error
	return response.InternalServerError(c)
}
