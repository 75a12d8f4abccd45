// Package integration provides helpers and integration tests for the checkout service.
// Integration tests verify that components work together correctly, including
// HTTP handlers, the checkout use case, the in-memory session store and mock gateways.
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	httpAdapter "github.com/flight-booking/passenger-checkout/internal/adapter/http"
	"github.com/flight-booking/passenger-checkout/internal/adapter/http/middleware"
	"github.com/flight-booking/passenger-checkout/internal/adapter/store"
	"github.com/flight-booking/passenger-checkout/internal/domain"
	"github.com/flight-booking/passenger-checkout/internal/infrastructure/logger"
	"github.com/flight-booking/passenger-checkout/internal/infrastructure/metrics"
	"github.com/flight-booking/passenger-checkout/internal/infrastructure/timeutil"
	"github.com/flight-booking/passenger-checkout/internal/usecase"
	"github.com/flight-booking/passenger-checkout/test/mock"
	"github.com/flight-booking/passenger-checkout/test/testutil"
)

// Now is the fixed instant every integration test runs at (Asia/Dhaka).
var Now = time.Date(2026, 10, 18, 10, 30, 0, 0, time.FixedZone("BDT", 6*60*60))

// Env bundles the collaborators of a fully wired checkout stack.
type Env struct {
	Clock    *timeutil.MockClock
	Store    *store.MemoryStore
	Gateway  *mock.Gateway
	Profiles *mock.Profiles
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
	UseCase  usecase.CheckoutUseCase

	cfg *usecase.Config
}

// NewEnv wires the checkout use case over an in-memory store and mock backends.
func NewEnv(gateway *mock.Gateway, cfg *usecase.Config) *Env {
	if gateway == nil {
		gateway = mock.NewGateway("sslcommerz", "https://sandbox.pay.example/checkout")
	}
	clock := timeutil.NewMockClock(Now)
	reg := prometheus.NewRegistry()
	env := &Env{
		Clock:    clock,
		Store:    store.NewMemoryStore(store.Config{TTL: 30 * time.Minute, Clock: clock}),
		Gateway:  gateway,
		Profiles: mock.NewProfiles(),
		Registry: reg,
		Metrics:  metrics.New(reg),
	}
	env.cfg = cfg
	env.UseCase = env.NewUseCase()
	return env
}

// NewUseCase builds another checkout use case over the same store and backends,
// standing in for a second replica of the service.
func (env *Env) NewUseCase() usecase.CheckoutUseCase {
	return usecase.NewCheckoutUseCase(usecase.Dependencies{
		Store:    env.Store,
		Gateway:  env.Gateway,
		Profiles: env.Profiles,
		Clock:    env.Clock,
		Logger:   logger.Nop(),
		Metrics:  env.Metrics,
	}, env.cfg)
}

// TestServer wraps an Echo instance and provides helper methods for integration testing.
type TestServer struct {
	Echo    *echo.Echo
	Handler *httpAdapter.CheckoutHandler
	Env     *Env
}

// ServerOptions tweaks a test server.
type ServerOptions struct {
	// JWTSecret turns on bearer token verification
	JWTSecret string

	// UseCase replaces env.UseCase, e.g. with env.NewUseCase() for a second replica
	UseCase usecase.CheckoutUseCase
}

// NewTestServer creates a test server over env with the production middleware chain.
func NewTestServer(env *Env) *TestServer {
	return NewTestServerWithOptions(env, ServerOptions{})
}

// NewTestServerWithOptions creates a test server over env with the given options.
func NewTestServerWithOptions(env *Env, opts ServerOptions) *TestServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	middleware.Setup(e, logger.Nop().Logger)

	uc := opts.UseCase
	if uc == nil {
		uc = env.UseCase
	}
	handler := httpAdapter.NewCheckoutHandler(uc, usecase.DefaultGBPToBDTRate)
	httpAdapter.RegisterRoutes(e, handler, middleware.OptionalBearer(middleware.AuthConfig{Secret: opts.JWTSecret}))

	return &TestServer{
		Echo:    e,
		Handler: handler,
		Env:     env,
	}
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method      string
	Path        string
	Body        interface{}
	ContentType string
	Token       string
	Header      http.Header
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var bodyReader *bytes.Reader
	switch b := req.Body.(type) {
	case nil:
		bodyReader = bytes.NewReader(nil)
	case []byte:
		bodyReader = bytes.NewReader(b)
	default:
		bodyBytes, _ := json.Marshal(b)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)

	if req.ContentType != "" {
		httpReq.Header.Set(echo.HeaderContentType, req.ContentType)
	} else if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if req.Token != "" {
		httpReq.Header.Set(echo.HeaderAuthorization, "Bearer "+req.Token)
	}
	for k, v := range req.Header {
		httpReq.Header[k] = v
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

func sessionPath(id string, suffix ...string) string {
	return "/api/v1/checkout/sessions/" + id + strings.Join(suffix, "")
}

// StartSession posts body to the session collection.
func (ts *TestServer) StartSession(body interface{}, token string) Response {
	return ts.Do(Request{Method: http.MethodPost, Path: "/api/v1/checkout/sessions", Body: body, Token: token})
}

// GetSession fetches a session.
func (ts *TestServer) GetSession(id string) Response {
	return ts.Do(Request{Method: http.MethodGet, Path: sessionPath(id)})
}

// GetSessionAs fetches a session with a bearer token.
func (ts *TestServer) GetSessionAs(id, token string) Response {
	return ts.Do(Request{Method: http.MethodGet, Path: sessionPath(id), Token: token})
}

// SetField updates one passenger or document field.
func (ts *TestServer) SetField(id string, index int, fv testutil.FieldValue) Response {
	path := sessionPath(id, fmt.Sprintf("/passengers/%d", index))
	if fv.Document {
		path += "/document"
	}
	return ts.Do(Request{
		Method: http.MethodPatch,
		Path:   path,
		Body:   httpAdapter.UpdateFieldRequest{Field: string(fv.Field), Value: fv.Value},
	})
}

// FillPassenger sets every field in fields and returns the last response.
func (ts *TestServer) FillPassenger(id string, index int, fields []testutil.FieldValue) Response {
	var last Response
	for _, fv := range fields {
		last = ts.SetField(id, index, fv)
		if last.Code != http.StatusOK {
			return last
		}
	}
	return last
}

// Touch marks a field as touched.
func (ts *TestServer) Touch(id string, index int, field domain.Field) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   sessionPath(id, fmt.Sprintf("/passengers/%d/touch", index)),
		Body:   httpAdapter.TouchFieldRequest{Field: string(field), Document: field.IsDocumentField()},
	})
}

// SetCountryCode changes a passenger's phone country code.
func (ts *TestServer) SetCountryCode(id string, index int, code string) Response {
	return ts.Do(Request{
		Method: http.MethodPut,
		Path:   sessionPath(id, fmt.Sprintf("/passengers/%d/country-code", index)),
		Body:   httpAdapter.CountryCodeRequest{CountryCode: code},
	})
}

// Autofill requests a profile merge.
func (ts *TestServer) Autofill(id, token string) Response {
	return ts.Do(Request{Method: http.MethodPost, Path: sessionPath(id, "/autofill"), Token: token})
}

// Validate runs whole-form validation.
func (ts *TestServer) Validate(id string) Response {
	return ts.Do(Request{Method: http.MethodPost, Path: sessionPath(id, "/validate")})
}

// Submit submits the session.
func (ts *TestServer) Submit(id string) Response {
	return ts.Do(Request{Method: http.MethodPost, Path: sessionPath(id, "/submit")})
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Do(Request{Method: http.MethodGet, Path: "/health"})
}

// ParseSession parses the response body as a session.
func (r *Response) ParseSession() (*httpAdapter.SessionResponseDTO, error) {
	var resp httpAdapter.SessionResponseDTO
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseSubmit parses the response body as a submit result.
func (r *Response) ParseSubmit() (*httpAdapter.SubmitResponseDTO, error) {
	var resp httpAdapter.SubmitResponseDTO
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseError parses the response body to extract error information.
func (r *Response) ParseError() (map[string]interface{}, error) {
	var errResp map[string]interface{}
	if err := json.Unmarshal(r.Body, &errResp); err != nil {
		return nil, err
	}
	return errResp, nil
}

// StartRequestBody builds a start request for the given party.
func StartRequestBody(adults, children, infants int, price string) httpAdapter.StartSessionRequest {
	return httpAdapter.StartSessionRequest{
		Adults:   adults,
		Children: children,
		Infants:  infants,
		Flight: httpAdapter.FlightDTO{
			OfferID:     "off_0000AEdGRhtp5AUUdJqMxo",
			Price:       price,
			Origin:      "DAC",
			Destination: "LHR",
		},
	}
}

// SignedToken returns an HS256 token for subject that expires in an hour.
func SignedToken(t *testing.T, secret, subject string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

// PassportFor returns a distinct valid passport number per passenger index.
func PassportFor(index int) string {
	return fmt.Sprintf("BX12345%02d", index)
}
