package integration

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-booking/passenger-checkout/internal/domain"
	"github.com/flight-booking/passenger-checkout/internal/usecase"
	"github.com/flight-booking/passenger-checkout/test/mock"
	"github.com/flight-booking/passenger-checkout/test/testutil"
)

// startSession starts a session from body and returns its parsed state.
func startSession(t *testing.T, ts *TestServer, body interface{}, token string) string {
	t.Helper()
	resp := ts.StartSession(body, token)
	require.Equal(t, http.StatusCreated, resp.Code, string(resp.Body))
	s, err := resp.ParseSession()
	require.NoError(t, err)
	require.NotEmpty(t, s.ID)
	return s.ID
}

// fillAll fills every passenger of the session with valid data matching its type.
func fillAll(t *testing.T, ts *TestServer, id string) {
	t.Helper()
	resp := ts.GetSession(id)
	s, err := resp.ParseSession()
	require.NoError(t, err)

	for i, p := range s.Passengers {
		last := ts.FillPassenger(id, i, testutil.ValidFields(p.Type, Now, PassportFor(i)))
		require.Equal(t, http.StatusOK, last.Code, string(last.Body))
	}
}

func TestCheckoutFlow_FromTestdataToPayment(t *testing.T) {
	// Arrange
	env := NewEnv(nil, nil)
	ts := NewTestServer(env)

	// Act
	id := startSession(t, ts, testutil.LoadTestJSON(t, "start_session.json"), "")
	fillAll(t, ts, id)
	resp := ts.Submit(id)

	// Assert
	require.Equal(t, http.StatusOK, resp.Code, string(resp.Body))
	res, err := resp.ParseSubmit()
	require.NoError(t, err)

	assert.NotEmpty(t, res.SubmissionID)
	assert.Equal(t, "https://sandbox.pay.example/checkout", res.GatewayURL)

	p := res.Payload
	assert.Equal(t, "15075.00", p.TotalAmount)
	assert.Equal(t, "BDT", p.Currency)
	assert.Equal(t, "off_0000AEdGRhtp5AUUdJqMxo", p.OfferID)
	assert.Equal(t, []string{
		"pas_0000AEdGRhtp5AUUdJqMxp",
		"pas_0000AEdGRhtp5AUUdJqMxq",
		"pas_0000AEdGRhtp5AUUdJqMxr",
	}, p.PassengerIDs)
	assert.Equal(t, "Rahim Uddin", p.CustomerName)
	assert.Equal(t, "rahim@example.com", p.CustomerEmail)
	assert.Equal(t, "+880 1712345678", p.CustomerPhone)

	require.Len(t, p.Passengers, 3)
	seen := make(map[string]bool)
	for i, passenger := range p.Passengers {
		doc := passenger.Document()
		want := fmt.Sprintf("passport_%s_%d_%d", PassportFor(i), Now.UnixMilli(), i)
		assert.Equal(t, want, doc.UniqueIdentifier)
		assert.False(t, seen[doc.UniqueIdentifier], "identifiers must be unique")
		seen[doc.UniqueIdentifier] = true
	}
	assert.Equal(t, domain.PassengerInfant, p.Passengers[2].Type)

	// The gateway received exactly what the client was shown.
	sent, ok := env.Gateway.LastPayload()
	require.True(t, ok)
	assert.Equal(t, p.TotalAmount, sent.TotalAmount)
	assert.Equal(t, 1, env.Gateway.CallCount())

	// A submitted session is gone.
	assert.Equal(t, http.StatusNotFound, ts.GetSession(id).Code)
}

func TestErrorsStayHiddenUntilTouched(t *testing.T) {
	ts := NewTestServer(NewEnv(nil, nil))
	id := startSession(t, ts, StartRequestBody(1, 0, 0, "BDT 12500"), "")

	resp := ts.SetField(id, 0, testutil.FieldValue{Field: domain.FieldGivenName, Value: "R"})
	require.Equal(t, http.StatusOK, resp.Code)
	s, err := resp.ParseSession()
	require.NoError(t, err)

	assert.Equal(t, domain.MsgNameTooShort, s.Errors[0]["given_name"])
	assert.Empty(t, s.VisibleErrors)

	resp = ts.Touch(id, 0, domain.FieldGivenName)
	require.Equal(t, http.StatusOK, resp.Code)
	s, err = resp.ParseSession()
	require.NoError(t, err)
	assert.Equal(t, domain.MsgNameTooShort, s.VisibleErrors[0]["given_name"])

	// Fixing the value clears the error immediately.
	resp = ts.SetField(id, 0, testutil.FieldValue{Field: domain.FieldGivenName, Value: "Rahim"})
	s, err = resp.ParseSession()
	require.NoError(t, err)
	assert.NotContains(t, s.Errors[0], "given_name")
	assert.Empty(t, s.VisibleErrors)
}

func TestSubmit_InvalidPartyIsRejected(t *testing.T) {
	env := NewEnv(nil, nil)
	ts := NewTestServer(env)
	id := startSession(t, ts, StartRequestBody(2, 0, 0, "BDT 12500"), "")

	// Only the first passenger is filled in.
	ts.FillPassenger(id, 0, testutil.ValidFields(domain.PassengerAdult, Now, PassportFor(0)))

	resp := ts.Submit(id)
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	errResp, err := resp.ParseError()
	require.NoError(t, err)
	assert.Equal(t, "passengers_invalid", errResp["code"])
	passengers := errResp["passengers"].(map[string]interface{})
	assert.NotContains(t, passengers, "0")
	second := passengers["1"].(map[string]interface{})
	assert.Len(t, second, 10)
	assert.Equal(t, domain.MsgRequired, second["passport_number"])

	assert.Equal(t, 0, env.Gateway.CallCount())

	// Every required field is now touched, so every error is visible.
	sessResp := ts.GetSession(id)
	s, err := sessResp.ParseSession()
	require.NoError(t, err)
	assert.Len(t, s.VisibleErrors[1], 10)
	assert.False(t, s.IsSubmitting)
}

func TestSubmit_ExpiredInfantPassport(t *testing.T) {
	env := NewEnv(nil, nil)
	ts := NewTestServer(env)
	id := startSession(t, ts, StartRequestBody(1, 0, 1, "BDT 12500"), "")
	fillAll(t, ts, id)

	yesterday := Now.AddDate(0, 0, -1).Format(domain.DateLayout)
	resp := ts.SetField(id, 1, testutil.FieldValue{Field: domain.FieldDocumentExpiresOn, Value: yesterday, Document: true})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.Submit(id)
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	errResp, err := resp.ParseError()
	require.NoError(t, err)
	passengers := errResp["passengers"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"passport_expiry": domain.MsgPassportExpired}, passengers["1"])
	assert.Equal(t, 0, env.Gateway.CallCount())
}

func TestAgeBandsFollowPassengerType(t *testing.T) {
	ts := NewTestServer(NewEnv(nil, nil))
	id := startSession(t, ts, StartRequestBody(1, 1, 1, "BDT 12500"), "")

	tests := []struct {
		index int
		born  string
		want  string
	}{
		{0, Now.AddDate(-17, 0, 0).Format(domain.DateLayout), domain.MsgAdultAge},
		{1, Now.AddDate(-12, 0, 0).Format(domain.DateLayout), domain.MsgChildAge},
		{1, Now.AddDate(-1, 0, 0).Format(domain.DateLayout), domain.MsgChildAge},
		{2, Now.AddDate(-2, 0, 0).Format(domain.DateLayout), domain.MsgInfantAge},
		{2, Now.AddDate(0, 0, 1).Format(domain.DateLayout), domain.MsgBirthInFuture},
		{0, "12/05/1990", domain.MsgInvalidDate},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_%s", tt.index, tt.born), func(t *testing.T) {
			resp := ts.SetField(id, tt.index, testutil.FieldValue{Field: domain.FieldBornOn, Value: tt.born})
			require.Equal(t, http.StatusOK, resp.Code)
			s, err := resp.ParseSession()
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Errors[tt.index]["born_on"])
		})
	}
}

func TestCountryCodeChangeRecomposesPhone(t *testing.T) {
	ts := NewTestServer(NewEnv(nil, nil))
	id := startSession(t, ts, StartRequestBody(1, 0, 0, "BDT 12500"), "")

	resp := ts.SetField(id, 0, testutil.FieldValue{Field: domain.FieldPhoneNumber, Value: "1712345678"})
	s, err := resp.ParseSession()
	require.NoError(t, err)
	assert.Equal(t, "+880 1712345678", s.Passengers[0].PhoneNumber)

	resp = ts.SetCountryCode(id, 0, "+44")
	require.Equal(t, http.StatusOK, resp.Code)
	s, err = resp.ParseSession()
	require.NoError(t, err)
	assert.Equal(t, "+44 1712345678", s.Passengers[0].PhoneNumber)
	assert.Equal(t, "+44", s.PhoneCountryCodes[0])

	assert.Equal(t, http.StatusBadRequest, ts.SetCountryCode(id, 0, "44").Code)
}

func TestAutofill(t *testing.T) {
	env := NewEnv(nil, nil)
	env.Profiles.WithProfile("good-token", mock.SampleProfile())
	ts := NewTestServer(env)

	t.Run("at session start", func(t *testing.T) {
		resp := ts.StartSession(StartRequestBody(2, 0, 0, "BDT 12500"), "good-token")
		require.Equal(t, http.StatusCreated, resp.Code)
		s, err := resp.ParseSession()
		require.NoError(t, err)

		assert.True(t, s.AutofillApplied)
		assert.Equal(t, "Rahim", s.Passengers[0].GivenName)
		assert.Equal(t, "+880 1712345678", s.Passengers[0].PhoneNumber)
		assert.Equal(t, "BX1234567", s.Passengers[0].Document().Number)
		assert.Empty(t, s.Passengers[1].GivenName)
		assert.Empty(t, s.Errors[0])
	})

	t.Run("guest start ignores profiles", func(t *testing.T) {
		calls := env.Profiles.CallCount()
		id := startSession(t, ts, StartRequestBody(1, 0, 0, "BDT 12500"), "")
		assert.Equal(t, calls, env.Profiles.CallCount())

		assert.Equal(t, http.StatusUnauthorized, ts.Autofill(id, "").Code)
		assert.Equal(t, http.StatusServiceUnavailable, ts.Autofill(id, "unknown-token").Code)

		resp := ts.Autofill(id, "good-token")
		require.Equal(t, http.StatusOK, resp.Code)
		s, err := resp.ParseSession()
		require.NoError(t, err)
		assert.Equal(t, "Uddin", s.Passengers[0].FamilyName)
	})

	t.Run("unknown token at start is not fatal", func(t *testing.T) {
		resp := ts.StartSession(StartRequestBody(1, 0, 0, "BDT 12500"), "unknown-token")
		require.Equal(t, http.StatusCreated, resp.Code)
		s, err := resp.ParseSession()
		require.NoError(t, err)
		assert.False(t, s.AutofillApplied)
	})
}

func TestSessionBoundToAccount(t *testing.T) {
	const secret = "integration-secret"
	env := NewEnv(nil, nil)
	ts := NewTestServerWithOptions(env, ServerOptions{JWTSecret: secret})

	owner := SignedToken(t, secret, "user_a")
	other := SignedToken(t, secret, "user_b")
	env.Profiles.WithProfile(owner, mock.SampleProfile())

	id := startSession(t, ts, StartRequestBody(1, 0, 0, "BDT 12500"), owner)

	assert.Equal(t, http.StatusOK, ts.GetSessionAs(id, owner).Code)

	for name, resp := range map[string]Response{
		"other account reads": ts.GetSessionAs(id, other),
		"guest reads":         ts.GetSession(id),
		"other account fills": ts.Autofill(id, other),
		"guest edits": ts.SetField(id, 0, testutil.FieldValue{
			Field: domain.FieldGivenName, Value: "Mallory",
		}),
	} {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, http.StatusForbidden, resp.Code, string(resp.Body))
			body, err := resp.ParseError()
			require.NoError(t, err)
			assert.Equal(t, "forbidden", body["code"])
		})
	}

	sessResp := ts.GetSessionAs(id, owner)
	s, err := sessResp.ParseSession()
	require.NoError(t, err)
	assert.NotEqual(t, "Mallory", s.Passengers[0].GivenName)
}

func TestValidateEndpoint(t *testing.T) {
	ts := NewTestServer(NewEnv(nil, nil))
	id := startSession(t, ts, StartRequestBody(1, 0, 0, "BDT 12500"), "")

	resp := ts.Validate(id)
	require.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Valid   bool `json:"valid"`
		Session struct {
			VisibleErrors map[string]map[string]string `json:"visible_errors"`
		} `json:"session"`
	}
	require.NoError(t, json.Unmarshal(resp.Body, &body))
	assert.False(t, body.Valid)
	assert.Len(t, body.Session.VisibleErrors["0"], 10)

	fillAll(t, ts, id)
	require.NoError(t, json.Unmarshal(ts.Validate(id).Body, &body))
	assert.True(t, body.Valid)
}

func TestSubmit_PriceHandling(t *testing.T) {
	tests := []struct {
		name       string
		price      string
		reject     bool
		wantStatus int
		wantTotal  string
	}{
		{name: "bdt amount", price: "BDT 12500", wantStatus: http.StatusOK, wantTotal: "12500.00"},
		{name: "gbp converted", price: "100.50 GBP", wantStatus: http.StatusOK, wantTotal: "15075.00"},
		{name: "bare number", price: "999.999", wantStatus: http.StatusOK, wantTotal: "1000.00"},
		{name: "unreadable falls back to zero", price: "TBA", wantStatus: http.StatusOK, wantTotal: "0.00"},
		{name: "unreadable rejected when hardened", price: "TBA", reject: true, wantStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := usecase.DefaultConfig()
			cfg.RejectZeroAmount = tt.reject
			env := NewEnv(nil, &cfg)
			ts := NewTestServer(env)

			id := startSession(t, ts, StartRequestBody(1, 0, 0, tt.price), "")
			fillAll(t, ts, id)

			resp := ts.Submit(id)
			require.Equal(t, tt.wantStatus, resp.Code, string(resp.Body))
			if tt.wantStatus != http.StatusOK {
				errResp, err := resp.ParseError()
				require.NoError(t, err)
				assert.Equal(t, "zero_amount", errResp["code"])
				assert.Equal(t, 0, env.Gateway.CallCount())
				return
			}
			res, err := resp.ParseSubmit()
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, res.Payload.TotalAmount)
		})
	}
}

func TestSubmit_GatewayFailureKeepsSession(t *testing.T) {
	gateway := mock.NewGateway("sslcommerz", "https://sandbox.pay.example/checkout").
		WithError(domain.NewRetryableGatewayError("sslcommerz", errors.New("upstream 503")))
	env := NewEnv(gateway, nil)
	ts := NewTestServer(env)

	id := startSession(t, ts, StartRequestBody(1, 0, 0, "BDT 12500"), "")
	fillAll(t, ts, id)

	resp := ts.Submit(id)
	require.Equal(t, http.StatusBadGateway, resp.Code)
	assert.NotContains(t, string(resp.Body), "upstream 503")

	sessResp := ts.GetSession(id)
	s, err := sessResp.ParseSession()
	require.NoError(t, err)
	assert.False(t, s.IsSubmitting)

	// The user can retry once the gateway recovers.
	gateway.WithError(nil)
	assert.Equal(t, http.StatusOK, ts.Submit(id).Code)
	assert.Equal(t, 2, gateway.CallCount())
}

func TestSubmit_DeclinedPayment(t *testing.T) {
	gateway := mock.NewGateway("sslcommerz", "").WithStatus("failed")
	ts := NewTestServer(NewEnv(gateway, nil))

	id := startSession(t, ts, StartRequestBody(1, 0, 0, "BDT 12500"), "")
	fillAll(t, ts, id)

	resp := ts.Submit(id)
	assert.Equal(t, http.StatusBadGateway, resp.Code)
	assert.Equal(t, http.StatusOK, ts.GetSession(id).Code)
}

func TestSessionExpires(t *testing.T) {
	env := NewEnv(nil, nil)
	ts := NewTestServer(env)
	id := startSession(t, ts, StartRequestBody(1, 0, 0, "BDT 12500"), "")

	env.Clock.Advance(29 * time.Minute)
	require.Equal(t, http.StatusOK, ts.GetSession(id).Code)

	env.Clock.Advance(31 * time.Minute)
	assert.Equal(t, http.StatusNotFound, ts.GetSession(id).Code)
}

func TestBadRequests(t *testing.T) {
	ts := NewTestServer(NewEnv(nil, nil))
	id := startSession(t, ts, StartRequestBody(1, 0, 0, "BDT 12500"), "")

	tests := []struct {
		name       string
		req        Request
		wantStatus int
	}{
		{"malformed start body", Request{Method: http.MethodPost, Path: "/api/v1/checkout/sessions", Body: []byte("{")}, http.StatusBadRequest},
		{"no travelers", Request{Method: http.MethodPost, Path: "/api/v1/checkout/sessions", Body: StartRequestBody(0, 0, 0, "BDT 1")}, http.StatusBadRequest},
		{"unknown session", Request{Method: http.MethodGet, Path: sessionPath("nope")}, http.StatusNotFound},
		{"passenger out of range", Request{Method: http.MethodPatch, Path: sessionPath(id, "/passengers/3"), Body: map[string]string{"field": "title", "value": "mr"}}, http.StatusNotFound},
		{"non numeric index", Request{Method: http.MethodPatch, Path: sessionPath(id, "/passengers/x"), Body: map[string]string{"field": "title", "value": "mr"}}, http.StatusBadRequest},
		{"document field on passenger route", Request{Method: http.MethodPatch, Path: sessionPath(id, "/passengers/0"), Body: map[string]string{"field": "number", "value": "X"}}, http.StatusBadRequest},
		{"non bearer authorization", Request{Method: http.MethodPost, Path: sessionPath(id, "/autofill"), Header: http.Header{"Authorization": {"Basic dXNlcjpwYXNz"}}}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.Do(tt.req)
			assert.Equal(t, tt.wantStatus, resp.Code, string(resp.Body))
			assert.True(t, strings.HasPrefix(resp.Headers.Get("Content-Type"), "application/json"))
		})
	}
}

func TestHealth(t *testing.T) {
	ts := NewTestServer(NewEnv(nil, nil))

	resp := ts.HealthRequest()

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NotEmpty(t, resp.Headers.Get("X-Request-ID"))
}
