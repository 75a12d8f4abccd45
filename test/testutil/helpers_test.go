package testutil

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-booking/passenger-checkout/internal/domain"
)

var helperNow = time.Date(2026, 10, 18, 10, 30, 0, 0, time.UTC)

func TestMustParseTime(t *testing.T) {
	tests := []struct {
		name    string
		dateStr string
	}{
		{name: "valid RFC3339", dateStr: "2026-11-02T15:55:00Z"},
		{name: "valid RFC3339 with timezone", dateStr: "2026-11-02T09:40:00+06:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MustParseTime(t, tt.dateStr)
			assert.False(t, result.IsZero())
		})
	}
}

func TestMustParseDate(t *testing.T) {
	got := MustParseDate(t, "2030-01-01")
	assert.Equal(t, 2030, got.Year())
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 1, got.Day())
}

func TestPtr(t *testing.T) {
	s := Ptr("x")
	require.NotNil(t, s)
	assert.Equal(t, "x", *s)

	n := Ptr(3)
	assert.Equal(t, 3, *n)
}

func TestLoadTestJSON(t *testing.T) {
	data := LoadTestJSON(t, "start_session.json")

	var body struct {
		Adults       int      `json:"adults"`
		PassengerIDs []string `json:"passenger_ids"`
		Flight       struct {
			OfferID string `json:"offer_id"`
			Price   string `json:"price"`
		} `json:"flight"`
	}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, 1, body.Adults)
	assert.Len(t, body.PassengerIDs, 3)
	assert.Equal(t, "GBP 100.50", body.Flight.Price)
}

func TestBirthDateFor_SatisfiesAgeBands(t *testing.T) {
	for _, pt := range []domain.PassengerType{domain.PassengerAdult, domain.PassengerChild, domain.PassengerInfant} {
		t.Run(string(pt), func(t *testing.T) {
			res := domain.CheckBornOn(BirthDateFor(pt, helperNow), pt, helperNow)
			assert.True(t, res.Valid, res.Message)
		})
	}
}

func TestValidFields_CoversEveryRequiredField(t *testing.T) {
	fields := ValidFields(domain.PassengerChild, helperNow, "BX1234567")

	seen := make(map[domain.Field]bool)
	for _, fv := range fields {
		seen[fv.Field] = true
		assert.Equal(t, fv.Field.IsDocumentField(), fv.Document, "document flag for %s", fv.Field)
	}
	for _, f := range append(append([]domain.Field{}, domain.PassengerFields...), domain.DocumentFields...) {
		assert.True(t, seen[f], "missing %s", f)
	}

	expiry := fields[len(fields)-1].Value
	assert.True(t, domain.CheckPassportExpiry(expiry, helperNow).Valid)
}
