// Package testutil provides test helper functions for unit and integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/flight-booking/passenger-checkout/internal/domain"
)

// LoadTestJSON loads a JSON file from the testdata directory.
// The filename should be relative to the testdata directory.
func LoadTestJSON(t *testing.T, filename string) []byte {
	t.Helper()

	// Get the path to testdata relative to this file
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}

	// Navigate to project root (testutil is in test/testutil)
	projectRoot := filepath.Join(filepath.Dir(currentFile), "..", "..")
	testDataPath := filepath.Join(projectRoot, "test", "testdata", filename)

	data, err := os.ReadFile(testDataPath)
	if err != nil {
		t.Fatalf("Failed to load test file %s: %v", filename, err)
	}
	return data
}

// MustParseTime parses a time string in RFC3339 format.
// It fails the test if parsing fails.
func MustParseTime(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		t.Fatalf("Failed to parse time %s: %v", dateStr, err)
	}
	return parsed
}

// MustParseDate parses a date string in YYYY-MM-DD format.
// It fails the test if parsing fails.
func MustParseDate(t *testing.T, dateStr string) time.Time {
	t.Helper()
	parsed, err := time.Parse(domain.DateLayout, dateStr)
	if err != nil {
		t.Fatalf("Failed to parse date %s: %v", dateStr, err)
	}
	return parsed
}

// Ptr returns a pointer to the given value.
// Useful for creating pointers to literals in tests.
func Ptr[T any](v T) *T {
	return &v
}

// FieldValue is one field update as sent to the passenger endpoints.
type FieldValue struct {
	Field    domain.Field
	Value    string
	Document bool
}

// BirthDateFor returns a date of birth that is valid for the passenger type on now.
func BirthDateFor(t domain.PassengerType, now time.Time) string {
	switch t {
	case domain.PassengerChild:
		return now.AddDate(-7, 0, 0).Format(domain.DateLayout)
	case domain.PassengerInfant:
		return now.AddDate(0, -10, 0).Format(domain.DateLayout)
	default:
		return now.AddDate(-35, 0, 0).Format(domain.DateLayout)
	}
}

// ValidFields returns a complete, valid set of field values for a passenger of type t.
// phone_number carries only the national number; the country code is kept separately.
func ValidFields(t domain.PassengerType, now time.Time, passport string) []FieldValue {
	title := "mr"
	if t != domain.PassengerAdult {
		title = "mstr"
	}
	return []FieldValue{
		{Field: domain.FieldTitle, Value: title},
		{Field: domain.FieldGivenName, Value: "Rahim"},
		{Field: domain.FieldFamilyName, Value: "Uddin"},
		{Field: domain.FieldGender, Value: "m"},
		{Field: domain.FieldBornOn, Value: BirthDateFor(t, now)},
		{Field: domain.FieldEmail, Value: "rahim@example.com"},
		{Field: domain.FieldPhoneNumber, Value: "1712345678"},
		{Field: domain.FieldDocumentNumber, Value: passport, Document: true},
		{Field: domain.FieldDocumentIssuingCountry, Value: "BD", Document: true},
		{Field: domain.FieldDocumentExpiresOn, Value: now.AddDate(4, 0, 0).Format(domain.DateLayout), Document: true},
	}
}
