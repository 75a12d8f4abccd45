// Package http provides the HTTP handler layer for the checkout API.
// It handles request parsing, validation, and response formatting.
package http

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/flight-booking/passenger-checkout/internal/domain"
)

// maxTravelers caps the party size a single checkout accepts.
const maxTravelers = 9

var countryCodeFormat = regexp.MustCompile(`^\+\d{1,4}$`)

// StartSessionRequest represents the request body for opening a checkout session.
type StartSessionRequest struct {
	// Adults is the number of adult travelers from the search
	Adults int `json:"adults" example:"1"`

	// Children is the number of child travelers (2-11 years)
	Children int `json:"children" example:"1"`

	// Infants is the number of infant travelers (under 2 years)
	Infants int `json:"infants" example:"0"`

	// PassengerIDs are the traveler slot IDs issued by the offer, adults first
	PassengerIDs []string `json:"passenger_ids,omitempty" example:"pas_0001,pas_0002"`

	// Flight is the selected offer
	Flight FlightDTO `json:"flight"`
}

// FlightDTO carries the flight metadata of the selected offer.
type FlightDTO struct {
	OfferID string `json:"offer_id" example:"off_0000AbCdEf"`

	// Price is kept as sent by the search, e.g. "GBP 312.40" or "12500"
	Price string `json:"price" example:"BDT 45210.00"`

	Fare          string `json:"fare,omitempty" example:"Economy Saver"`
	Airline       string `json:"airline,omitempty" example:"Biman Bangladesh"`
	FlightNumber  string `json:"flight_number,omitempty" example:"BG388"`
	Origin        string `json:"origin,omitempty" example:"DAC"`
	Destination   string `json:"destination,omitempty" example:"LHR"`
	DepartureTime string `json:"departure_time,omitempty" example:"2026-11-02T09:15:00+06:00"`
	ArrivalTime   string `json:"arrival_time,omitempty" example:"2026-11-02T16:05:00Z"`
}

// UpdateFieldRequest sets a single passenger or document field.
type UpdateFieldRequest struct {
	// Field is the field name, e.g. "given_name" or "expires_on"
	Field string `json:"field" example:"given_name"`

	// Value is the raw input; for phone_number it is the national number only
	Value string `json:"value" example:"Rahim"`
}

// CountryCodeRequest changes a passenger's phone country code.
type CountryCodeRequest struct {
	CountryCode string `json:"country_code" example:"+44"`
}

// TouchFieldRequest marks a field as interacted with.
type TouchFieldRequest struct {
	Field string `json:"field" example:"email"`

	// Document is true for identity-document fields
	Document bool `json:"document" example:"false"`
}

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// Validate validates the start request and returns any validation errors.
func (r *StartSessionRequest) Validate() error {
	errs := &ValidationErrors{}

	r.validateCounts(errs)
	r.validateFlight(errs)

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func (r *StartSessionRequest) validateCounts(errs *ValidationErrors) {
	if r.Adults < 0 {
		errs.Add("adults", "adults must be a non-negative number")
	}
	if r.Children < 0 {
		errs.Add("children", "children must be a non-negative number")
	}
	if r.Infants < 0 {
		errs.Add("infants", "infants must be a non-negative number")
	}

	total := r.Adults + r.Children + r.Infants
	switch {
	case total < 1:
		errs.Add("adults", "at least one traveler is required")
	case total > maxTravelers:
		errs.Add("adults", fmt.Sprintf("travelers cannot exceed %d", maxTravelers))
	}

	if len(r.PassengerIDs) > total && total > 0 {
		errs.Add("passenger_ids", "more passenger_ids than travelers")
	}
}

func (r *StartSessionRequest) validateFlight(errs *ValidationErrors) {
	r.Flight.OfferID = strings.TrimSpace(r.Flight.OfferID)
	if r.Flight.OfferID == "" {
		errs.Add("flight.offer_id", "offer_id is required")
	}
}

// Validate validates the update request.
// document selects whether the field must be a document field or a passenger field.
func (r *UpdateFieldRequest) Validate(document bool) error {
	errs := &ValidationErrors{}

	r.Field = strings.TrimSpace(r.Field)
	field, ok := domain.ParseField(r.Field)
	switch {
	case r.Field == "":
		errs.Add("field", "field is required")
	case !ok:
		errs.Add("field", fmt.Sprintf("unknown field %q", r.Field))
	case document && !field.IsDocumentField():
		errs.Add("field", fmt.Sprintf("%q is not a document field", r.Field))
	case !document && field.IsDocumentField():
		errs.Add("field", fmt.Sprintf("%q is a document field", r.Field))
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// Validate validates the country code request.
func (r *CountryCodeRequest) Validate() error {
	errs := &ValidationErrors{}

	r.CountryCode = strings.TrimSpace(r.CountryCode)
	if r.CountryCode == "" {
		errs.Add("country_code", "country_code is required")
	} else if !countryCodeFormat.MatchString(r.CountryCode) {
		errs.Add("country_code", "country_code must be '+' followed by 1 to 4 digits")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// Validate validates the touch request.
func (r *TouchFieldRequest) Validate() error {
	errs := &ValidationErrors{}

	r.Field = strings.TrimSpace(r.Field)
	field, ok := domain.ParseField(r.Field)
	switch {
	case r.Field == "":
		errs.Add("field", "field is required")
	case !ok:
		errs.Add("field", fmt.Sprintf("unknown field %q", r.Field))
	case field.IsDocumentField() != r.Document:
		errs.Add("document", fmt.Sprintf("document must be %t for field %q", field.IsDocumentField(), r.Field))
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
