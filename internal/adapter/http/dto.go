package http

import (
	"github.com/flight-booking/passenger-checkout/internal/domain"
	"github.com/flight-booking/passenger-checkout/internal/usecase"
)

// SessionResponseDTO is the data transfer object for checkout session responses.
// Errors holds every current field error; VisibleErrors only those of touched fields.
type SessionResponseDTO struct {
	ID                string                    `json:"id"`
	Flight            domain.FlightDetails      `json:"flight"`
	Counts            domain.TravelerCounts     `json:"counts"`
	Passengers        []domain.Passenger        `json:"passengers"`
	PhoneCountryCodes []string                  `json:"phone_country_codes"`
	Touched           []domain.TouchedKey       `json:"touched"`
	Errors            map[int]map[string]string `json:"errors"`
	VisibleErrors     map[int]map[string]string `json:"visible_errors"`
	IsSubmitting      bool                      `json:"is_submitting"`
	AutofillApplied   bool                      `json:"autofill_applied"`
	Submitted         bool                      `json:"submitted"`
	CreatedAt         string                    `json:"created_at"`
	UpdatedAt         string                    `json:"updated_at"`
}

// ValidationResponseDTO is returned by the whole-form validation endpoint.
type ValidationResponseDTO struct {
	Valid   bool               `json:"valid"`
	Session SessionResponseDTO `json:"session"`
}

// SubmitResponseDTO is returned once payment has been initiated.
type SubmitResponseDTO struct {
	SubmissionID string                `json:"submission_id"`
	GatewayURL   string                `json:"gateway_url"`
	Payload      domain.BookingPayload `json:"payload"`
}

// PriceResponseDTO is the normalized form of a price string.
type PriceResponseDTO struct {
	Input       string  `json:"input"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	TotalAmount string  `json:"total_amount"`

	// Parsed is false when the input was unreadable and zero BDT was substituted
	Parsed bool `json:"parsed"`
}

// ToSessionResponseDTO converts a domain CheckoutState to a SessionResponseDTO.
func ToSessionResponseDTO(s domain.CheckoutState) SessionResponseDTO {
	return SessionResponseDTO{
		ID:                s.ID,
		Flight:            s.Flight,
		Counts:            s.Counts,
		Passengers:        nonNilPassengers(s.Passengers),
		PhoneCountryCodes: phoneCountryCodes(s),
		Touched:           s.Touched.Keys(),
		Errors:            s.Errors.Clone(),
		VisibleErrors:     s.VisibleErrors(),
		IsSubmitting:      s.IsSubmitting,
		AutofillApplied:   s.AutofillApplied,
		Submitted:         s.Submitted,
		CreatedAt:         formatTimestamp(s.CreatedAt),
		UpdatedAt:         formatTimestamp(s.UpdatedAt),
	}
}

// ToValidationResponseDTO converts a validation result.
func ToValidationResponseDTO(res usecase.ValidationResult) ValidationResponseDTO {
	return ValidationResponseDTO{
		Valid:   res.Valid,
		Session: ToSessionResponseDTO(res.State),
	}
}

// ToSubmitResponseDTO converts a submission result.
func ToSubmitResponseDTO(res usecase.SubmitResult) SubmitResponseDTO {
	return SubmitResponseDTO{
		SubmissionID: res.SubmissionID,
		GatewayURL:   res.GatewayURL,
		Payload:      res.Payload,
	}
}

func nonNilPassengers(p []domain.Passenger) []domain.Passenger {
	if p == nil {
		return []domain.Passenger{}
	}
	return p
}

// phoneCountryCodes reports one code per passenger, filling gaps with the default.
func phoneCountryCodes(s domain.CheckoutState) []string {
	codes := make([]string, len(s.Passengers))
	for i := range s.Passengers {
		codes[i] = s.CountryCode(i)
	}
	return codes
}
