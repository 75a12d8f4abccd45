// Package domain contains the core entities and business rules of the passenger checkout engine.
// Nothing in this package performs I/O; every rule that depends on the current time receives it explicitly.
package domain

import (
	"fmt"
	"strings"
)

// PassengerType is the age band a passenger was booked under.
type PassengerType string

// Passenger type bands.
const (
	PassengerAdult  PassengerType = "adult"
	PassengerChild  PassengerType = "child"
	PassengerInfant PassengerType = "infant"
)

// IsValid checks if the passenger type is a known band.
func (t PassengerType) IsValid() bool {
	switch t {
	case PassengerAdult, PassengerChild, PassengerInfant:
		return true
	default:
		return false
	}
}

// DocumentTypePassport is the only identity document type the checkout accepts.
const DocumentTypePassport = "passport"

// Passenger is one traveler on the booking together with their identity document.
type Passenger struct {
	// ID correlates the passenger with a pre-reserved traveler slot
	ID string `json:"id"`

	// Type is fixed at creation from the search-time traveler counts
	Type PassengerType `json:"type"`

	Title      string `json:"title"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Gender     string `json:"gender"`

	// BornOn is the date of birth in YYYY-MM-DD format
	BornOn string `json:"born_on"`

	Email string `json:"email"`

	// PhoneNumber is composed as "{countryCode} {nationalNumber}"
	PhoneNumber string `json:"phone_number"`

	// IdentityDocuments always holds exactly one document; only index 0 is used
	IdentityDocuments []IdentityDocument `json:"identity_documents"`
}

// IdentityDocument is a travel document attached to a passenger.
type IdentityDocument struct {
	Type               string `json:"type"`
	Number             string `json:"number"`
	IssuingCountryCode string `json:"issuing_country_code"`

	// ExpiresOn is the expiry date in YYYY-MM-DD format
	ExpiresOn string `json:"expires_on"`

	// UniqueIdentifier is derived at submission time, never entered by the user
	UniqueIdentifier string `json:"unique_identifier,omitempty"`
}

// TravelerCounts holds the search-time traveler counts per band.
type TravelerCounts struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

// Total returns the number of travelers across all bands.
func (c TravelerCounts) Total() int {
	return c.Adults + c.Children + c.Infants
}

// Validate checks the counts describe a bookable party.
func (c TravelerCounts) Validate() error {
	if c.Adults < 0 || c.Children < 0 || c.Infants < 0 {
		return WrapInvalidRequest("traveler counts must not be negative")
	}
	if c.Total() < 1 {
		return WrapInvalidRequest("at least one traveler is required")
	}
	return nil
}

// NewPassengers creates blank passenger records from traveler counts.
// Adults come first, then children, then infants, matching the order passenger IDs were issued in.
// IDs are taken from ids in order; newID fills any slot the pre-issued list does not cover.
func NewPassengers(counts TravelerCounts, ids []string, newID func() string) []Passenger {
	passengers := make([]Passenger, 0, counts.Total())

	appendBand := func(n int, t PassengerType) {
		for i := 0; i < n; i++ {
			idx := len(passengers)
			id := ""
			if idx < len(ids) {
				id = strings.TrimSpace(ids[idx])
			}
			if id == "" && newID != nil {
				id = newID()
			}
			passengers = append(passengers, newBlankPassenger(id, t))
		}
	}

	appendBand(counts.Adults, PassengerAdult)
	appendBand(counts.Children, PassengerChild)
	appendBand(counts.Infants, PassengerInfant)

	return passengers
}

func newBlankPassenger(id string, t PassengerType) Passenger {
	return Passenger{
		ID:   id,
		Type: t,
		IdentityDocuments: []IdentityDocument{
			{Type: DocumentTypePassport},
		},
	}
}

// Clone returns a deep copy of the passenger.
func (p Passenger) Clone() Passenger {
	docs := make([]IdentityDocument, len(p.IdentityDocuments))
	copy(docs, p.IdentityDocuments)
	p.IdentityDocuments = docs
	return p
}

// Document returns the passenger's primary identity document, or the zero value if none exists.
func (p Passenger) Document() IdentityDocument {
	if len(p.IdentityDocuments) == 0 {
		return IdentityDocument{}
	}
	return p.IdentityDocuments[0]
}

// FieldValue returns the current value of a passenger or document field.
func (p Passenger) FieldValue(field Field) (string, error) {
	doc := p.Document()
	switch field {
	case FieldTitle:
		return p.Title, nil
	case FieldGivenName:
		return p.GivenName, nil
	case FieldFamilyName:
		return p.FamilyName, nil
	case FieldGender:
		return p.Gender, nil
	case FieldBornOn:
		return p.BornOn, nil
	case FieldEmail:
		return p.Email, nil
	case FieldPhoneNumber:
		return p.PhoneNumber, nil
	case FieldDocumentNumber:
		return doc.Number, nil
	case FieldDocumentIssuingCountry:
		return doc.IssuingCountryCode, nil
	case FieldDocumentExpiresOn:
		return doc.ExpiresOn, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

// ClonePassengers deep-copies a passenger list.
func ClonePassengers(passengers []Passenger) []Passenger {
	if passengers == nil {
		return nil
	}
	out := make([]Passenger, len(passengers))
	for i, p := range passengers {
		out[i] = p.Clone()
	}
	return out
}

// WithField returns a copy of the passenger with a passenger-level field set.
// Document fields are rejected; use WithDocumentField for those.
func (p Passenger) WithField(field Field, value string) (Passenger, error) {
	out := p.Clone()
	switch field {
	case FieldTitle:
		out.Title = value
	case FieldGivenName:
		out.GivenName = value
	case FieldFamilyName:
		out.FamilyName = value
	case FieldGender:
		out.Gender = value
	case FieldBornOn:
		out.BornOn = value
	case FieldEmail:
		out.Email = value
	case FieldPhoneNumber:
		out.PhoneNumber = value
	default:
		return p, fmt.Errorf("%w: %q is not a passenger field", ErrUnknownField, field)
	}
	return out, nil
}

// WithDocumentField returns a copy of the passenger with a field of the primary document set.
// A passport slot is created when the passenger has none.
func (p Passenger) WithDocumentField(field Field, value string) (Passenger, error) {
	if !field.IsDocumentField() {
		return p, fmt.Errorf("%w: %q is not a document field", ErrUnknownField, field)
	}

	out := p.Clone()
	if len(out.IdentityDocuments) == 0 {
		out.IdentityDocuments = []IdentityDocument{{Type: DocumentTypePassport}}
	}
	doc := &out.IdentityDocuments[0]
	switch field {
	case FieldDocumentNumber:
		doc.Number = value
	case FieldDocumentIssuingCountry:
		doc.IssuingCountryCode = value
	case FieldDocumentExpiresOn:
		doc.ExpiresOn = value
	}
	return out, nil
}
