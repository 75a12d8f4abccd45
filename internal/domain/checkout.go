package domain

import "time"

// FlightDetails is the flight metadata a checkout was opened for.
// Values are opaque strings until the price is parsed at submission.
type FlightDetails struct {
	OfferID       string `json:"offer_id"`
	Price         string `json:"price"`
	Fare          string `json:"fare,omitempty"`
	Airline       string `json:"airline,omitempty"`
	FlightNumber  string `json:"flight_number,omitempty"`
	Origin        string `json:"origin,omitempty"`
	Destination   string `json:"destination,omitempty"`
	DepartureTime string `json:"departure_time,omitempty"`
	ArrivalTime   string `json:"arrival_time,omitempty"`
}

// CheckoutState is the complete state of one checkout session.
// Transitions never mutate the receiver; each With method returns an updated copy.
type CheckoutState struct {
	ID     string         `json:"id"`
	Flight FlightDetails  `json:"flight"`
	Counts TravelerCounts `json:"counts"`

	Passengers []Passenger `json:"passengers"`

	// PhoneCountryCodes holds the selected country code per passenger index
	PhoneCountryCodes []string `json:"phone_country_codes"`

	Touched TouchedState       `json:"touched"`
	Errors  ValidationErrorMap `json:"errors"`

	// Owner is the verified subject of the account that started or autofilled the session
	Owner string `json:"owner,omitempty"`

	IsSubmitting    bool `json:"is_submitting"`
	AutofillApplied bool `json:"autofill_applied"`

	// Submitted is set once payment was initiated and the session could not be discarded
	Submitted bool `json:"submitted,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCheckoutState creates a session with blank passengers and default country codes.
func NewCheckoutState(id string, flight FlightDetails, counts TravelerCounts, passengers []Passenger, defaultCountryCode string, now time.Time) CheckoutState {
	codes := make([]string, len(passengers))
	for i := range codes {
		codes[i] = defaultCountryCode
	}
	return CheckoutState{
		ID:                id,
		Flight:            flight,
		Counts:            counts,
		Passengers:        ClonePassengers(passengers),
		PhoneCountryCodes: codes,
		Touched:           NewTouchedState(),
		Errors:            ValidationErrorMap{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// Clone deep-copies the state.
func (s CheckoutState) Clone() CheckoutState {
	out := s
	out.Passengers = ClonePassengers(s.Passengers)
	out.PhoneCountryCodes = append([]string(nil), s.PhoneCountryCodes...)
	out.Touched = s.Touched.Clone()
	out.Errors = s.Errors.Clone()
	return out
}

// HasPassenger reports whether index addresses a passenger of this session.
func (s CheckoutState) HasPassenger(index int) bool {
	return index >= 0 && index < len(s.Passengers)
}

// PassengerIDs returns the passenger identifiers in passenger order.
func (s CheckoutState) PassengerIDs() []string {
	ids := make([]string, len(s.Passengers))
	for i, p := range s.Passengers {
		ids[i] = p.ID
	}
	return ids
}

// CountryCode returns the phone country code stored for a passenger.
func (s CheckoutState) CountryCode(index int) string {
	if index < 0 || index >= len(s.PhoneCountryCodes) || s.PhoneCountryCodes[index] == "" {
		return DefaultPhoneCountryCode
	}
	return s.PhoneCountryCodes[index]
}

// WithPassengers replaces the passenger list.
func (s CheckoutState) WithPassengers(passengers []Passenger) CheckoutState {
	out := s.Clone()
	out.Passengers = ClonePassengers(passengers)
	return out
}

// WithPassenger replaces a single passenger.
func (s CheckoutState) WithPassenger(index int, p Passenger) CheckoutState {
	out := s.Clone()
	out.Passengers[index] = p.Clone()
	return out
}

// WithCountryCode stores the phone country code of a passenger.
func (s CheckoutState) WithCountryCode(index int, code string) CheckoutState {
	out := s.Clone()
	for len(out.PhoneCountryCodes) <= index {
		out.PhoneCountryCodes = append(out.PhoneCountryCodes, DefaultPhoneCountryCode)
	}
	out.PhoneCountryCodes[index] = code
	return out
}

// WithErrors replaces the error map.
func (s CheckoutState) WithErrors(errs ValidationErrorMap) CheckoutState {
	out := s.Clone()
	out.Errors = errs.Clone()
	return out
}

// WithTouched replaces the touched set.
func (s CheckoutState) WithTouched(touched TouchedState) CheckoutState {
	out := s.Clone()
	out.Touched = touched.Clone()
	return out
}

// WithSubmitting sets the submission guard.
func (s CheckoutState) WithSubmitting(submitting bool) CheckoutState {
	out := s.Clone()
	out.IsSubmitting = submitting
	return out
}

// WithSubmitted marks the session as finished and releases the submission guard.
func (s CheckoutState) WithSubmitted() CheckoutState {
	out := s.Clone()
	out.IsSubmitting = false
	out.Submitted = true
	return out
}

// WithOwner binds the session to an account subject.
func (s CheckoutState) WithOwner(subject string) CheckoutState {
	out := s.Clone()
	out.Owner = subject
	return out
}

// OwnedBy reports whether subject may access the session. Unbound sessions are open to everyone.
func (s CheckoutState) OwnedBy(subject string) bool {
	return s.Owner == "" || s.Owner == subject
}

// WithAutofillApplied marks the profile merge as done.
func (s CheckoutState) WithAutofillApplied() CheckoutState {
	out := s.Clone()
	out.AutofillApplied = true
	return out
}

// WithUpdatedAt stamps the modification time.
func (s CheckoutState) WithUpdatedAt(now time.Time) CheckoutState {
	out := s.Clone()
	out.UpdatedAt = now
	return out
}

// VisibleErrors returns only the errors whose field has been touched.
func (s CheckoutState) VisibleErrors() ValidationErrorMap {
	visible := ValidationErrorMap{}
	for idx, fields := range s.Errors {
		for _, f := range PassengerFields {
			visible = s.copyIfTouched(visible, idx, fields, f, false)
		}
		for _, f := range DocumentFields {
			visible = s.copyIfTouched(visible, idx, fields, f, true)
		}
	}
	return visible
}

func (s CheckoutState) copyIfTouched(dst ValidationErrorMap, idx int, fields map[string]string, f Field, document bool) ValidationErrorMap {
	key, _ := f.ErrorKey()
	msg, ok := fields[key]
	if !ok || !s.Touched.IsTouched(TouchedKey{Passenger: idx, Field: f, Document: document}) {
		return dst
	}
	return dst.Set(idx, key, msg)
}
