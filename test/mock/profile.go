package mock

import (
	"context"
	"sync"

	"github.com/flight-booking/passenger-checkout/internal/domain"
)

// Profiles is a mock domain.ProfileProvider keyed by bearer token.
// Unknown tokens yield domain.ErrProfileUnavailable.
type Profiles struct {
	mu       sync.Mutex
	profiles map[string]domain.Profile
	calls    int
}

// NewProfiles creates an empty profile provider.
func NewProfiles() *Profiles {
	return &Profiles{profiles: make(map[string]domain.Profile)}
}

// WithProfile registers the profile returned for token.
func (p *Profiles) WithProfile(token string, profile domain.Profile) *Profiles {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.profiles[token] = profile
	return p
}

// FetchProfile implements domain.ProfileProvider.FetchProfile.
func (p *Profiles) FetchProfile(ctx context.Context, token string) (domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return domain.Profile{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++

	profile, ok := p.profiles[token]
	if !ok {
		return domain.Profile{}, domain.ErrProfileUnavailable
	}
	return profile, nil
}

// CallCount returns the number of lookups made.
func (p *Profiles) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// SampleProfile returns a complete profile for an adult Bangladeshi traveler.
func SampleProfile() domain.Profile {
	return domain.Profile{
		Title:                  "mr",
		FirstName:              "Rahim",
		LastName:               "Uddin",
		Email:                  "rahim@example.com",
		DateOfBirth:            "1990-05-12",
		Gender:                 "m",
		Phone:                  "1712345678",
		PhoneCountryCode:       "+880",
		PassportNumber:         "BX1234567",
		PassportIssuingCountry: "BD",
		PassportExpiry:         "2030-01-01",
	}
}

var _ domain.ProfileProvider = (*Profiles)(nil)
