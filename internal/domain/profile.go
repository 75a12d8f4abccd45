package domain

import "strings"

// Profile is the stored profile of an authenticated user.
type Profile struct {
	Title                  string `json:"title"`
	FirstName              string `json:"first_name"`
	LastName               string `json:"last_name"`
	Email                  string `json:"email"`
	DateOfBirth            string `json:"date_of_birth"`
	Gender                 string `json:"gender"`
	Phone                  string `json:"phone"`
	PhoneCountryCode       string `json:"phone_country_code"`
	PassportNumber         string `json:"passport_number"`
	PassportIssuingCountry string `json:"passport_issuing_country"`
	PassportExpiry         string `json:"passport_expiry"`
}

// AutofillResult is the outcome of merging a profile into the passenger list.
type AutofillResult struct {
	Passengers []Passenger

	// CountryCode is the phone country code of passenger 0 after the merge
	CountryCode string

	// Changed lists the fields of passenger 0 that received a profile value
	Changed []Field
}

// ApplyProfile merges a profile into the first passenger.
// Only non-empty profile values are copied, so a filled field is never blanked.
// Passport fields are copied only when the profile has a passport number and
// the passenger has a document slot. The input slice is not modified.
func ApplyProfile(passengers []Passenger, countryCode string, profile Profile) AutofillResult {
	out := ClonePassengers(passengers)
	res := AutofillResult{Passengers: out, CountryCode: countryCode}
	if len(out) == 0 {
		return res
	}

	p := &out[0]
	set := func(field Field, dst *string, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		*dst = value
		res.Changed = append(res.Changed, field)
	}

	set(FieldTitle, &p.Title, profile.Title)
	set(FieldGivenName, &p.GivenName, profile.FirstName)
	set(FieldFamilyName, &p.FamilyName, profile.LastName)
	set(FieldEmail, &p.Email, profile.Email)
	set(FieldBornOn, &p.BornOn, dateOnly(profile.DateOfBirth))
	set(FieldGender, &p.Gender, profile.Gender)

	if phone := strings.TrimSpace(profile.Phone); phone != "" {
		if cc := strings.TrimSpace(profile.PhoneCountryCode); cc != "" {
			res.CountryCode = cc
		}
		if res.CountryCode == "" {
			res.CountryCode = DefaultPhoneCountryCode
		}
		p.PhoneNumber = ComposePhone(res.CountryCode, phone)
		res.Changed = append(res.Changed, FieldPhoneNumber)
	}

	if strings.TrimSpace(profile.PassportNumber) != "" && len(p.IdentityDocuments) > 0 {
		doc := &p.IdentityDocuments[0]
		set(FieldDocumentNumber, &doc.Number, profile.PassportNumber)
		set(FieldDocumentIssuingCountry, &doc.IssuingCountryCode, profile.PassportIssuingCountry)
		set(FieldDocumentExpiresOn, &doc.ExpiresOn, dateOnly(profile.PassportExpiry))
	}

	return res
}

// dateOnly trims an RFC 3339 timestamp down to its date part.
func dateOnly(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) && s[len(DateLayout)] == 'T' {
		return s[:len(DateLayout)]
	}
	return s
}
