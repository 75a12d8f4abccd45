package domain

import (
	"regexp"
	"strings"
)

// DefaultPhoneCountryCode is used for passengers whose country code was never chosen.
const DefaultPhoneCountryCode = "+880"

// countryCodePattern matches a single leading "+digits" token and the spacing after it.
var countryCodePattern = regexp.MustCompile(`^\+\d+\s*`)

// ComposePhone joins a country code and a national number as "{countryCode} {national}".
func ComposePhone(countryCode, national string) string {
	return countryCode + " " + national
}

// StripCountryCode removes a leading "+digits" token from a composed phone number.
// Numbers without a leading "+" are returned unchanged.
func StripCountryCode(phone string) string {
	return countryCodePattern.ReplaceAllString(strings.TrimSpace(phone), "")
}

// SplitPhone separates a composed phone number into its country code and national part.
// The country code is empty when the number carries none.
func SplitPhone(phone string) (countryCode, national string) {
	phone = strings.TrimSpace(phone)
	loc := countryCodePattern.FindStringIndex(phone)
	if loc == nil {
		return "", phone
	}
	return strings.TrimSpace(phone[:loc[1]]), phone[loc[1]:]
}
