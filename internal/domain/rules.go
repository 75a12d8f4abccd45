package domain

import (
	"regexp"
	"strings"
	"time"
)

// DateLayout is the wire format for every date field.
const DateLayout = "2006-01-02"

// Fixed rule messages.
const (
	MsgRequired             = "Required"
	MsgInvalidName          = "Invalid name format"
	MsgNameTooShort         = "Name must be at least 2 characters"
	MsgInvalidEmail         = "Invalid email format"
	MsgInvalidPhone         = "Invalid phone number"
	MsgInvalidPassport      = "Invalid passport number"
	MsgInvalidDate          = "Invalid date"
	MsgBirthInFuture        = "Date of birth cannot be in the future"
	MsgAdultAge             = "Adult passengers must be at least 18 years old"
	MsgChildAge             = "Child passengers must be between 2 and 11 years old"
	MsgInfantAge            = "Infant passengers must be under 2 years old"
	MsgPassportExpired      = "Passport must not be expired"
	MsgUnknownPassengerType = "Unknown passenger type"
)

// Age band boundaries in whole years.
const (
	AdultMinAge  = 18
	ChildMinAge  = 2
	ChildMaxAge  = 12 // exclusive
	InfantMaxAge = 2  // exclusive
)

var (
	namePattern     = regexp.MustCompile(`^[a-zA-Z\s\-.']+$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern    = regexp.MustCompile(`^[+\d\s\-()]{10,20}$`)
	passportPattern = regexp.MustCompile(`^[a-zA-Z0-9\-\s]{3,}$`)
)

// RuleResult is the outcome of a single field rule.
type RuleResult struct {
	Valid   bool
	Message string
}

func pass() RuleResult { return RuleResult{Valid: true} }

func fail(msg string) RuleResult { return RuleResult{Message: msg} }

// CheckName validates a given or family name.
func CheckName(value string) RuleResult {
	if !namePattern.MatchString(value) {
		return fail(MsgInvalidName)
	}
	if len(strings.TrimSpace(value)) < 2 {
		return fail(MsgNameTooShort)
	}
	return pass()
}

// CheckEmail validates an email address shape.
func CheckEmail(value string) RuleResult {
	if !emailPattern.MatchString(value) {
		return fail(MsgInvalidEmail)
	}
	return pass()
}

// CheckPhone validates a national phone number. The country code must already be stripped.
func CheckPhone(national string) RuleResult {
	if !phonePattern.MatchString(national) {
		return fail(MsgInvalidPhone)
	}
	return pass()
}

// CheckPassportNumber validates a passport number.
func CheckPassportNumber(value string) RuleResult {
	if !passportPattern.MatchString(value) {
		return fail(MsgInvalidPassport)
	}
	return pass()
}

// CheckBornOn validates a date of birth against the passenger's age band as of now.
func CheckBornOn(value string, t PassengerType, now time.Time) RuleResult {
	born, err := ParseDate(value, now.Location())
	if err != nil {
		return fail(MsgInvalidDate)
	}
	if born.After(startOfDay(now)) {
		return fail(MsgBirthInFuture)
	}

	age := AgeOn(born, now)
	switch t {
	case PassengerAdult:
		if age < AdultMinAge {
			return fail(MsgAdultAge)
		}
	case PassengerChild:
		if age < ChildMinAge || age >= ChildMaxAge {
			return fail(MsgChildAge)
		}
	case PassengerInfant:
		if age >= InfantMaxAge {
			return fail(MsgInfantAge)
		}
	default:
		return fail(MsgUnknownPassengerType)
	}
	return pass()
}

// CheckPassportExpiry validates that a document expires strictly after now.
// The expiry date is taken as midnight at its start, so a document expiring today is rejected.
func CheckPassportExpiry(value string, now time.Time) RuleResult {
	expires, err := ParseDate(value, now.Location())
	if err != nil {
		return fail(MsgInvalidDate)
	}
	if !expires.After(now) {
		return fail(MsgPassportExpired)
	}
	return pass()
}

// AgeOn returns the age in completed years on the calendar date of now.
// One year is subtracted while this year's birthday has not yet occurred.
func AgeOn(born, now time.Time) int {
	age := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	return age
}

// ParseDate parses a YYYY-MM-DD date at midnight in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateLayout, strings.TrimSpace(value), loc)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
