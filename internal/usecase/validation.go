package usecase

import (
	"fmt"
	"strings"

	"github.com/flight-booking/passenger-checkout/internal/domain"
	"github.com/flight-booking/passenger-checkout/internal/infrastructure/timeutil"
)

// ValidationOrchestrator runs field rules for single fields and for the whole passenger list.
// It never mutates its inputs; every result is a fresh error map.
type ValidationOrchestrator struct {
	clock timeutil.Clock
}

// NewValidationOrchestrator creates a ValidationOrchestrator that reads "now" from clock.
func NewValidationOrchestrator(clock timeutil.Clock) *ValidationOrchestrator {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	return &ValidationOrchestrator{clock: clock}
}

// CheckField applies the rules for one field of a passenger to value.
// Empty values always fail with "Required"; format rules only run on non-empty values.
func (v *ValidationOrchestrator) CheckField(p domain.Passenger, field domain.Field, value string) domain.RuleResult {
	if field == domain.FieldPhoneNumber {
		value = domain.StripCountryCode(value)
	}
	if strings.TrimSpace(value) == "" {
		return domain.RuleResult{Message: domain.MsgRequired}
	}

	switch field {
	case domain.FieldGivenName, domain.FieldFamilyName:
		return domain.CheckName(value)
	case domain.FieldEmail:
		return domain.CheckEmail(value)
	case domain.FieldPhoneNumber:
		return domain.CheckPhone(value)
	case domain.FieldBornOn:
		return domain.CheckBornOn(value, p.Type, v.clock.Now())
	case domain.FieldDocumentNumber:
		return domain.CheckPassportNumber(value)
	case domain.FieldDocumentExpiresOn:
		return domain.CheckPassportExpiry(value, v.clock.Now())
	default:
		// title, gender and issuing country only need a value
		return domain.RuleResult{Valid: true}
	}
}

// ValidateField recomputes the error for one field of passenger index using value,
// and returns an updated copy of errs.
func (v *ValidationOrchestrator) ValidateField(errs domain.ValidationErrorMap, passengers []domain.Passenger, index int, field domain.Field, value string) (domain.ValidationErrorMap, error) {
	if index < 0 || index >= len(passengers) {
		return errs, fmt.Errorf("%w: %d", domain.ErrPassengerIndexOutOfRange, index)
	}
	key, ok := field.ErrorKey()
	if !ok {
		return errs, fmt.Errorf("%w: %q", domain.ErrUnknownField, field)
	}

	result := v.CheckField(passengers[index], field, value)
	return errs.Apply(index, key, result), nil
}

// RevalidateFields recomputes the listed fields of passenger index from its current values.
func (v *ValidationOrchestrator) RevalidateFields(errs domain.ValidationErrorMap, passengers []domain.Passenger, index int, fields []domain.Field) (domain.ValidationErrorMap, error) {
	if index < 0 || index >= len(passengers) {
		return errs, fmt.Errorf("%w: %d", domain.ErrPassengerIndexOutOfRange, index)
	}

	out := errs
	for _, field := range fields {
		value, err := passengers[index].FieldValue(field)
		if err != nil {
			return errs, err
		}
		out, err = v.ValidateField(out, passengers, index, field, value)
		if err != nil {
			return errs, err
		}
	}
	return out, nil
}

// ValidateAll checks every required field of every passenger.
// It does not stop at the first failure, so the map lists all errors.
func (v *ValidationOrchestrator) ValidateAll(passengers []domain.Passenger) (bool, domain.ValidationErrorMap) {
	errs := domain.ValidationErrorMap{}

	for i, p := range passengers {
		for _, field := range domain.PassengerFields {
			errs = v.check(errs, i, p, field)
		}
		for _, field := range domain.DocumentFields {
			errs = v.check(errs, i, p, field)
		}
	}

	return errs.IsEmpty(), errs
}

func (v *ValidationOrchestrator) check(errs domain.ValidationErrorMap, index int, p domain.Passenger, field domain.Field) domain.ValidationErrorMap {
	value, _ := p.FieldValue(field)
	key, _ := field.ErrorKey()
	result := v.CheckField(p, field, value)
	if result.Valid {
		return errs
	}
	return errs.Set(index, key, result.Message)
}
