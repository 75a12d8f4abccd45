package usecase

import (
	"fmt"
	"strings"

	"github.com/flight-booking/passenger-checkout/internal/domain"
	"github.com/flight-booking/passenger-checkout/internal/infrastructure/logger"
	"github.com/flight-booking/passenger-checkout/internal/infrastructure/metrics"
	"github.com/flight-booking/passenger-checkout/internal/infrastructure/timeutil"
)

// AssemblerConfig holds the pricing and billing settings of the payload assembler.
type AssemblerConfig struct {
	GBPToBDTRate     float64
	RejectZeroAmount bool
	Billing          domain.BillingAddress
}

// PayloadAssembler turns a checkout session into a payment-initiation payload.
type PayloadAssembler struct {
	validator *ValidationOrchestrator
	clock     timeutil.Clock
	cfg       AssemblerConfig
	log       *logger.Logger
	metrics   *metrics.Metrics
}

// NewPayloadAssembler creates a PayloadAssembler. A nil logger disables logging.
func NewPayloadAssembler(validator *ValidationOrchestrator, clock timeutil.Clock, cfg AssemblerConfig, log *logger.Logger, m *metrics.Metrics) *PayloadAssembler {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	if validator == nil {
		validator = NewValidationOrchestrator(clock)
	}
	if log == nil {
		log = logger.Nop()
	}
	if cfg.GBPToBDTRate <= 0 {
		cfg.GBPToBDTRate = DefaultGBPToBDTRate
	}
	return &PayloadAssembler{validator: validator, clock: clock, cfg: cfg, log: log, metrics: m}
}

// Assemble validates the session again and builds the booking payload.
// It returns a *domain.ValidationFailure instead of emitting blank fields,
// and domain.ErrZeroAmount when zero amounts are rejected.
func (a *PayloadAssembler) Assemble(state domain.CheckoutState) (domain.BookingPayload, error) {
	if len(state.Passengers) == 0 {
		return domain.BookingPayload{}, domain.WrapInvalidRequest("checkout has no passengers")
	}
	if ok, errs := a.validator.ValidateAll(state.Passengers); !ok {
		return domain.BookingPayload{}, domain.NewValidationFailure(errs)
	}

	price := a.resolvePrice(state)
	if a.cfg.RejectZeroAmount && price.IsZero() {
		return domain.BookingPayload{}, fmt.Errorf("%w: price %q", domain.ErrZeroAmount, state.Flight.Price)
	}

	timestamp := a.clock.Now().UnixMilli()
	passengers := make([]domain.Passenger, len(state.Passengers))
	ids := make([]string, len(state.Passengers))
	for i, p := range state.Passengers {
		passengers[i] = normalizePassenger(p, i, timestamp)
		ids[i] = passengers[i].ID
	}

	contact := passengers[0]
	return domain.BookingPayload{
		TotalAmount:      price.String(),
		Currency:         price.Currency,
		OfferID:          strings.TrimSpace(state.Flight.OfferID),
		PassengerIDs:     ids,
		Passengers:       passengers,
		CustomerName:     strings.TrimSpace(contact.GivenName + " " + contact.FamilyName),
		CustomerEmail:    contact.Email,
		CustomerPhone:    contact.PhoneNumber,
		CustomerAddress:  a.cfg.Billing.Address,
		CustomerCity:     a.cfg.Billing.City,
		CustomerPostcode: a.cfg.Billing.Postcode,
		CustomerCountry:  a.cfg.Billing.Country,
	}, nil
}

func (a *PayloadAssembler) resolvePrice(state domain.CheckoutState) domain.Money {
	price, err := domain.ParsePriceStrict(state.Flight.Price, a.cfg.GBPToBDTRate)
	if err != nil {
		a.log.Warn().
			Str("session_id", state.ID).
			Str("price", state.Flight.Price).
			Msg("Price could not be parsed, falling back to zero BDT")
		a.metrics.IncPriceFallback()
		return domain.ZeroMoney()
	}
	return price
}

// normalizePassenger trims every string, upper-cases the issuing country and
// derives a unique identifier for documents that have none.
func normalizePassenger(p domain.Passenger, index int, timestamp int64) domain.Passenger {
	out := p.Clone()
	out.ID = strings.TrimSpace(out.ID)
	out.Title = strings.TrimSpace(out.Title)
	out.GivenName = strings.TrimSpace(out.GivenName)
	out.FamilyName = strings.TrimSpace(out.FamilyName)
	out.Gender = strings.TrimSpace(out.Gender)
	out.BornOn = strings.TrimSpace(out.BornOn)
	out.Email = strings.TrimSpace(out.Email)
	out.PhoneNumber = strings.TrimSpace(out.PhoneNumber)

	for d := range out.IdentityDocuments {
		doc := &out.IdentityDocuments[d]
		doc.Type = strings.TrimSpace(doc.Type)
		if doc.Type == "" {
			doc.Type = domain.DocumentTypePassport
		}
		doc.Number = strings.TrimSpace(doc.Number)
		doc.IssuingCountryCode = strings.ToUpper(strings.TrimSpace(doc.IssuingCountryCode))
		doc.ExpiresOn = strings.TrimSpace(doc.ExpiresOn)
		if strings.TrimSpace(doc.UniqueIdentifier) == "" {
			doc.UniqueIdentifier = uniqueIdentifier(*doc, index, timestamp)
		}
	}
	return out
}

// uniqueIdentifier builds "{type}_{number}_{timestamp}_{index}", or
// "passport_{timestamp}_{index}" when the document has no number.
func uniqueIdentifier(doc domain.IdentityDocument, index int, timestamp int64) string {
	if doc.Number == "" {
		return fmt.Sprintf("%s_%d_%d", domain.DocumentTypePassport, timestamp, index)
	}
	return fmt.Sprintf("%s_%s_%d_%d", doc.Type, doc.Number, timestamp, index)
}
