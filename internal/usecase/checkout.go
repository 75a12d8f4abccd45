// Package usecase contains the checkout business logic: session lifecycle,
// passenger validation and payment submission.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/flight-booking/passenger-checkout/internal/domain"
	"github.com/flight-booking/passenger-checkout/internal/infrastructure/logger"
	"github.com/flight-booking/passenger-checkout/internal/infrastructure/metrics"
	"github.com/flight-booking/passenger-checkout/internal/infrastructure/timeutil"
)

// Default checkout settings.
const (
	DefaultGBPToBDTRate = 150.0
	DefaultCountryCode  = domain.DefaultPhoneCountryCode
)

// CheckoutUseCase defines the operations a checkout page performs against its session.
type CheckoutUseCase interface {
	// Start creates a session with blank passengers built from the traveler counts.
	// When a bearer token is supplied the first passenger is filled from the user's profile.
	// A verified caller subject in ctx binds the session to that account.
	Start(ctx context.Context, in StartInput) (domain.CheckoutState, error)

	// Get returns the current session state. Every session operation rejects callers
	// other than the account the session is bound to with domain.ErrSessionForbidden.
	Get(ctx context.Context, id string) (domain.CheckoutState, error)

	// UpdatePassengerField sets a passenger-level field and revalidates it.
	// For phone_number the value is the national number; the stored country code is prepended.
	UpdatePassengerField(ctx context.Context, id string, index int, field domain.Field, value string) (domain.CheckoutState, error)

	// UpdateDocumentField sets a field of the passenger's identity document and revalidates it.
	UpdateDocumentField(ctx context.Context, id string, index int, field domain.Field, value string) (domain.CheckoutState, error)

	// UpdatePhoneCountryCode changes a passenger's phone country code and recomposes the phone number.
	UpdatePhoneCountryCode(ctx context.Context, id string, index int, code string) (domain.CheckoutState, error)

	// TouchField marks a field as interacted with and validates it.
	TouchField(ctx context.Context, id string, index int, field domain.Field, document bool) (domain.CheckoutState, error)

	// Autofill merges the authenticated user's profile into the first passenger.
	// An unbound session becomes bound to the verified caller.
	Autofill(ctx context.Context, id, token string) (domain.CheckoutState, error)

	// Validate runs whole-form validation and marks every field touched.
	Validate(ctx context.Context, id string) (ValidationResult, error)

	// Submit validates, assembles the payload and initiates payment.
	Submit(ctx context.Context, id string) (SubmitResult, error)
}

// StartInput carries what a checkout page receives when it opens.
type StartInput struct {
	Counts       domain.TravelerCounts
	PassengerIDs []string
	Flight       domain.FlightDetails

	// Token is the caller's bearer token, empty for guests
	Token string
}

// ValidationResult is the outcome of a whole-form validation.
type ValidationResult struct {
	Valid bool
	State domain.CheckoutState
}

// SubmitResult is the outcome of a successful payment initiation.
type SubmitResult struct {
	SubmissionID string
	GatewayURL   string
	Payload      domain.BookingPayload
}

// Config contains configuration options for the checkout use case.
type Config struct {
	DefaultCountryCode string
	GBPToBDTRate       float64
	RejectZeroAmount   bool
	Billing            domain.BillingAddress
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		DefaultCountryCode: DefaultCountryCode,
		GBPToBDTRate:       DefaultGBPToBDTRate,
	}
}

// Dependencies are the collaborators of the checkout use case.
// Profiles, Ledger and Publisher are optional.
type Dependencies struct {
	Store     domain.SessionStore
	Gateway   domain.PaymentGateway
	Profiles  domain.ProfileProvider
	Ledger    domain.SubmissionLedger
	Publisher domain.EventPublisher
	Clock     timeutil.Clock
	Logger    *logger.Logger
	Metrics   *metrics.Metrics

	// NewID generates session, passenger and submission identifiers
	NewID func() string
}

type checkoutUseCase struct {
	store     domain.SessionStore
	gateway   domain.PaymentGateway
	profiles  domain.ProfileProvider
	ledger    domain.SubmissionLedger
	publisher domain.EventPublisher
	clock     timeutil.Clock
	log       *logger.Logger
	metrics   *metrics.Metrics
	newID     func() string

	validator *ValidationOrchestrator
	assembler *PayloadAssembler
	locks     sessionLocks
	cfg       Config
}

var _ CheckoutUseCase = (*checkoutUseCase)(nil)

// NewCheckoutUseCase creates a CheckoutUseCase.
// If config is nil, default values are used.
func NewCheckoutUseCase(deps Dependencies, config *Config) CheckoutUseCase {
	cfg := DefaultConfig()
	if config != nil {
		if config.DefaultCountryCode != "" {
			cfg.DefaultCountryCode = config.DefaultCountryCode
		}
		if config.GBPToBDTRate > 0 {
			cfg.GBPToBDTRate = config.GBPToBDTRate
		}
		cfg.RejectZeroAmount = config.RejectZeroAmount
		cfg.Billing = config.Billing
	}

	if deps.Clock == nil {
		deps.Clock = timeutil.NewRealClock()
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}

	validator := NewValidationOrchestrator(deps.Clock)
	assembler := NewPayloadAssembler(validator, deps.Clock, AssemblerConfig{
		GBPToBDTRate:     cfg.GBPToBDTRate,
		RejectZeroAmount: cfg.RejectZeroAmount,
		Billing:          cfg.Billing,
	}, deps.Logger, deps.Metrics)

	return &checkoutUseCase{
		store:     deps.Store,
		gateway:   deps.Gateway,
		profiles:  deps.Profiles,
		ledger:    deps.Ledger,
		publisher: deps.Publisher,
		clock:     deps.Clock,
		log:       deps.Logger.WithComponent("checkout"),
		metrics:   deps.Metrics,
		newID:     deps.NewID,
		validator: validator,
		assembler: assembler,
		cfg:       cfg,
	}
}

// Start implements CheckoutUseCase.Start.
func (uc *checkoutUseCase) Start(ctx context.Context, in StartInput) (domain.CheckoutState, error) {
	if err := in.Counts.Validate(); err != nil {
		return domain.CheckoutState{}, err
	}
	if strings.TrimSpace(in.Flight.OfferID) == "" {
		return domain.CheckoutState{}, domain.WrapInvalidRequest("offer_id is required")
	}

	passengers := domain.NewPassengers(in.Counts, in.PassengerIDs, uc.newID)
	state := domain.NewCheckoutState(uc.newID(), in.Flight, in.Counts, passengers, uc.cfg.DefaultCountryCode, uc.clock.Now()).
		WithOwner(domain.SubjectFromContext(ctx))
	log := uc.logFor(ctx, state.ID)

	if in.Token != "" && uc.profiles != nil {
		filled, err := uc.applyProfile(ctx, state, in.Token)
		if err != nil {
			log.Warn().Err(err).Msg("Autofill skipped at session start")
		} else {
			state = filled
		}
	}

	if err := uc.store.Save(ctx, state); err != nil {
		return domain.CheckoutState{}, fmt.Errorf("save session: %w", err)
	}

	uc.metrics.IncSessionStarted()
	log.Info().
		Int("passengers", len(state.Passengers)).
		Str("offer_id", state.Flight.OfferID).
		Bool("autofill", state.AutofillApplied).
		Msg("Checkout session started")

	return state, nil
}

// Get implements CheckoutUseCase.Get.
func (uc *checkoutUseCase) Get(ctx context.Context, id string) (domain.CheckoutState, error) {
	state, err := uc.store.Get(ctx, id)
	if err != nil {
		return domain.CheckoutState{}, err
	}
	if err := authorize(ctx, state); err != nil {
		return domain.CheckoutState{}, err
	}
	return state, nil
}

// UpdatePassengerField implements CheckoutUseCase.UpdatePassengerField.
func (uc *checkoutUseCase) UpdatePassengerField(ctx context.Context, id string, index int, field domain.Field, value string) (domain.CheckoutState, error) {
	if !field.IsPassengerField() {
		return domain.CheckoutState{}, fmt.Errorf("%w: %q is not a passenger field", domain.ErrUnknownField, field)
	}

	return uc.mutate(ctx, id, func(s domain.CheckoutState) (domain.CheckoutState, error) {
		if !s.HasPassenger(index) {
			return s, fmt.Errorf("%w: %d", domain.ErrPassengerIndexOutOfRange, index)
		}
		if field == domain.FieldPhoneNumber {
			value = domain.ComposePhone(s.CountryCode(index), value)
		}

		p, err := s.Passengers[index].WithField(field, value)
		if err != nil {
			return s, err
		}
		return uc.setAndValidate(s, index, p, field, value)
	})
}

// UpdateDocumentField implements CheckoutUseCase.UpdateDocumentField.
func (uc *checkoutUseCase) UpdateDocumentField(ctx context.Context, id string, index int, field domain.Field, value string) (domain.CheckoutState, error) {
	if !field.IsDocumentField() {
		return domain.CheckoutState{}, fmt.Errorf("%w: %q is not a document field", domain.ErrUnknownField, field)
	}

	return uc.mutate(ctx, id, func(s domain.CheckoutState) (domain.CheckoutState, error) {
		if !s.HasPassenger(index) {
			return s, fmt.Errorf("%w: %d", domain.ErrPassengerIndexOutOfRange, index)
		}

		p, err := s.Passengers[index].WithDocumentField(field, value)
		if err != nil {
			return s, err
		}
		return uc.setAndValidate(s, index, p, field, value)
	})
}

// UpdatePhoneCountryCode implements CheckoutUseCase.UpdatePhoneCountryCode.
func (uc *checkoutUseCase) UpdatePhoneCountryCode(ctx context.Context, id string, index int, code string) (domain.CheckoutState, error) {
	code = strings.TrimSpace(code)
	if cc, national := domain.SplitPhone(code + " "); cc == "" || national != "" {
		return domain.CheckoutState{}, domain.WrapInvalidRequest("country code %q must look like +880", code)
	}

	return uc.mutate(ctx, id, func(s domain.CheckoutState) (domain.CheckoutState, error) {
		if !s.HasPassenger(index) {
			return s, fmt.Errorf("%w: %d", domain.ErrPassengerIndexOutOfRange, index)
		}

		next := s.WithCountryCode(index, code)
		current := s.Passengers[index].PhoneNumber
		if current == "" {
			return next, nil
		}

		phone := domain.ComposePhone(code, domain.StripCountryCode(current))
		p, err := s.Passengers[index].WithField(domain.FieldPhoneNumber, phone)
		if err != nil {
			return s, err
		}
		return uc.setAndValidate(next, index, p, domain.FieldPhoneNumber, phone)
	})
}

// TouchField implements CheckoutUseCase.TouchField.
func (uc *checkoutUseCase) TouchField(ctx context.Context, id string, index int, field domain.Field, document bool) (domain.CheckoutState, error) {
	if _, ok := field.ErrorKey(); !ok {
		return domain.CheckoutState{}, fmt.Errorf("%w: %q", domain.ErrUnknownField, field)
	}
	if document != field.IsDocumentField() {
		return domain.CheckoutState{}, domain.WrapInvalidRequest("field %q has document=%t", field, field.IsDocumentField())
	}

	return uc.mutate(ctx, id, func(s domain.CheckoutState) (domain.CheckoutState, error) {
		if !s.HasPassenger(index) {
			return s, fmt.Errorf("%w: %d", domain.ErrPassengerIndexOutOfRange, index)
		}

		errs, err := uc.validator.RevalidateFields(s.Errors, s.Passengers, index, []domain.Field{field})
		if err != nil {
			return s, err
		}
		touched := s.Touched.Touch(domain.TouchedKey{Passenger: index, Field: field, Document: document})
		return s.WithErrors(errs).WithTouched(touched), nil
	})
}

// Autofill implements CheckoutUseCase.Autofill.
func (uc *checkoutUseCase) Autofill(ctx context.Context, id, token string) (domain.CheckoutState, error) {
	if uc.profiles == nil || token == "" {
		return domain.CheckoutState{}, domain.ErrProfileUnavailable
	}

	if _, err := uc.Get(ctx, id); err != nil {
		return domain.CheckoutState{}, err
	}

	// The profile is fetched outside the session lock so a slow profile service
	// does not block edits.
	profile, err := uc.fetchProfile(ctx, token)
	if err != nil {
		return domain.CheckoutState{}, err
	}

	subject := domain.SubjectFromContext(ctx)
	return uc.mutate(ctx, id, func(s domain.CheckoutState) (domain.CheckoutState, error) {
		if s.Owner == "" && subject != "" {
			s = s.WithOwner(subject)
		}
		return uc.mergeProfile(s, profile)
	})
}

// Validate implements CheckoutUseCase.Validate.
func (uc *checkoutUseCase) Validate(ctx context.Context, id string) (ValidationResult, error) {
	var valid bool
	state, err := uc.mutate(ctx, id, func(s domain.CheckoutState) (domain.CheckoutState, error) {
		ok, errs := uc.validator.ValidateAll(s.Passengers)
		valid = ok
		return s.WithErrors(errs).WithTouched(s.Touched.TouchAll(len(s.Passengers))), nil
	})
	if err != nil {
		return ValidationResult{}, err
	}

	if !valid {
		uc.metrics.IncValidationFailure()
	}
	return ValidationResult{Valid: valid, State: state}, nil
}

// Submit implements CheckoutUseCase.Submit.
func (uc *checkoutUseCase) Submit(ctx context.Context, id string) (result SubmitResult, err error) {
	log := uc.logFor(ctx, id)

	state, err := uc.beginSubmission(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSubmissionInProgress), errors.Is(err, domain.ErrAlreadySubmitted):
			uc.metrics.IncSubmission(metrics.OutcomeDuplicate)
		case errors.Is(err, domain.ErrValidationFailed):
			uc.metrics.IncValidationFailure()
			uc.metrics.IncSubmission(metrics.OutcomeValidationFailed)
		}
		return SubmitResult{}, err
	}

	completed := false
	defer func() {
		if completed {
			return
		}
		if cerr := uc.endSubmission(context.WithoutCancel(ctx), id); cerr != nil {
			log.Error().Err(cerr).Msg("Failed to clear submission flag")
		}
	}()

	payload, err := uc.assembler.Assemble(state)
	if err != nil {
		if errors.Is(err, domain.ErrValidationFailed) {
			uc.metrics.IncSubmission(metrics.OutcomeValidationFailed)
		} else {
			uc.metrics.IncSubmission(metrics.OutcomeRejected)
		}
		log.Warn().Err(err).Msg("Payload assembly rejected")
		return SubmitResult{}, err
	}

	sub := domain.Submission{
		ID:             uc.newID(),
		SessionID:      id,
		OfferID:        payload.OfferID,
		Amount:         payload.TotalAmount,
		Currency:       payload.Currency,
		PassengerIDs:   payload.PassengerIDs,
		PassengerCount: len(payload.Passengers),
		Status:         domain.SubmissionPending,
		CreatedAt:      uc.clock.Now(),
	}
	if uc.ledger != nil {
		if lerr := uc.ledger.Begin(ctx, sub); lerr != nil {
			log.Error().Err(lerr).Str("submission_id", sub.ID).Msg("Failed to record submission")
		}
	}

	initiation, err := uc.initiate(ctx, payload)
	if err != nil {
		uc.completeLedger(ctx, sub.ID, domain.SubmissionFailed, err.Error())
		uc.metrics.IncSubmission(metrics.OutcomeGatewayFailed)
		log.Error().Err(err).Str("submission_id", sub.ID).Msg("Payment initiation failed")
		return SubmitResult{}, err
	}

	uc.completeLedger(ctx, sub.ID, domain.SubmissionInitiated, initiation.GatewayURL)
	uc.publish(ctx, sub, payload, initiation)

	// The guard stays set from here on: clearing it would allow a second payment.
	completed = true
	uc.finishSubmission(context.WithoutCancel(ctx), id, log)

	uc.metrics.IncSubmission(metrics.OutcomeInitiated)
	log.Info().
		Str("submission_id", sub.ID).
		Str("amount", payload.TotalAmount).
		Str("currency", payload.Currency).
		Msg("Payment initiated")

	return SubmitResult{
		SubmissionID: sub.ID,
		GatewayURL:   initiation.GatewayURL,
		Payload:      payload,
	}, nil
}

// beginSubmission sets the submission guard after a passing whole-form validation.
// Check and set happen in one store update, so only one of several concurrent submits,
// from any process sharing the store, gets past it.
// A failed validation is stored on the session and returned as *domain.ValidationFailure.
func (uc *checkoutUseCase) beginSubmission(ctx context.Context, id string) (domain.CheckoutState, error) {
	var failure error
	state, err := uc.mutate(ctx, id, func(s domain.CheckoutState) (domain.CheckoutState, error) {
		failure = nil
		if s.IsSubmitting {
			return s, domain.ErrSubmissionInProgress
		}

		ok, errs := uc.validator.ValidateAll(s.Passengers)
		next := s.WithErrors(errs).WithTouched(s.Touched.TouchAll(len(s.Passengers)))
		if !ok {
			failure = domain.NewValidationFailure(errs)
			return next, nil
		}
		return next.WithSubmitting(true), nil
	})
	if err != nil {
		return domain.CheckoutState{}, err
	}
	if failure != nil {
		return domain.CheckoutState{}, failure
	}
	return state, nil
}

// endSubmission clears the submission guard, keeping every other part of the form.
func (uc *checkoutUseCase) endSubmission(ctx context.Context, id string) error {
	_, err := uc.mutate(ctx, id, func(s domain.CheckoutState) (domain.CheckoutState, error) {
		return s.WithSubmitting(false), nil
	})
	return err
}

// finishSubmission discards a session whose payment was initiated. When the delete fails
// the session is marked submitted instead, so later calls get domain.ErrAlreadySubmitted.
func (uc *checkoutUseCase) finishSubmission(ctx context.Context, id string, log *logger.Logger) {
	derr := uc.store.Delete(ctx, id)
	if derr == nil {
		return
	}

	_, merr := uc.mutate(ctx, id, func(s domain.CheckoutState) (domain.CheckoutState, error) {
		return s.WithSubmitted(), nil
	})
	if merr != nil {
		log.Error().Err(derr).AnErr("mark_error", merr).Msg("Completed session could not be discarded; it stays locked until it expires")
		return
	}
	log.Warn().Err(derr).Msg("Completed session could not be discarded; marked as submitted")
}

func (uc *checkoutUseCase) initiate(ctx context.Context, payload domain.BookingPayload) (domain.PaymentInitiation, error) {
	if uc.gateway == nil {
		return domain.PaymentInitiation{}, domain.NewGatewayError("none", errors.New("no payment gateway configured"))
	}

	start := time.Now()
	initiation, err := uc.gateway.Initiate(ctx, payload)
	if err == nil && !initiation.Succeeded() {
		msg := initiation.Message
		if msg == "" {
			msg = fmt.Sprintf("status %q", initiation.Status)
		}
		err = domain.NewGatewayError(uc.gateway.Name(), errors.New(msg))
	}
	uc.metrics.ObserveGateway(uc.gateway.Name(), start, err)

	if err != nil {
		var gwErr *domain.GatewayError
		if !errors.As(err, &gwErr) {
			err = domain.NewGatewayError(uc.gateway.Name(), err)
		}
		return domain.PaymentInitiation{}, err
	}
	return initiation, nil
}

func (uc *checkoutUseCase) completeLedger(ctx context.Context, submissionID string, status domain.SubmissionStatus, detail string) {
	if uc.ledger == nil {
		return
	}
	if err := uc.ledger.Complete(context.WithoutCancel(ctx), submissionID, status, detail); err != nil {
		uc.log.Error().Err(err).Str("submission_id", submissionID).Msg("Failed to update submission")
	}
}

func (uc *checkoutUseCase) publish(ctx context.Context, sub domain.Submission, payload domain.BookingPayload, initiation domain.PaymentInitiation) {
	if uc.publisher == nil {
		return
	}
	event := domain.PaymentInitiatedEvent{
		SubmissionID: sub.ID,
		SessionID:    sub.SessionID,
		OfferID:      payload.OfferID,
		PassengerIDs: payload.PassengerIDs,
		TotalAmount:  payload.TotalAmount,
		Currency:     payload.Currency,
		GatewayURL:   initiation.GatewayURL,
		OccurredAt:   uc.clock.Now(),
	}
	if err := uc.publisher.PublishPaymentInitiated(context.WithoutCancel(ctx), event); err != nil {
		uc.log.Warn().Err(err).Str("submission_id", sub.ID).Msg("Failed to publish payment event")
	}
}

// applyProfile fetches the profile and merges it into a session that is not yet stored.
func (uc *checkoutUseCase) applyProfile(ctx context.Context, s domain.CheckoutState, token string) (domain.CheckoutState, error) {
	profile, err := uc.fetchProfile(ctx, token)
	if err != nil {
		return s, err
	}
	return uc.mergeProfile(s, profile)
}

func (uc *checkoutUseCase) fetchProfile(ctx context.Context, token string) (domain.Profile, error) {
	profile, err := uc.profiles.FetchProfile(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrProfileUnavailable) {
			uc.metrics.IncAutofill("unavailable")
		} else {
			uc.metrics.IncAutofill("error")
		}
		return domain.Profile{}, err
	}
	return profile, nil
}

// mergeProfile applies the profile to passenger 0 and revalidates the fields it filled.
func (uc *checkoutUseCase) mergeProfile(s domain.CheckoutState, profile domain.Profile) (domain.CheckoutState, error) {
	if len(s.Passengers) == 0 {
		return s, nil
	}

	res := domain.ApplyProfile(s.Passengers, s.CountryCode(0), profile)
	next := s.WithPassengers(res.Passengers).WithCountryCode(0, res.CountryCode).WithAutofillApplied()

	errs, err := uc.validator.RevalidateFields(next.Errors, next.Passengers, 0, res.Changed)
	if err != nil {
		return s, err
	}

	uc.metrics.IncAutofill("applied")
	return next.WithErrors(errs), nil
}

// setAndValidate stores the updated passenger and recomputes the error for field.
func (uc *checkoutUseCase) setAndValidate(s domain.CheckoutState, index int, p domain.Passenger, field domain.Field, value string) (domain.CheckoutState, error) {
	next := s.WithPassenger(index, p)
	errs, err := uc.validator.ValidateField(next.Errors, next.Passengers, index, field, value)
	if err != nil {
		return s, err
	}
	return next.WithErrors(errs), nil
}

// mutate applies fn to a session as one atomic store update.
// The local lock only keeps writers in this process from retrying against each other;
// the store update is what makes the change atomic across processes.
func (uc *checkoutUseCase) mutate(ctx context.Context, id string, fn domain.UpdateFunc) (domain.CheckoutState, error) {
	unlock := uc.locks.lock(id)
	defer unlock()

	return uc.store.Update(ctx, id, func(s domain.CheckoutState) (domain.CheckoutState, error) {
		if err := authorize(ctx, s); err != nil {
			return s, err
		}
		if s.Submitted {
			return s, domain.ErrAlreadySubmitted
		}

		next, err := fn(s)
		if err != nil {
			return s, err
		}
		return next.WithUpdatedAt(uc.clock.Now()), nil
	})
}

// authorize rejects callers other than the account a session is bound to.
func authorize(ctx context.Context, s domain.CheckoutState) error {
	if !s.OwnedBy(domain.SubjectFromContext(ctx)) {
		return domain.ErrSessionForbidden
	}
	return nil
}

func (uc *checkoutUseCase) logFor(ctx context.Context, sessionID string) *logger.Logger {
	return logger.FromContext(ctx, uc.log).WithSession(sessionID)
}
