package domain

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=domain

import "context"

// PaymentGateway initiates payment for an assembled booking payload.
type PaymentGateway interface {
	// Name returns the gateway identifier used in logs and errors
	Name() string

	// Initiate submits the payload and returns where the customer should be sent to pay.
	// Failures are returned as *GatewayError.
	Initiate(ctx context.Context, payload BookingPayload) (PaymentInitiation, error)
}

// ProfileProvider fetches the stored profile of an authenticated user.
type ProfileProvider interface {
	// FetchProfile returns ErrProfileUnavailable when the token has no profile behind it.
	FetchProfile(ctx context.Context, token string) (Profile, error)
}

// UpdateFunc derives the next state of a session. An error aborts the update without writing.
// It may run more than once when another writer changes the session first.
type UpdateFunc func(CheckoutState) (CheckoutState, error)

// SessionStore persists checkout sessions.
type SessionStore interface {
	// Get returns ErrSessionNotFound for unknown or expired sessions.
	Get(ctx context.Context, id string) (CheckoutState, error)
	Save(ctx context.Context, state CheckoutState) error
	Delete(ctx context.Context, id string) error

	// Update reads the session, applies fn and writes the result as one atomic step,
	// also against other processes sharing the store. It resets the TTL like Save.
	Update(ctx context.Context, id string, fn UpdateFunc) (CheckoutState, error)
}

// SubmissionLedger records every payment-initiation attempt.
type SubmissionLedger interface {
	Begin(ctx context.Context, sub Submission) error
	Complete(ctx context.Context, id string, status SubmissionStatus, detail string) error
}

// EventPublisher announces checkout outcomes to other services.
type EventPublisher interface {
	PublishPaymentInitiated(ctx context.Context, event PaymentInitiatedEvent) error
}
