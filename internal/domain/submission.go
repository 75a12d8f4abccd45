package domain

import "time"

// SubmissionStatus is the lifecycle state of a payment-initiation attempt.
type SubmissionStatus string

// Submission states.
const (
	SubmissionPending   SubmissionStatus = "pending"
	SubmissionInitiated SubmissionStatus = "initiated"
	SubmissionFailed    SubmissionStatus = "failed"
)

// Submission is one attempt to initiate payment for a checkout session.
type Submission struct {
	ID             string
	SessionID      string
	OfferID        string
	Amount         string
	Currency       string
	PassengerIDs   []string
	PassengerCount int
	Status         SubmissionStatus
	CreatedAt      time.Time
}

// PaymentInitiatedEvent is published once the payment backend accepted a booking.
type PaymentInitiatedEvent struct {
	SubmissionID string    `json:"submission_id"`
	SessionID    string    `json:"session_id"`
	OfferID      string    `json:"offer_id"`
	PassengerIDs []string  `json:"passenger_ids"`
	TotalAmount  string    `json:"total_amount"`
	Currency     string    `json:"currency"`
	GatewayURL   string    `json:"gateway_url"`
	OccurredAt   time.Time `json:"occurred_at"`
}
