package ledger

import (
	"context"

	"github.com/flight-booking/passenger-checkout/internal/domain"
)

// NopLedger discards every record. It is used when no database is configured.
type NopLedger struct{}

var _ domain.SubmissionLedger = NopLedger{}

// Begin does nothing.
func (NopLedger) Begin(context.Context, domain.Submission) error { return nil }

// Complete does nothing.
func (NopLedger) Complete(context.Context, string, domain.SubmissionStatus, string) error {
	return nil
}
