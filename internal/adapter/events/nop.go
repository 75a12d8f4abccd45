package events

import (
	"context"

	"github.com/flight-booking/passenger-checkout/internal/domain"
)

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

var _ domain.EventPublisher = NopPublisher{}

// PublishPaymentInitiated does nothing.
func (NopPublisher) PublishPaymentInitiated(context.Context, domain.PaymentInitiatedEvent) error {
	return nil
}
