// Package mock provides test doubles for the checkout service.
// These mocks are designed for integration testing where we need
// configurable behavior (delays, errors, specific responses).
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/flight-booking/passenger-checkout/internal/domain"
)

// Gateway is a configurable mock implementation of domain.PaymentGateway.
// It records every payload it receives.
type Gateway struct {
	name     string
	url      string
	status   string
	err      error
	delay    time.Duration
	payloads []domain.BookingPayload
	mu       sync.Mutex
}

// NewGateway creates a gateway that accepts every payment and redirects to url.
func NewGateway(name, url string) *Gateway {
	return &Gateway{
		name:   name,
		url:    url,
		status: domain.PaymentStatusSuccess,
	}
}

// WithError configures the gateway to fail every call with err.
func (g *Gateway) WithError(err error) *Gateway {
	g.err = err
	return g
}

// WithStatus configures the status the gateway reports, e.g. "failed" for declines.
func (g *Gateway) WithStatus(status string) *Gateway {
	g.status = status
	return g
}

// WithDelay configures the gateway to wait the given duration before responding.
func (g *Gateway) WithDelay(d time.Duration) *Gateway {
	g.delay = d
	return g
}

// Name returns the gateway identifier.
func (g *Gateway) Name() string {
	return g.name
}

// Initiate implements domain.PaymentGateway.Initiate.
// It respects context cancellation and applies the configured delay.
func (g *Gateway) Initiate(ctx context.Context, payload domain.BookingPayload) (domain.PaymentInitiation, error) {
	g.mu.Lock()
	g.payloads = append(g.payloads, payload)
	g.mu.Unlock()

	if g.delay > 0 {
		select {
		case <-ctx.Done():
			return domain.PaymentInitiation{}, domain.NewGatewayError(g.name, ctx.Err())
		case <-time.After(g.delay):
		}
	}

	if g.err != nil {
		return domain.PaymentInitiation{}, g.err
	}

	res := domain.PaymentInitiation{Status: g.status}
	if res.Succeeded() {
		res.GatewayURL = g.url
	}
	return res, nil
}

// CallCount returns the number of times Initiate was called.
func (g *Gateway) CallCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.payloads)
}

// LastPayload returns the most recent payload, or false when none was sent.
func (g *Gateway) LastPayload() (domain.BookingPayload, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.payloads) == 0 {
		return domain.BookingPayload{}, false
	}
	return g.payloads[len(g.payloads)-1], true
}

// Reset clears the recorded payloads.
func (g *Gateway) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.payloads = nil
}

// Ensure Gateway implements domain.PaymentGateway at compile time.
var _ domain.PaymentGateway = (*Gateway)(nil)
