// Package payment implements the payment-initiation gateway over HTTP.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/flight-booking/passenger-checkout/internal/domain"
	"github.com/flight-booking/passenger-checkout/internal/infrastructure/logger"
	"github.com/flight-booking/passenger-checkout/internal/infrastructure/retry"
)

// GatewayName is the identifier of the payment backend in logs, metrics and errors.
const GatewayName = "sslcommerz"

// maxErrorBody caps how much of an error response is kept for diagnostics.
const maxErrorBody = 512

// Config holds the payment client settings.
type Config struct {
	// InitiateURL receives the booking payload as a JSON POST
	InitiateURL string

	// DialTimeout bounds establishing a connection to the backend
	DialTimeout time.Duration

	// Timeout bounds a single HTTP attempt. Zero means no limit beyond the caller's context.
	Timeout time.Duration

	// RatePerSecond and Burst throttle outgoing initiations
	RatePerSecond float64
	Burst         int

	// Retry controls how failed attempts are repeated
	Retry retry.Config
}

// DefaultConfig returns the default payment client configuration.
func DefaultConfig() Config {
	return Config{
		DialTimeout:   5 * time.Second,
		RatePerSecond: 10,
		Burst:         5,
		Retry:         retry.GatewayConfig,
	}
}

// Client initiates payments against the payment backend.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	log     *logger.Logger
}

var _ domain.PaymentGateway = (*Client)(nil)

// NewClient creates a payment client. Zero config values fall back to DefaultConfig.
func NewClient(cfg Config, log *logger.Logger) *Client {
	def := DefaultConfig()
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = def.DialTimeout
	}
	if cfg.Timeout < 0 {
		cfg.Timeout = 0
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = def.RatePerSecond
	}
	if cfg.Burst < 1 {
		cfg.Burst = def.Burst
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = def.Retry
	}
	if cfg.Retry.RetryIf == nil {
		cfg.Retry.RetryIf = retry.SkipPermanent
	}
	if log == nil {
		log = logger.Nop()
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: cfg.DialTimeout, KeepAlive: 30 * time.Second}).DialContext

	c := &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout, Transport: transport},
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		log:     log.WithGateway(GatewayName),
	}
	if c.cfg.Retry.OnRetry == nil {
		c.cfg.Retry.OnRetry = c.logRetry
	}
	return c
}

// Name returns the gateway identifier.
func (c *Client) Name() string {
	return GatewayName
}

// Initiate posts the payload and returns the redirect URL on success.
// Every failure is a *domain.GatewayError. Only connection failures are retried:
// once the request may have reached the backend, a repeat could open a second payment.
func (c *Client) Initiate(ctx context.Context, payload domain.BookingPayload) (domain.PaymentInitiation, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return domain.PaymentInitiation{}, domain.NewGatewayError(GatewayName, fmt.Errorf("encode payload: %w", err))
	}

	res, err := retry.DoWithResult(ctx, func() (domain.PaymentInitiation, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return domain.PaymentInitiation{}, retry.NewPermanent(err)
		}
		return c.post(ctx, body)
	}, c.cfg.Retry)
	if err != nil {
		return res, asGatewayError(err)
	}
	return res, nil
}

// post performs a single attempt. Non-retryable failures come back wrapped in retry.Permanent.
func (c *Client) post(ctx context.Context, body []byte) (domain.PaymentInitiation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.InitiateURL, bytes.NewReader(body))
	if err != nil {
		return domain.PaymentInitiation{}, retry.NewPermanent(domain.NewGatewayError(GatewayName, err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() == nil && isDialError(err) {
			return domain.PaymentInitiation{}, domain.NewRetryableGatewayError(GatewayName, err)
		}
		return domain.PaymentInitiation{}, retry.NewPermanent(domain.NewGatewayError(GatewayName, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		statusErr := fmt.Errorf("unexpected status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
		return domain.PaymentInitiation{}, retry.NewPermanent(domain.NewGatewayError(GatewayName, statusErr))
	}

	var out domain.PaymentInitiation
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.PaymentInitiation{}, retry.NewPermanent(domain.NewGatewayError(GatewayName, fmt.Errorf("decode response: %w", err)))
	}
	if !out.Succeeded() {
		msg := out.Message
		if msg == "" {
			msg = "status " + out.Status
		}
		return out, retry.NewPermanent(domain.NewGatewayError(GatewayName, fmt.Errorf("payment declined: %s", msg)))
	}
	if out.GatewayURL == "" {
		return out, retry.NewPermanent(domain.NewGatewayError(GatewayName, errors.New("success without gateway_url")))
	}
	return out, nil
}

// isDialError reports whether err happened before a connection existed, so nothing was sent.
func isDialError(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}

func (c *Client) logRetry(attempt int, err error, wait time.Duration) {
	c.log.Warn().
		Err(err).
		Int("attempt", attempt).
		Dur("wait", wait).
		Msg("payment initiation failed, retrying")
}

// asGatewayError strips retry wrappers so callers always see a *domain.GatewayError.
func asGatewayError(err error) error {
	var gwErr *domain.GatewayError
	if errors.As(err, &gwErr) {
		return gwErr
	}
	return domain.NewGatewayError(GatewayName, err)
}
