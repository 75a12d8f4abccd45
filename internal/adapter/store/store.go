// Package store provides SessionStore implementations for checkout sessions.
package store

import (
	"time"

	"github.com/flight-booking/passenger-checkout/internal/infrastructure/timeutil"
)

// DefaultTTL is how long an untouched session survives.
const DefaultTTL = 30 * time.Minute

// Config holds the settings shared by every store.
type Config struct {
	// TTL is the idle lifetime of a session; every Save extends it
	TTL time.Duration

	// Clock drives expiry in MemoryStore. Defaults to the real clock.
	Clock timeutil.Clock
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() Config {
	return Config{
		TTL:   DefaultTTL,
		Clock: timeutil.NewRealClock(),
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.TTL <= 0 {
		c.TTL = def.TTL
	}
	if c.Clock == nil {
		c.Clock = def.Clock
	}
	return c
}
