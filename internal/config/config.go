// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/flight-booking/passenger-checkout/internal/domain"
	"github.com/flight-booking/passenger-checkout/internal/infrastructure/logger"
	"github.com/flight-booking/passenger-checkout/internal/infrastructure/timeutil"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Logging  LoggingConfig
	App      AppConfig
	Checkout CheckoutConfig
	Payment  PaymentConfig
	Profile  ProfileConfig
	Auth     AuthConfig
	Redis    RedisConfig
	Postgres PostgresConfig
	AMQP     AMQPConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
	Caller bool   `env:"LOG_CALLER" envDefault:"false"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`

	// Timezone decides which calendar day "today" is for age and expiry rules
	Timezone string `env:"APP_TIMEZONE" envDefault:"Asia/Dhaka"`
}

// CheckoutConfig holds checkout business settings.
type CheckoutConfig struct {
	// GBPToBDTRate converts GBP fares into the BDT settlement currency
	GBPToBDTRate float64 `env:"CHECKOUT_GBP_TO_BDT_RATE" envDefault:"150"`

	DefaultCountryCode string `env:"CHECKOUT_DEFAULT_COUNTRY_CODE" envDefault:"+880"`

	// RejectZeroAmount turns an unparseable price into a hard submission failure
	RejectZeroAmount bool `env:"CHECKOUT_REJECT_ZERO_AMOUNT" envDefault:"false"`

	SessionTTL time.Duration `env:"CHECKOUT_SESSION_TTL" envDefault:"30m"`

	BillingAddress  string `env:"CHECKOUT_BILLING_ADDRESS" envDefault:"Dhaka"`
	BillingCity     string `env:"CHECKOUT_BILLING_CITY" envDefault:"Dhaka"`
	BillingPostcode string `env:"CHECKOUT_BILLING_POSTCODE" envDefault:"1000"`
	BillingCountry  string `env:"CHECKOUT_BILLING_COUNTRY" envDefault:"Bangladesh"`
}

// PaymentConfig holds payment-initiation client settings.
// A zero Timeout leaves an initiation bounded only by the request context.
type PaymentConfig struct {
	InitiateURL   string        `env:"PAYMENT_INITIATE_URL" envDefault:"http://localhost:9000/api/payment/initiate"`
	DialTimeout   time.Duration `env:"PAYMENT_DIAL_TIMEOUT" envDefault:"5s"`
	Timeout       time.Duration `env:"PAYMENT_TIMEOUT" envDefault:"0s"`
	RatePerSecond float64       `env:"PAYMENT_RATE_PER_SECOND" envDefault:"10"`
	Burst         int           `env:"PAYMENT_RATE_BURST" envDefault:"5"`
	MaxAttempts   int           `env:"PAYMENT_MAX_ATTEMPTS" envDefault:"3"`
}

// ProfileConfig holds profile service client settings. An empty URL disables autofill.
type ProfileConfig struct {
	URL     string        `env:"PROFILE_URL"`
	Timeout time.Duration `env:"PROFILE_TIMEOUT" envDefault:"3s"`
}

// AuthConfig holds bearer token settings. An empty secret forwards tokens unverified.
type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET"`
}

// RedisConfig selects the session store. An empty URL keeps sessions in memory.
type RedisConfig struct {
	URL string `env:"REDIS_URL"`
}

// PostgresConfig selects the submission ledger. An empty URL disables it.
type PostgresConfig struct {
	URL string `env:"DATABASE_URL"`
}

// AMQPConfig selects the event publisher. An empty URL disables events.
type AMQPConfig struct {
	URL   string `env:"AMQP_URL"`
	Queue string `env:"AMQP_QUEUE" envDefault:"checkout.payment_initiated"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}
	if _, err := timeutil.GetLocation(cfg.App.Timezone); err != nil {
		return fmt.Errorf("APP_TIMEZONE: %w", err)
	}

	if cfg.Checkout.GBPToBDTRate <= 0 {
		return fmt.Errorf("CHECKOUT_GBP_TO_BDT_RATE must be positive, got %v", cfg.Checkout.GBPToBDTRate)
	}
	if cfg.Checkout.SessionTTL <= 0 {
		return fmt.Errorf("CHECKOUT_SESSION_TTL must be positive")
	}
	if code, national := domain.SplitPhone(cfg.Checkout.DefaultCountryCode + " "); code == "" || national != "" {
		return fmt.Errorf("CHECKOUT_DEFAULT_COUNTRY_CODE must look like +880, got %q", cfg.Checkout.DefaultCountryCode)
	}

	if cfg.Payment.InitiateURL == "" {
		return fmt.Errorf("PAYMENT_INITIATE_URL is required")
	}
	if cfg.Payment.DialTimeout <= 0 {
		return fmt.Errorf("PAYMENT_DIAL_TIMEOUT must be positive")
	}
	if cfg.Payment.Timeout < 0 {
		return fmt.Errorf("PAYMENT_TIMEOUT must not be negative")
	}
	if cfg.Payment.RatePerSecond <= 0 || cfg.Payment.Burst < 1 {
		return fmt.Errorf("PAYMENT_RATE_PER_SECOND must be positive and PAYMENT_RATE_BURST at least 1")
	}
	if cfg.Payment.MaxAttempts < 1 {
		return fmt.Errorf("PAYMENT_MAX_ATTEMPTS must be at least 1, got %d", cfg.Payment.MaxAttempts)
	}

	if cfg.IsProduction() && cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// LoggerConfig converts the logging settings into a logger.Config.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:        c.Logging.Level,
		Format:       c.Logging.Format,
		EnableCaller: c.Logging.Caller,
		ServiceName:  "passenger-checkout",
	}
}

// Billing returns the placeholder billing address sent with every payment.
func (c CheckoutConfig) Billing() domain.BillingAddress {
	return domain.BillingAddress{
		Address:  c.BillingAddress,
		City:     c.BillingCity,
		Postcode: c.BillingPostcode,
		Country:  c.BillingCountry,
	}
}
