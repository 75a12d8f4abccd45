// Package main is the entry point for the passenger checkout service.
//
//	@title						Passenger Checkout API
//	@version					1.0.0
//	@description				Collects, validates and submits traveler details for a selected flight, then initiates payment.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/flight-booking/passenger-checkout/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"

	// Import generated docs for swagger
	_ "github.com/flight-booking/passenger-checkout/docs"

	// Application layers
	"github.com/flight-booking/passenger-checkout/internal/adapter/events"
	checkouthttp "github.com/flight-booking/passenger-checkout/internal/adapter/http"
	"github.com/flight-booking/passenger-checkout/internal/adapter/http/middleware"
	"github.com/flight-booking/passenger-checkout/internal/adapter/ledger"
	"github.com/flight-booking/passenger-checkout/internal/adapter/payment"
	"github.com/flight-booking/passenger-checkout/internal/adapter/profile"
	"github.com/flight-booking/passenger-checkout/internal/adapter/store"
	"github.com/flight-booking/passenger-checkout/internal/config"
	"github.com/flight-booking/passenger-checkout/internal/infrastructure/logger"
	"github.com/flight-booking/passenger-checkout/internal/infrastructure/metrics"
	"github.com/flight-booking/passenger-checkout/internal/infrastructure/retry"
	"github.com/flight-booking/passenger-checkout/internal/infrastructure/timeutil"
	"github.com/flight-booking/passenger-checkout/internal/usecase"
)

const (
	shutdownTimeout = 10 * time.Second
	connectTimeout  = 5 * time.Second
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	appLog := logger.New(cfg.LoggerConfig())
	logger.SetGlobal(appLog)

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Str("timezone", cfg.App.Timezone).
		Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app, err := buildDependencies(ctx, cfg, appLog, reg)
	if err != nil {
		closeAll(app.closers)
		log.Fatal().Err(err).Msg("Failed to initialize dependencies")
	}
	defer closeAll(app.closers)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Configure server timeouts from config
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, appLog.Logger)

	setupRoutes(e, cfg, app, reg)

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	gracefulShutdown(e)
}

// application holds the wired collaborators and what must be released on shutdown.
type application struct {
	deps    usecase.Dependencies
	closers []io.Closer
	checks  map[string]checkouthttp.HealthCheck
}

// buildDependencies wires the use case collaborators. Optional backends fall back to
// in-process or no-op implementations when their URL is not configured.
// On error the returned application still lists what was opened so far.
func buildDependencies(ctx context.Context, cfg *config.Config, appLog *logger.Logger, reg prometheus.Registerer) (*application, error) {
	app := &application{checks: make(map[string]checkouthttp.HealthCheck)}

	clock, err := timeutil.NewZonedClockByName(cfg.App.Timezone)
	if err != nil {
		return app, fmt.Errorf("timezone: %w", err)
	}

	deps := usecase.Dependencies{
		Clock:     clock,
		Logger:    appLog,
		Metrics:   metrics.New(reg),
		Ledger:    ledger.NopLedger{},
		Publisher: events.NopPublisher{},
	}

	storeCfg := store.Config{TTL: cfg.Checkout.SessionTTL, Clock: clock}
	if cfg.Redis.URL != "" {
		connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		client, err := store.NewRedisClient(connectCtx, cfg.Redis.URL)
		cancel()
		if err != nil {
			return app, err
		}
		redisStore := store.NewRedisStore(client, storeCfg)
		app.closers = append(app.closers, redisStore)
		app.checks["redis"] = redisStore.Ping
		deps.Store = redisStore
		log.Info().Msg("Session store: redis")
	} else {
		memStore := store.NewMemoryStore(storeCfg)
		go memStore.RunJanitor(ctx, time.Minute)
		deps.Store = memStore
		log.Info().Msg("Session store: memory")
	}

	if cfg.Postgres.URL != "" {
		connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		db, err := ledger.Open(connectCtx, cfg.Postgres.URL)
		if err != nil {
			return app, err
		}
		app.closers = append(app.closers, db)
		app.checks["postgres"] = db.PingContext
		pgLedger := ledger.NewPostgresLedger(db, ledger.WithClock(clock.Now))
		if err := pgLedger.Migrate(connectCtx); err != nil {
			return app, err
		}
		deps.Ledger = pgLedger
		log.Info().Msg("Submission ledger: postgres")
	}

	if cfg.AMQP.URL != "" {
		publisher, err := events.Dial(cfg.AMQP.URL, cfg.AMQP.Queue)
		if err != nil {
			return app, err
		}
		app.closers = append(app.closers, publisher)
		deps.Publisher = publisher
		log.Info().Str("queue", cfg.AMQP.Queue).Msg("Event publisher: amqp")
	}

	if cfg.Profile.URL != "" {
		deps.Profiles = profile.NewClient(cfg.Profile.URL, cfg.Profile.Timeout)
	}

	deps.Gateway = payment.NewClient(payment.Config{
		InitiateURL:   cfg.Payment.InitiateURL,
		DialTimeout:   cfg.Payment.DialTimeout,
		Timeout:       cfg.Payment.Timeout,
		RatePerSecond: cfg.Payment.RatePerSecond,
		Burst:         cfg.Payment.Burst,
		Retry:         retry.GatewayConfig.WithMaxAttempts(cfg.Payment.MaxAttempts),
	}, appLog)

	app.deps = deps
	return app, nil
}

// setupRoutes configures the HTTP routes.
func setupRoutes(e *echo.Echo, cfg *config.Config, app *application, gatherer prometheus.Gatherer) {
	deps := app.deps

	ucConfig := &usecase.Config{
		DefaultCountryCode: cfg.Checkout.DefaultCountryCode,
		GBPToBDTRate:       cfg.Checkout.GBPToBDTRate,
		RejectZeroAmount:   cfg.Checkout.RejectZeroAmount,
		Billing:            cfg.Checkout.Billing(),
	}
	checkoutUseCase := usecase.NewCheckoutUseCase(deps, ucConfig)

	handler := checkouthttp.NewCheckoutHandler(checkoutUseCase, cfg.Checkout.GBPToBDTRate)
	for name, check := range app.checks {
		handler.WithHealthCheck(name, check)
	}
	checkouthttp.RegisterRoutes(e, handler, middleware.OptionalBearer(middleware.AuthConfig{
		Secret: cfg.Auth.JWTSecret,
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// Swagger documentation endpoint
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if cfg.Auth.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET not set; bearer tokens are forwarded unverified")
	}
	if deps.Profiles == nil {
		log.Info().Msg("PROFILE_URL not set; autofill disabled")
	}
}

// gracefulShutdown stops the server, letting in-flight requests finish.
func gracefulShutdown(e *echo.Echo) {
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}

func closeAll(closers []io.Closer) {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			log.Error().Err(err).Msg("Error closing resource")
		}
	}
}
