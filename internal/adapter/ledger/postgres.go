// Package ledger records payment-initiation attempts.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/flight-booking/passenger-checkout/internal/domain"
)

// ErrSubmissionNotFound is returned when completing a submission that was never begun.
var ErrSubmissionNotFound = errors.New("submission not found")

const schema = `
CREATE TABLE IF NOT EXISTS checkout_submissions (
	id              TEXT PRIMARY KEY,
	session_id      TEXT NOT NULL,
	offer_id        TEXT NOT NULL,
	amount          NUMERIC(14, 2) NOT NULL,
	currency        CHAR(3) NOT NULL,
	passenger_ids   TEXT[] NOT NULL DEFAULT '{}',
	passenger_count INTEGER NOT NULL,
	status          TEXT NOT NULL,
	detail          TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMPTZ NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS checkout_submissions_session_idx ON checkout_submissions (session_id);
`

// Clock returns the current time.
type Clock func() time.Time

// PostgresLedger persists submissions in PostgreSQL.
type PostgresLedger struct {
	db    *sql.DB
	clock Clock
}

var _ domain.SubmissionLedger = (*PostgresLedger)(nil)

// Option configures a PostgresLedger.
type Option func(*PostgresLedger)

// WithClock sets the clock used for updated_at.
func WithClock(clock Clock) Option {
	return func(l *PostgresLedger) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// NewPostgresLedger creates a ledger over an open database.
func NewPostgresLedger(db *sql.DB, opts ...Option) *PostgresLedger {
	l := &PostgresLedger{
		db:    db,
		clock: time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Open connects to url with the lib/pq driver and verifies the connection.
func Open(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// Migrate creates the submissions table when it does not exist.
func (l *PostgresLedger) Migrate(ctx context.Context) error {
	if _, err := l.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate ledger: %w", err)
	}
	return nil
}

// Begin inserts a submission in its initial state.
func (l *PostgresLedger) Begin(ctx context.Context, sub domain.Submission) error {
	status := sub.Status
	if status == "" {
		status = domain.SubmissionPending
	}
	ids := sub.PassengerIDs
	if ids == nil {
		ids = []string{}
	}

	const query = `
		INSERT INTO checkout_submissions
			(id, session_id, offer_id, amount, currency, passenger_ids, passenger_count, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
	`
	_, err := l.db.ExecContext(ctx, query,
		sub.ID, sub.SessionID, sub.OfferID, sub.Amount, sub.Currency,
		pq.Array(ids), sub.PassengerCount, string(status), sub.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("begin submission %s: duplicate id: %w", sub.ID, err)
		}
		return fmt.Errorf("begin submission %s: %w", sub.ID, err)
	}
	return nil
}

// Complete moves a submission to its final status.
func (l *PostgresLedger) Complete(ctx context.Context, id string, status domain.SubmissionStatus, detail string) error {
	const query = `
		UPDATE checkout_submissions
		SET status = $2, detail = $3, updated_at = $4
		WHERE id = $1
	`
	res, err := l.db.ExecContext(ctx, query, id, string(status), detail, l.clock())
	if err != nil {
		return fmt.Errorf("complete submission %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("complete submission %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("complete submission %s: %w", id, ErrSubmissionNotFound)
	}
	return nil
}
