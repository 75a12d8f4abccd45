//go:build integration

package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/flight-booking/passenger-checkout/internal/domain"
)

func newPostgresLedger(t *testing.T, now time.Time) *PostgresLedger {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("checkout"),
		tcpostgres.WithUsername("checkout"),
		tcpostgres.WithPassword("checkout"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	l := NewPostgresLedger(db, WithClock(func() time.Time { return now }))
	require.NoError(t, l.Migrate(ctx))
	require.NoError(t, l.Migrate(ctx))
	return l
}

type storedSubmission struct {
	domain.Submission
	Detail    string
	UpdatedAt time.Time
}

func storedSubmissions(t *testing.T, l *PostgresLedger, sessionID string) []storedSubmission {
	t.Helper()
	const query = `
		SELECT id, session_id, offer_id, amount::TEXT, currency, passenger_ids, passenger_count,
		       status, detail, created_at, updated_at
		FROM checkout_submissions
		WHERE session_id = $1
		ORDER BY created_at, id
	`
	rows, err := l.db.QueryContext(context.Background(), query, sessionID)
	require.NoError(t, err)
	defer rows.Close()

	var out []storedSubmission
	for rows.Next() {
		var (
			r      storedSubmission
			status string
		)
		require.NoError(t, rows.Scan(&r.ID, &r.SessionID, &r.OfferID, &r.Amount, &r.Currency,
			pq.Array(&r.PassengerIDs), &r.PassengerCount, &status, &r.Detail, &r.CreatedAt, &r.UpdatedAt))
		r.Status = domain.SubmissionStatus(status)
		out = append(out, r)
	}
	require.NoError(t, rows.Err())
	return out
}

func TestPostgresLedger_Lifecycle(t *testing.T) {
	created := time.Date(2026, 10, 18, 4, 30, 0, 0, time.UTC)
	l := newPostgresLedger(t, created.Add(2*time.Second))
	ctx := context.Background()

	sub := domain.Submission{
		ID:             "sub_1",
		SessionID:      "ses_1",
		OfferID:        "off_1",
		Amount:         "15075.00",
		Currency:       "BDT",
		PassengerIDs:   []string{"pas_1", "pas_2"},
		PassengerCount: 2,
		CreatedAt:      created,
	}
	require.NoError(t, l.Begin(ctx, sub))
	require.Error(t, l.Begin(ctx, sub))

	require.NoError(t, l.Complete(ctx, "sub_1", domain.SubmissionInitiated, "https://pay.example/1"))

	records := storedSubmissions(t, l, "ses_1")
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, domain.SubmissionInitiated, r.Status)
	assert.Equal(t, "15075.00", r.Amount)
	assert.Equal(t, []string{"pas_1", "pas_2"}, r.PassengerIDs)
	assert.Equal(t, "https://pay.example/1", r.Detail)
	assert.True(t, r.CreatedAt.Equal(created))
	assert.True(t, r.UpdatedAt.Equal(created.Add(2*time.Second)))
}

func TestPostgresLedger_CompleteUnknown(t *testing.T) {
	l := newPostgresLedger(t, time.Now())

	err := l.Complete(context.Background(), "missing", domain.SubmissionFailed, "boom")
	assert.ErrorIs(t, err, ErrSubmissionNotFound)
}
