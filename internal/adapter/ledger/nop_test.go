package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flight-booking/passenger-checkout/internal/domain"
)

func TestNopLedger(t *testing.T) {
	var l domain.SubmissionLedger = NopLedger{}
	ctx := context.Background()

	assert.NoError(t, l.Begin(ctx, domain.Submission{ID: "sub_1"}))
	assert.NoError(t, l.Complete(ctx, "sub_1", domain.SubmissionInitiated, ""))
	assert.NoError(t, l.Complete(ctx, "never-begun", domain.SubmissionFailed, "boom"))
}

func TestWithClock_IgnoresNil(t *testing.T) {
	l := NewPostgresLedger(nil, WithClock(nil))
	assert.NotNil(t, l.clock)
}
