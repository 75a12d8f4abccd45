package timeutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealClock_Now(t *testing.T) {
	clock := NewRealClock()

	before := time.Now()
	now := clock.Now()
	after := time.Now()

	assert.False(t, now.Before(before), "clock time should not be before start")
	assert.False(t, now.After(after), "clock time should not be after end")
}

func TestZonedClock_Now(t *testing.T) {
	clock, err := NewZonedClockByName(Dhaka)
	require.NoError(t, err)

	now := clock.Now()
	assert.Equal(t, Dhaka, now.Location().String())
	assert.WithinDuration(t, time.Now(), now, time.Second)
}

func TestZonedClock_NilLocation(t *testing.T) {
	clock := NewZonedClock(nil)
	assert.Equal(t, time.UTC, clock.Location())
}

func TestNewZonedClockByName_Invalid(t *testing.T) {
	_, err := NewZonedClockByName("Nowhere/Special")
	assert.Error(t, err)
}

func TestMockClock(t *testing.T) {
	start := time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		modify func(*MockClock)
		want   time.Time
	}{
		{name: "fixed", modify: func(*MockClock) {}, want: start},
		{name: "set", modify: func(c *MockClock) { c.Set(start.Add(time.Hour)) }, want: start.Add(time.Hour)},
		{name: "advance", modify: func(c *MockClock) { c.Advance(30 * time.Minute) }, want: start.Add(30 * time.Minute)},
		{name: "advance negative", modify: func(c *MockClock) { c.Advance(-time.Hour) }, want: start.Add(-time.Hour)},
		{name: "advance days", modify: func(c *MockClock) { c.AdvanceDays(2) }, want: time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := NewMockClock(start)
			tt.modify(clock)
			assert.Equal(t, tt.want, clock.Now())
		})
	}
}

func TestMockClock_ConcurrentUse(t *testing.T) {
	clock := NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			clock.Advance(time.Millisecond)
		}()
		go func() {
			defer wg.Done()
			_ = clock.Now()
		}()
	}
	wg.Wait()

	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 20*int(time.Millisecond), time.UTC), clock.Now())
}

func TestNewMockClockFromString(t *testing.T) {
	clock := NewMockClockFromString("2026-10-18T10:30:00+06:00")
	assert.Equal(t, 10, clock.Now().Hour())

	assert.Panics(t, func() { NewMockClockFromString("not a time") })
}
