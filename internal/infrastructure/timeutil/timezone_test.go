package timeutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLocation(t *testing.T) {
	tests := []struct {
		name    string
		tz      string
		wantErr bool
	}{
		{name: "utc", tz: UTC},
		{name: "dhaka", tz: Dhaka},
		{name: "invalid", tz: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearLocationCache()

			loc, err := GetLocation(tt.tz)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, loc)
				assert.Contains(t, err.Error(), "failed to load timezone")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.tz, loc.String())
		})
	}
}

func TestGetLocation_Caching(t *testing.T) {
	clearLocationCache()

	loc1, err := GetLocation(Dhaka)
	require.NoError(t, err)
	loc2, err := GetLocation(Dhaka)
	require.NoError(t, err)

	assert.Same(t, loc1, loc2)
}

func TestGetLocation_ConcurrentAccess(t *testing.T) {
	clearLocationCache()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			_, err := GetLocation(name)
			assert.NoError(t, err)
		}([]string{UTC, Dhaka}[i%2])
	}
	wg.Wait()
}

func TestGetLocation_DhakaCalendarDay(t *testing.T) {
	dhaka, err := GetLocation(Dhaka)
	require.NoError(t, err)

	// 20:00 UTC is already the next day in Dhaka (UTC+6).
	instant := time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, 19, instant.In(dhaka).Day())
}
