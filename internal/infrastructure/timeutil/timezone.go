package timeutil

import (
	"fmt"
	"sync"
	"time"
)

// Timezone names used by the checkout.
const (
	UTC = "UTC"

	// Dhaka is the business timezone; its calendar day decides ages and passport expiry.
	Dhaka = "Asia/Dhaka"
)

var locationCache sync.Map

// GetLocation loads a timezone by IANA name, caching the result.
func GetLocation(name string) (*time.Location, error) {
	if loc, ok := locationCache.Load(name); ok {
		return loc.(*time.Location), nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}

	locationCache.Store(name, loc)
	return loc, nil
}

func clearLocationCache() {
	locationCache.Range(func(key, _ interface{}) bool {
		locationCache.Delete(key)
		return true
	})
}
