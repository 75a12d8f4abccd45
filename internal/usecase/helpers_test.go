package usecase

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/flight-booking/passenger-checkout/internal/domain"
	"github.com/flight-booking/passenger-checkout/internal/infrastructure/timeutil"
)

// testNow is 2026-10-18 10:30 in Dhaka.
var testNow = time.Date(2026, 10, 18, 10, 30, 0, 0, time.FixedZone("BDT", 6*60*60))

func newTestClock() *timeutil.MockClock {
	return timeutil.NewMockClock(testNow)
}

// validPassenger returns a passenger of type t that passes every rule at testNow.
func validPassenger(id string, t domain.PassengerType) domain.Passenger {
	bornOn := "1990-05-12"
	switch t {
	case domain.PassengerChild:
		bornOn = "2018-03-01"
	case domain.PassengerInfant:
		bornOn = "2025-12-01"
	}
	return domain.Passenger{
		ID:          id,
		Type:        t,
		Title:       "Mr",
		GivenName:   "Rahim",
		FamilyName:  "Uddin",
		Gender:      "male",
		BornOn:      bornOn,
		Email:       "rahim@example.com",
		PhoneNumber: "+880 1712345678",
		IdentityDocuments: []domain.IdentityDocument{{
			Type:               domain.DocumentTypePassport,
			Number:             "BX1234567",
			IssuingCountryCode: "BD",
			ExpiresOn:          "2030-01-01",
		}},
	}
}

func validParty() []domain.Passenger {
	return []domain.Passenger{
		validPassenger("pas_1", domain.PassengerAdult),
		validPassenger("pas_2", domain.PassengerChild),
		validPassenger("pas_3", domain.PassengerInfant),
	}
}

func testFlight() domain.FlightDetails {
	return domain.FlightDetails{
		OfferID:      "off_123",
		Price:        "BDT 12500",
		Airline:      "Biman",
		FlightNumber: "BG388",
		Origin:       "DAC",
		Destination:  "LHR",
	}
}

// newStateWith builds a stored-shape session holding passengers.
func newStateWith(id string, passengers []domain.Passenger) domain.CheckoutState {
	counts := domain.TravelerCounts{}
	for _, p := range passengers {
		switch p.Type {
		case domain.PassengerChild:
			counts.Children++
		case domain.PassengerInfant:
			counts.Infants++
		default:
			counts.Adults++
		}
	}
	return domain.NewCheckoutState(id, testFlight(), counts, passengers, domain.DefaultPhoneCountryCode, testNow)
}

// mapStore backs a MockSessionStore with a map so use case tests can observe saved state.
// Update holds the map lock for the whole read-modify-write, like a store transaction.
type mapStore struct {
	mu        sync.Mutex
	sessions  map[string]domain.CheckoutState
	deleteErr error
}

func newMapStore(ctrl *gomock.Controller, seed ...domain.CheckoutState) (*domain.MockSessionStore, *mapStore) {
	ms := &mapStore{sessions: map[string]domain.CheckoutState{}}
	for _, s := range seed {
		ms.sessions[s.ID] = s
	}

	store := domain.NewMockSessionStore(ctrl)
	store.EXPECT().Get(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id string) (domain.CheckoutState, error) {
			ms.mu.Lock()
			defer ms.mu.Unlock()
			s, ok := ms.sessions[id]
			if !ok {
				return domain.CheckoutState{}, domain.ErrSessionNotFound
			}
			return s.Clone(), nil
		},
	).AnyTimes()
	store.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, s domain.CheckoutState) error {
			ms.mu.Lock()
			defer ms.mu.Unlock()
			ms.sessions[s.ID] = s.Clone()
			return nil
		},
	).AnyTimes()
	store.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id string, fn domain.UpdateFunc) (domain.CheckoutState, error) {
			ms.mu.Lock()
			defer ms.mu.Unlock()
			s, ok := ms.sessions[id]
			if !ok {
				return domain.CheckoutState{}, domain.ErrSessionNotFound
			}
			next, err := fn(s.Clone())
			if err != nil {
				return domain.CheckoutState{}, err
			}
			ms.sessions[id] = next.Clone()
			return next, nil
		},
	).AnyTimes()
	store.EXPECT().Delete(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id string) error {
			ms.mu.Lock()
			defer ms.mu.Unlock()
			if ms.deleteErr != nil {
				return ms.deleteErr
			}
			delete(ms.sessions, id)
			return nil
		},
	).AnyTimes()
	return store, ms
}

func (m *mapStore) failDeletes(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteErr = err
}

func (m *mapStore) get(id string) (domain.CheckoutState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// sequentialIDs returns an ID generator yielding prefix-1, prefix-2, ...
func sequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return prefix + "-" + strconv.Itoa(n)
	}
}
