package domain

import (
	"encoding/json"
	"sort"
)

// TouchedKey identifies one field of one passenger the user has interacted with.
type TouchedKey struct {
	Passenger int   `json:"passenger"`
	Field     Field `json:"field"`
	Document  bool  `json:"document"`
}

// TouchedState is the set of fields the user has interacted with.
// It only gates which errors are shown; errors are computed regardless.
type TouchedState struct {
	keys map[TouchedKey]struct{}
}

// NewTouchedState creates an empty touched set.
func NewTouchedState() TouchedState {
	return TouchedState{keys: make(map[TouchedKey]struct{})}
}

// Touch returns a copy of the set with the key added.
func (s TouchedState) Touch(key TouchedKey) TouchedState {
	out := s.Clone()
	out.keys[key] = struct{}{}
	return out
}

// TouchAll returns a copy of the set with every required field of every passenger added.
func (s TouchedState) TouchAll(passengerCount int) TouchedState {
	out := s.Clone()
	for i := 0; i < passengerCount; i++ {
		for _, f := range PassengerFields {
			out.keys[TouchedKey{Passenger: i, Field: f}] = struct{}{}
		}
		for _, f := range DocumentFields {
			out.keys[TouchedKey{Passenger: i, Field: f, Document: true}] = struct{}{}
		}
	}
	return out
}

// IsTouched reports whether the key has been touched.
func (s TouchedState) IsTouched(key TouchedKey) bool {
	_, ok := s.keys[key]
	return ok
}

// Len returns the number of touched keys.
func (s TouchedState) Len() int {
	return len(s.keys)
}

// Clone copies the set.
func (s TouchedState) Clone() TouchedState {
	out := NewTouchedState()
	for k := range s.keys {
		out.keys[k] = struct{}{}
	}
	return out
}

// Keys returns the touched keys ordered by passenger, then document flag, then field.
func (s TouchedState) Keys() []TouchedKey {
	out := make([]TouchedKey, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Passenger != b.Passenger {
			return a.Passenger < b.Passenger
		}
		if a.Document != b.Document {
			return !a.Document
		}
		return a.Field < b.Field
	})
	return out
}

// MarshalJSON encodes the set as an ordered list of keys.
func (s TouchedState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Keys())
}

// UnmarshalJSON decodes a list of keys.
func (s *TouchedState) UnmarshalJSON(data []byte) error {
	var keys []TouchedKey
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	*s = NewTouchedState()
	for _, k := range keys {
		s.keys[k] = struct{}{}
	}
	return nil
}
