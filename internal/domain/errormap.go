package domain

import "sort"

// ValidationErrorMap holds field errors per passenger index, keyed by error key.
// An absent key means the field has no error; passengers without errors are absent entirely.
type ValidationErrorMap map[int]map[string]string

// Get returns the message stored for a passenger's error key.
func (m ValidationErrorMap) Get(index int, key string) (string, bool) {
	msg, ok := m[index][key]
	return msg, ok
}

// Set returns a copy of the map with the message stored under the key.
func (m ValidationErrorMap) Set(index int, key, message string) ValidationErrorMap {
	out := m.Clone()
	if out[index] == nil {
		out[index] = make(map[string]string)
	}
	out[index][key] = message
	return out
}

// Clear returns a copy of the map without the key. The passenger entry is dropped once empty.
func (m ValidationErrorMap) Clear(index int, key string) ValidationErrorMap {
	out := m.Clone()
	if fields, ok := out[index]; ok {
		delete(fields, key)
		if len(fields) == 0 {
			delete(out, index)
		}
	}
	return out
}

// Apply stores or clears the key depending on the rule result.
func (m ValidationErrorMap) Apply(index int, key string, result RuleResult) ValidationErrorMap {
	if result.Valid {
		return m.Clear(index, key)
	}
	return m.Set(index, key, result.Message)
}

// IsEmpty reports whether no passenger has any error.
func (m ValidationErrorMap) IsEmpty() bool {
	return len(m) == 0
}

// Count returns the number of field errors across all passengers.
func (m ValidationErrorMap) Count() int {
	n := 0
	for _, fields := range m {
		n += len(fields)
	}
	return n
}

// Indexes returns the passenger indexes with at least one error, ascending.
func (m ValidationErrorMap) Indexes() []int {
	out := make([]int, 0, len(m))
	for idx := range m {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// Clone deep-copies the map. The result is never nil.
func (m ValidationErrorMap) Clone() ValidationErrorMap {
	out := make(ValidationErrorMap, len(m))
	for idx, fields := range m {
		cp := make(map[string]string, len(fields))
		for k, v := range fields {
			cp[k] = v
		}
		out[idx] = cp
	}
	return out
}
