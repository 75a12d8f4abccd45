package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorMap_SetAndClear(t *testing.T) {
	original := ValidationErrorMap{}

	withErr := original.Set(1, "email", MsgInvalidEmail)
	assert.True(t, original.IsEmpty(), "Set must not mutate the receiver")

	msg, ok := withErr.Get(1, "email")
	assert.True(t, ok)
	assert.Equal(t, MsgInvalidEmail, msg)

	withTwo := withErr.Set(1, ErrorKeyPassportNumber, MsgRequired)
	assert.Equal(t, 2, withTwo.Count())

	cleared := withTwo.Clear(1, "email")
	assert.Equal(t, 1, cleared.Count())
	assert.Equal(t, 2, withTwo.Count(), "Clear must not mutate the receiver")

	empty := cleared.Clear(1, ErrorKeyPassportNumber)
	assert.True(t, empty.IsEmpty())
	_, present := empty[1]
	assert.False(t, present, "passenger entry is removed once empty")
}

func TestValidationErrorMap_Apply(t *testing.T) {
	m := ValidationErrorMap{}.Apply(0, "title", RuleResult{Message: MsgRequired})
	msg, _ := m.Get(0, "title")
	assert.Equal(t, MsgRequired, msg)

	m = m.Apply(0, "title", RuleResult{Valid: true})
	assert.True(t, m.IsEmpty())
}

func TestValidationErrorMap_ClearMissing(t *testing.T) {
	m := ValidationErrorMap{}.Set(0, "email", MsgInvalidEmail)
	got := m.Clear(3, "email")
	assert.Equal(t, m, got)
}

func TestValidationErrorMap_Indexes(t *testing.T) {
	m := ValidationErrorMap{}.
		Set(2, "email", MsgRequired).
		Set(0, "title", MsgRequired)
	assert.Equal(t, []int{0, 2}, m.Indexes())
}

func TestValidationErrorMap_JSON(t *testing.T) {
	m := ValidationErrorMap{}.Set(0, "email", MsgInvalidEmail)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"0":{"email":"Invalid email format"}}`, string(data))
}
