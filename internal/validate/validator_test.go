package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Document map[string]any `json:"document" validate:"required"`
	ID       int64          `param:"document_id" validate:"gt=0"`
}

func TestValidator_Validate(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(sample{Document: map[string]any{"a": 1}, ID: 1}))

	err := v.Validate(sample{ID: 0})
	require.Error(t, err)
	assert.Equal(t, "document required, document_id gt=0", Message(err))
}

func TestMessage_PlainError(t *testing.T) {
	assert.Equal(t, "boom", Message(errors.New("boom")))
}
