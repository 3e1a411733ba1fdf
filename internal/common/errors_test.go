package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError(3, "amount", "abc", ErrInvalidAmount)
	assert.Equal(t, `row 3 column "amount" value "abc": invalid amount`, err.Error())
	assert.ErrorIs(t, err, ErrInvalidAmount)

	bare := NewValidationError(0, "", "", ErrMissingColumn)
	assert.Equal(t, "row 0: missing required column", bare.Error())
}

func TestCollaboratorError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewCollaboratorError("assistant", cause)

	assert.Equal(t, "assistant unavailable: connection refused", err.Error())
	assert.ErrorIs(t, err, ErrCollaborator)
	assert.ErrorIs(t, err, cause)

	var collabErr *CollaboratorError
	assert.ErrorAs(t, err, &collabErr)
	assert.Equal(t, "assistant", collabErr.Collaborator)
}

func TestConfigurationError(t *testing.T) {
	err := NewConfigurationError("llm.openai_api_key", ErrMissingConfig)
	assert.Equal(t, "configuration llm.openai_api_key: missing configuration", err.Error())
	assert.ErrorIs(t, err, ErrMissingConfig)

	assert.Equal(t, "configuration: invalid configuration", NewConfigurationError("", ErrInvalidConfig).Error())
}

func TestUserError(t *testing.T) {
	err := NewUserError("could not read invoices", errors.New("permission denied"))
	assert.Equal(t, "could not read invoices: permission denied", err.Error())
	assert.Equal(t, "just a message", NewUserError("just a message", nil).Error())
}
