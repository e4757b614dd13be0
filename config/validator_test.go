package config

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestMustRegister(t *testing.T) {
	ok := func(validator.FieldLevel) bool { return true }

	assert.NotPanics(t, func() { newValidator() })
	assert.NotPanics(t, func() { mustRegister(validator.New(), "always", ok) })
	// The validator refuses an empty tag.
	assert.Panics(t, func() { mustRegister(validator.New(), "", ok) })
}
