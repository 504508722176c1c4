// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Email string `validate:"required,email"`
	Name  string `validate:"required,min=3"`
	Role  string `validate:"required,oneof=owner tenant"`
}

func TestStructValid(t *testing.T) {
	err := Struct(samplePayload{Email: "a@example.com", Name: "Ada", Role: "tenant"})
	assert.NoError(t, err)
}

func TestStructTranslatesMessages(t *testing.T) {
	err := Struct(samplePayload{Email: "nope", Name: "ab", Role: "robot"})
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	require.Len(t, reqErr.Fields, 3)

	messages := err.Error()
	assert.Contains(t, messages, "email must be a valid email address")
	assert.Contains(t, messages, "name must be at least 3 characters")
	assert.Contains(t, messages, "role must be one of: owner tenant")
}

func TestStructRequired(t *testing.T) {
	err := Struct(samplePayload{})
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Contains(t, err.Error(), "email is required")
}
