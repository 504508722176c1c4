// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propkeep/propkeep/internal/models"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestJWTRoundTrip(t *testing.T) {
	m, err := NewJWTManager(testSecret, time.Hour)
	require.NoError(t, err)

	user := &models.User{ID: "u-1", Email: "jane@example.com", Role: models.RoleAdmin}
	token, err := m.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	m1, err := NewJWTManager(testSecret, time.Hour)
	require.NoError(t, err)
	m2, err := NewJWTManager("another-secret-another-secret-xx", time.Hour)
	require.NoError(t, err)

	token, err := m1.GenerateToken(&models.User{ID: "u-1", Role: models.RoleTenant})
	require.NoError(t, err)

	_, err = m2.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTRejectsExpired(t *testing.T) {
	m, err := NewJWTManager(testSecret, -time.Minute)
	require.NoError(t, err)
	// Negative TTL falls back to the default, so build one with a short
	// TTL by hand instead.
	m.tokenTTL = -time.Minute

	token, err := m.GenerateToken(&models.User{ID: "u-1", Role: models.RoleTenant})
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTRejectsGarbage(t *testing.T) {
	m, err := NewJWTManager(testSecret, time.Hour)
	require.NoError(t, err)
	_, err = m.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestEmptySecretRejected(t *testing.T) {
	_, err := NewJWTManager("", time.Hour)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))
}

func TestShortPasswordRejected(t *testing.T) {
	_, err := HashPassword("abc")
	assert.Error(t, err)
}
