// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

package store

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propkeep/propkeep/internal/config"
	"github.com/propkeep/propkeep/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(config.DatabaseConfig{InMemory: true}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestUserCRUD(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	user := &models.User{
		ID:        "u-1",
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Role:      models.RoleTenant,
		IsActive:  true,
	}
	require.NoError(t, st.CreateUser(ctx, user))

	t.Run("get by id", func(t *testing.T) {
		got, err := st.GetUser(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", got.Email)
	})

	t.Run("get by email is case insensitive", func(t *testing.T) {
		got, err := st.GetUserByEmail(ctx, "JANE@Example.com")
		require.NoError(t, err)
		assert.Equal(t, "u-1", got.ID)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		dup := &models.User{ID: "u-2", Email: "jane@example.com", Role: models.RoleWorker}
		err := st.CreateUser(ctx, dup)
		var cerr *models.ConflictError
		require.ErrorAs(t, err, &cerr)
	})

	t.Run("email change moves the index", func(t *testing.T) {
		user.Email = "jane.doe@example.com"
		require.NoError(t, st.UpdateUser(ctx, user))

		_, err := st.GetUserByEmail(ctx, "jane@example.com")
		var nferr *models.NotFoundError
		require.ErrorAs(t, err, &nferr)

		got, err := st.GetUserByEmail(ctx, "jane.doe@example.com")
		require.NoError(t, err)
		assert.Equal(t, "u-1", got.ID)
	})

	t.Run("delete clears the index", func(t *testing.T) {
		require.NoError(t, st.DeleteUser(ctx, "u-1"))
		_, err := st.GetUser(ctx, "u-1")
		var nferr *models.NotFoundError
		require.ErrorAs(t, err, &nferr)

		// Email becomes reusable after deletion.
		again := &models.User{ID: "u-3", Email: "jane.doe@example.com", Role: models.RoleTenant}
		require.NoError(t, st.CreateUser(ctx, again))
	})
}

func TestHasUserWithRole(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	found, err := st.HasUserWithRole(ctx, models.RoleOwner)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, st.CreateUser(ctx, &models.User{
		ID: "o-1", Email: "owner@example.com", Role: models.RoleOwner,
	}))

	found, err = st.HasUserWithRole(ctx, models.RoleOwner)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestPropertyRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	property := &models.Property{
		ID:         "p-1",
		Name:       "Riverside Court",
		Type:       models.PropertyApartment,
		TotalUnits: 3,
		Units: []models.Unit{
			{UnitNumber: "A001", Type: models.UnitStudio, Floor: 1},
		},
	}
	require.NoError(t, st.CreateProperty(ctx, property))

	got, err := st.GetProperty(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, property.Name, got.Name)
	require.Len(t, got.Units, 1)
	assert.Equal(t, "A001", got.Units[0].UnitNumber)

	require.NoError(t, st.DeleteProperty(ctx, "p-1"))
	_, err = st.GetProperty(ctx, "p-1")
	var nferr *models.NotFoundError
	require.ErrorAs(t, err, &nferr)
}

func TestCompanyRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	company := &models.Company{
		ID:       "c-1",
		Name:     "Rapid Plumbing",
		Category: models.CompanyPlumbing,
		OwnerID:  "o-1",
	}
	require.NoError(t, st.CreateCompany(ctx, company))

	got, err := st.GetCompany(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Rapid Plumbing", got.Name)
}

func TestTicketListOrdering(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	older := &models.Ticket{ID: "t-1", Title: "Old", CreatedAt: time.Now().Add(-time.Hour)}
	newer := &models.Ticket{ID: "t-2", Title: "New", CreatedAt: time.Now()}
	require.NoError(t, st.CreateTicket(ctx, older))
	require.NoError(t, st.CreateTicket(ctx, newer))

	tickets, err := st.ListTickets(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, "t-2", tickets[0].ID)
	assert.Equal(t, "t-1", tickets[1].ID)
}

func TestUpdateMissingTicket(t *testing.T) {
	st := newTestStore(t)
	err := st.UpdateTicket(context.Background(), &models.Ticket{ID: "ghost"})
	var nferr *models.NotFoundError
	require.ErrorAs(t, err, &nferr)
}

func TestCancelledContext(t *testing.T) {
	st := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := st.ListTickets(ctx)
	assert.Error(t, err)
}
