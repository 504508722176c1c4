// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

package ticket

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propkeep/propkeep/internal/config"
	"github.com/propkeep/propkeep/internal/models"
	"github.com/propkeep/propkeep/internal/store"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	st, err := store.Open(config.DatabaseConfig{InMemory: true}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return NewManager(st, zerolog.Nop())
}

func tenantUser(id string) *models.User {
	return &models.User{
		ID:               id,
		Role:             models.RoleTenant,
		AssignedProperty: "prop-1",
		AssignedUnit:     "A001",
		IsActive:         true,
	}
}

func ownerUser(id string) *models.User {
	return &models.User{ID: id, Role: models.RoleOwner, IsActive: true}
}

func validInput() CreateInput {
	return CreateInput{
		Title:       "Leaky Kitchen Faucet",
		Description: "Water dripping under the sink all night",
		Category:    models.CategoryPlumbing,
		Priority:    models.PriorityHigh,
		PropertyID:  "prop-1",
		Unit:        "A001",
	}
}

func TestCreateStatusDerivation(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	owner := ownerUser("owner-1")

	t.Run("unassigned without worker or company", func(t *testing.T) {
		ticket, err := m.Create(ctx, validInput(), owner)
		require.NoError(t, err)
		assert.Equal(t, models.StatusUnassigned, ticket.Status)
	})

	t.Run("in_progress with worker", func(t *testing.T) {
		input := validInput()
		input.AssignedTo = "worker-1"
		ticket, err := m.Create(ctx, input, owner)
		require.NoError(t, err)
		assert.Equal(t, models.StatusInProgress, ticket.Status)
	})

	t.Run("in_progress with company", func(t *testing.T) {
		input := validInput()
		input.AssignedCompany = "company-1"
		ticket, err := m.Create(ctx, input, owner)
		require.NoError(t, err)
		assert.Equal(t, models.StatusInProgress, ticket.Status)
	})
}

// Scenario: a tenant files a ticket with valid fields and becomes the
// tenant-of-record; the ticket starts unassigned.
func TestCreateByTenant(t *testing.T) {
	m := newTestManager(t)
	tenant := tenantUser("tenant-1")

	input := validInput()
	input.PropertyID = ""
	input.Unit = ""

	ticket, err := m.Create(context.Background(), input, tenant)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnassigned, ticket.Status)
	assert.Equal(t, "tenant-1", ticket.ForTenant)
	// Assigned property and unit are substituted from the tenant record.
	assert.Equal(t, "prop-1", ticket.PropertyID)
	assert.Equal(t, "A001", ticket.Unit)
	require.Len(t, ticket.History, 1)
	assert.Equal(t, models.ActionCreated, ticket.History[0].Action)
}

func TestCreateValidation(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	owner := ownerUser("owner-1")

	tests := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"short title", func(i *CreateInput) { i.Title = "Fix" }},
		{"short description", func(i *CreateInput) { i.Description = "broken" }},
		{"bad category", func(i *CreateInput) { i.Category = "gardening" }},
		{"bad priority", func(i *CreateInput) { i.Priority = "asap" }},
		{"missing property for non-tenant", func(i *CreateInput) { i.PropertyID = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)
			_, err := m.Create(ctx, input, owner)
			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
}

func TestCreateFetchRoundTrip(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	owner := ownerUser("owner-1")

	input := validInput()
	created, err := m.Create(ctx, input, owner)
	require.NoError(t, err)

	fetched, err := m.Get(ctx, created.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, input.Title, fetched.Title)
	assert.Equal(t, input.Description, fetched.Description)
	assert.Equal(t, input.Category, fetched.Category)
	assert.Equal(t, input.Priority, fetched.Priority)
	assert.Equal(t, input.PropertyID, fetched.PropertyID)
	assert.Equal(t, input.Unit, fetched.Unit)
}

// Scenario: assigning a worker through update flips the status to
// in_progress and reports the assignment change for dispatch.
func TestUpdateAssignmentDerivesStatus(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	owner := ownerUser("owner-1")

	created, err := m.Create(ctx, validInput(), owner)
	require.NoError(t, err)
	require.Equal(t, models.StatusUnassigned, created.Status)

	worker := "worker-1"
	updated, assignmentChanged, err := m.Update(ctx, created.ID, UpdatePatch{AssignedTo: &worker}, owner)
	require.NoError(t, err)
	assert.True(t, assignmentChanged)
	assert.Equal(t, models.StatusInProgress, updated.Status)

	// Clearing the assignment derives unassigned again.
	empty := ""
	updated, assignmentChanged, err = m.Update(ctx, created.ID, UpdatePatch{AssignedTo: &empty}, owner)
	require.NoError(t, err)
	assert.True(t, assignmentChanged)
	assert.Equal(t, models.StatusUnassigned, updated.Status)
}

func TestUpdateExplicitStatusWins(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	owner := ownerUser("owner-1")

	created, err := m.Create(ctx, validInput(), owner)
	require.NoError(t, err)

	worker := "worker-1"
	waiting := models.StatusWaiting
	updated, assignmentChanged, err := m.Update(ctx, created.ID,
		UpdatePatch{AssignedTo: &worker, Status: &waiting}, owner)
	require.NoError(t, err)
	assert.True(t, assignmentChanged)
	assert.Equal(t, models.StatusWaiting, updated.Status)
}

// CompletedAt is set once when status first becomes completed and never
// cleared. Resolved does not set it.
func TestCompletedAtAsymmetry(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	owner := ownerUser("owner-1")

	created, err := m.Create(ctx, validInput(), owner)
	require.NoError(t, err)
	assert.Nil(t, created.CompletedAt)

	resolved := models.StatusResolved
	updated, _, err := m.Update(ctx, created.ID, UpdatePatch{Status: &resolved}, owner)
	require.NoError(t, err)
	assert.Nil(t, updated.CompletedAt, "resolved must not set completedAt")

	completed := models.StatusCompleted
	updated, _, err = m.Update(ctx, created.ID, UpdatePatch{Status: &completed}, owner)
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	firstCompleted := *updated.CompletedAt

	// Further status churn leaves the original timestamp untouched.
	waiting := models.StatusWaiting
	_, _, err = m.Update(ctx, created.ID, UpdatePatch{Status: &waiting}, owner)
	require.NoError(t, err)
	updated, _, err = m.Update(ctx, created.ID, UpdatePatch{Status: &completed}, owner)
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, firstCompleted, *updated.CompletedAt)
}

// Scenario: a tenant who is not the creator may not update the ticket,
// and the ticket is unchanged afterwards.
func TestUpdatePermissionDenied(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	creator := tenantUser("tenant-1")

	created, err := m.Create(ctx, validInput(), creator)
	require.NoError(t, err)

	other := tenantUser("tenant-2")
	title := "Another Title Entirely"
	_, _, err = m.Update(ctx, created.ID, UpdatePatch{Title: &title}, other)
	var perr *models.PermissionError
	require.ErrorAs(t, err, &perr)

	unchanged, err := m.Get(ctx, created.ID, creator)
	require.NoError(t, err)
	assert.Equal(t, created.Title, unchanged.Title)
}

func TestTenantCannotTouchAssignmentOrStatus(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	creator := tenantUser("tenant-1")

	created, err := m.Create(ctx, validInput(), creator)
	require.NoError(t, err)

	worker := "worker-1"
	_, _, err = m.Update(ctx, created.ID, UpdatePatch{AssignedTo: &worker}, creator)
	var perr *models.PermissionError
	require.ErrorAs(t, err, &perr)

	completed := models.StatusCompleted
	_, _, err = m.Update(ctx, created.ID, UpdatePatch{Status: &completed}, creator)
	require.ErrorAs(t, err, &perr)

	// Title and unit remain editable by the creator.
	title := "Leaky Kitchen Faucet Again"
	unit := "A002"
	updated, assignmentChanged, err := m.Update(ctx, created.ID,
		UpdatePatch{Title: &title, Unit: &unit}, creator)
	require.NoError(t, err)
	assert.False(t, assignmentChanged)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, unit, updated.Unit)
}

func TestAddComment(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	creator := tenantUser("tenant-1")

	created, err := m.Create(ctx, validInput(), creator)
	require.NoError(t, err)

	t.Run("append preserves prior entries", func(t *testing.T) {
		first, err := m.AddComment(ctx, created.ID, "Plumber scheduled for Monday", false, creator)
		require.NoError(t, err)
		require.Len(t, first.Comments, 1)

		second, err := m.AddComment(ctx, created.ID, "Rescheduled to Tuesday", false, creator)
		require.NoError(t, err)
		require.Len(t, second.Comments, 2)
		assert.Equal(t, first.Comments[0], second.Comments[0])
	})

	t.Run("empty after trim rejected", func(t *testing.T) {
		before, err := m.Get(ctx, created.ID, creator)
		require.NoError(t, err)

		_, err = m.AddComment(ctx, created.ID, "   ", false, creator)
		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr)

		after, err := m.Get(ctx, created.ID, creator)
		require.NoError(t, err)
		assert.Len(t, after.Comments, len(before.Comments))
	})

	t.Run("over 500 chars rejected", func(t *testing.T) {
		long := make([]byte, 501)
		for i := range long {
			long[i] = 'x'
		}
		_, err := m.AddComment(ctx, created.ID, string(long), false, creator)
		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("viewer without edit rights may comment", func(t *testing.T) {
		worker := &models.User{ID: "worker-9", Role: models.RoleWorker, IsActive: true}
		w := "worker-9"
		_, _, err := m.Update(ctx, created.ID, UpdatePatch{AssignedTo: &w}, ownerUser("owner-1"))
		require.NoError(t, err)

		_, err = m.AddComment(ctx, created.ID, "On my way", false, worker)
		require.NoError(t, err)
	})
}

func TestDelete(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()
	creator := tenantUser("tenant-1")

	created, err := m.Create(ctx, validInput(), creator)
	require.NoError(t, err)

	t.Run("stranger cannot delete", func(t *testing.T) {
		err := m.Delete(ctx, created.ID, tenantUser("tenant-2"))
		var perr *models.PermissionError
		require.ErrorAs(t, err, &perr)
	})

	t.Run("creator deletes", func(t *testing.T) {
		require.NoError(t, m.Delete(ctx, created.ID, creator))
		_, err := m.Get(ctx, created.ID, creator)
		var nferr *models.NotFoundError
		require.ErrorAs(t, err, &nferr)
	})

	t.Run("missing ticket", func(t *testing.T) {
		err := m.Delete(ctx, "no-such-id", ownerUser("owner-1"))
		var nferr *models.NotFoundError
		require.ErrorAs(t, err, &nferr)
	})
}

func TestListFiltersByVisibility(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	t1 := tenantUser("tenant-1")
	t2 := tenantUser("tenant-2")

	_, err := m.Create(ctx, validInput(), t1)
	require.NoError(t, err)
	_, err = m.Create(ctx, validInput(), t2)
	require.NoError(t, err)

	all, err := m.List(ctx, ownerUser("owner-1"))
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := m.List(ctx, t1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "tenant-1", mine[0].CreatedBy)
}
