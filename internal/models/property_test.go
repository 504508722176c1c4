// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUnits(t *testing.T) {
	p := &Property{TotalUnits: 12}
	p.GenerateUnits()

	require.Len(t, p.Units, 12)
	assert.Equal(t, "A001", p.Units[0].UnitNumber)
	assert.Equal(t, "A012", p.Units[11].UnitNumber)
	assert.Equal(t, UnitStudio, p.Units[0].Type)

	// Ten units per floor.
	assert.Equal(t, 1, p.Units[9].Floor)
	assert.Equal(t, 2, p.Units[10].Floor)
}

func TestGenerateUnitsNoop(t *testing.T) {
	existing := []Unit{{UnitNumber: "B100"}}
	p := &Property{TotalUnits: 5, Units: existing}
	p.GenerateUnits()
	assert.Equal(t, existing, p.Units, "supplied units are never overwritten")

	empty := &Property{}
	empty.GenerateUnits()
	assert.Empty(t, empty.Units)
}

func TestFindUnit(t *testing.T) {
	p := &Property{Units: []Unit{{UnitNumber: "A001"}, {UnitNumber: "A002"}}}

	unit := p.FindUnit("A002")
	require.NotNil(t, unit)

	// FindUnit returns a pointer into the slice so occupancy updates stick.
	unit.IsOccupied = true
	unit.TenantID = "t-1"
	assert.True(t, p.Units[1].IsOccupied)
	assert.Equal(t, "t-1", p.Units[1].TenantID)

	assert.Nil(t, p.FindUnit("Z999"))
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, RoleTenant.Valid())
	assert.False(t, Role("butler").Valid())

	assert.True(t, CategoryPestControl.Valid())
	assert.False(t, TicketCategory("gardening").Valid())

	assert.True(t, PriorityUrgent.Valid())
	assert.False(t, TicketPriority("whenever").Valid())

	assert.True(t, StatusResolved.Valid())
	assert.False(t, TicketStatus("done").Valid())

	assert.True(t, PropertyStudentResidence.Valid())
	assert.False(t, PropertyType("castle").Valid())
}

func TestIsPrivileged(t *testing.T) {
	assert.True(t, RoleOwner.IsPrivileged())
	assert.True(t, RoleAdmin.IsPrivileged())
	assert.True(t, RoleSeniorAdmin.IsPrivileged())
	assert.False(t, RoleTenant.IsPrivileged())
	assert.False(t, RoleWorker.IsPrivileged())
}
