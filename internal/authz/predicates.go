// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

// Package authz holds the role-based access predicates for tickets.
//
// Every predicate is a pure, total function of the actor's role and id and
// the ticket's reference fields. No I/O, no panics; missing or ambiguous
// references yield false.
package authz

import "github.com/propkeep/propkeep/internal/models"

// TicketRefs carries the reference fields a predicate needs from a ticket.
type TicketRefs struct {
	CreatedBy  string
	AssignedTo string
	ForTenant  string
}

// RefsOf extracts the predicate-relevant references from a ticket.
func RefsOf(t *models.Ticket) TicketRefs {
	if t == nil {
		return TicketRefs{}
	}
	return TicketRefs{
		CreatedBy:  t.CreatedBy,
		AssignedTo: t.AssignedTo,
		ForTenant:  t.ForTenant,
	}
}

// CanView reports whether the actor may read the ticket.
// Owners and admins always; tenants when they created it or are the
// tenant-of-record; workers when assigned.
func CanView(role models.Role, actorID string, refs TicketRefs) bool {
	if role.IsPrivileged() {
		return true
	}
	if actorID == "" {
		return false
	}
	switch role {
	case models.RoleTenant:
		return refs.CreatedBy == actorID || refs.ForTenant == actorID
	case models.RoleWorker:
		return refs.AssignedTo == actorID
	}
	return false
}

// CanEdit reports whether the actor may modify the ticket.
// Owners and admins always; tenants only when they created it. Being the
// tenant-of-record is not enough. Workers have no edit path.
func CanEdit(role models.Role, actorID string, refs TicketRefs) bool {
	if role.IsPrivileged() {
		return true
	}
	if actorID == "" {
		return false
	}
	return role == models.RoleTenant && refs.CreatedBy == actorID
}

// CanDelete reports whether the actor may delete the ticket.
// Owners and admins always; otherwise the creator, whatever their role.
func CanDelete(role models.Role, actorID string, refs TicketRefs) bool {
	if role.IsPrivileged() {
		return true
	}
	if actorID == "" {
		return false
	}
	return refs.CreatedBy == actorID
}
