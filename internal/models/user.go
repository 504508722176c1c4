// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

// Package models defines the PropKeep domain entities (users, properties,
// companies, tickets), their enumerations, and the shared error taxonomy.
// Entities are plain structs persisted as JSON documents; validation tags
// are enforced by internal/validation at the API boundary.
package models

import "time"

// Role identifies a user's permission class.
type Role string

const (
	RoleOwner       Role = "owner"
	RoleAdmin       Role = "admin"
	RoleSeniorAdmin Role = "senior_admin"
	RoleTenant      Role = "tenant"
	RoleWorker      Role = "worker"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleSeniorAdmin, RoleTenant, RoleWorker:
		return true
	}
	return false
}

// IsPrivileged reports whether the role has unconditional management rights
// over tickets. Senior admins carry the same ticket rights as admins.
func (r Role) IsPrivileged() bool {
	return r == RoleOwner || r == RoleAdmin || r == RoleSeniorAdmin
}

// User is an account in the system. Tenants carry a single assigned
// property and unit; admins carry the set of properties they manage.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName" validate:"required"`
	LastName     string    `json:"lastName" validate:"required"`
	Phone        string    `json:"phone,omitempty"`
	Role         Role      `json:"role" validate:"required,oneof=owner admin senior_admin tenant worker"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Tenant-only fields.
	AssignedProperty string `json:"assignedProperty,omitempty"`
	AssignedUnit     string `json:"assignedUnit,omitempty"`

	// Admin-only field.
	ManagedProperties []string `json:"managedProperties,omitempty"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
