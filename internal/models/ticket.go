// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

package models

import "time"

// TicketCategory classifies the kind of maintenance work requested.
type TicketCategory string

const (
	CategoryPlumbing    TicketCategory = "plumbing"
	CategoryElectrical  TicketCategory = "electrical"
	CategoryHeating     TicketCategory = "heating"
	CategoryCooling     TicketCategory = "cooling"
	CategoryAppliances  TicketCategory = "appliances"
	CategoryStructural  TicketCategory = "structural"
	CategoryPestControl TicketCategory = "pest_control"
	CategoryCleaning    TicketCategory = "cleaning"
	CategorySecurity    TicketCategory = "security"
	CategoryOther       TicketCategory = "other"
)

// Valid reports whether c is a known ticket category.
func (c TicketCategory) Valid() bool {
	switch c {
	case CategoryPlumbing, CategoryElectrical, CategoryHeating, CategoryCooling,
		CategoryAppliances, CategoryStructural, CategoryPestControl,
		CategoryCleaning, CategorySecurity, CategoryOther:
		return true
	}
	return false
}

// TicketPriority orders urgency.
type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
	PriorityUrgent TicketPriority = "urgent"
)

// Valid reports whether p is a known priority.
func (p TicketPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// TicketStatus is the lifecycle state of a ticket. The status set is flat:
// any status may be set to any other by a privileged actor, there is no
// enforced transition graph.
type TicketStatus string

const (
	StatusUnassigned TicketStatus = "unassigned"
	StatusInProgress TicketStatus = "in_progress"
	StatusWaiting    TicketStatus = "waiting"
	StatusCompleted  TicketStatus = "completed"
	StatusResolved   TicketStatus = "resolved"
	StatusCancelled  TicketStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s TicketStatus) Valid() bool {
	switch s {
	case StatusUnassigned, StatusInProgress, StatusWaiting,
		StatusCompleted, StatusResolved, StatusCancelled:
		return true
	}
	return false
}

// HistoryAction tags an audit-trail entry.
type HistoryAction string

const (
	ActionCreated       HistoryAction = "created"
	ActionStatusChanged HistoryAction = "status_changed"
	ActionAssigned      HistoryAction = "assigned"
	ActionCommented     HistoryAction = "commented"
	ActionUpdated       HistoryAction = "updated"
)

// HistoryEntry is an immutable audit record appended to a ticket.
type HistoryEntry struct {
	Action     HistoryAction `json:"action"`
	Actor      string        `json:"actor"`
	Timestamp  time.Time     `json:"timestamp"`
	FromStatus TicketStatus  `json:"fromStatus,omitempty"`
	ToStatus   TicketStatus  `json:"toStatus,omitempty"`
	Note       string        `json:"note,omitempty"`
}

// Comment is an immutable message appended to a ticket.
// IsInternal is stored but no read path filters on it.
type Comment struct {
	ID         string    `json:"id"`
	Message    string    `json:"message"`
	Author     string    `json:"author"`
	IsInternal bool      `json:"isInternal"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Ticket is the central entity: a maintenance request with lifecycle
// status, assignment, and an append-only audit trail.
//
// ForTenant is the tenant-of-record the ticket is filed on behalf of and
// may differ from CreatedBy. AssignedCompany references a Company by id;
// CompanyName is a denormalized display shim kept alongside it.
type Ticket struct {
	ID          string         `json:"id"`
	Title       string         `json:"title" validate:"required,min=5"`
	Description string         `json:"description" validate:"required,min=10"`
	Category    TicketCategory `json:"category" validate:"required"`
	Priority    TicketPriority `json:"priority" validate:"required"`
	Status      TicketStatus   `json:"status"`

	CreatedBy       string `json:"createdBy"`
	ForTenant       string `json:"forTenant,omitempty"`
	AssignedTo      string `json:"assignedTo,omitempty"`
	AssignedCompany string `json:"assignedCompany,omitempty"`
	CompanyName     string `json:"companyName,omitempty"`

	PropertyID string `json:"propertyId"`
	Unit       string `json:"unit"`
	Room       string `json:"room,omitempty"`

	DueDate     *time.Time `json:"dueDate,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	History  []HistoryEntry `json:"history"`
	Comments []Comment      `json:"comments"`
}

// IsAssigned reports whether the ticket has a worker or company attached.
func (t *Ticket) IsAssigned() bool {
	return t.AssignedTo != "" || t.AssignedCompany != ""
}
