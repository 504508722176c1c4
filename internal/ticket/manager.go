// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

// Package ticket implements the ticket lifecycle: creation with derived
// status, role-checked updates, append-only comments and history, and
// deletion.
//
// Status transitions are deliberately unconstrained: any status can be set
// to any other by an actor with edit rights. All transitions flow through
// applyStatus so a guarded state machine could later be substituted in one
// place.
package ticket

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/propkeep/propkeep/internal/authz"
	"github.com/propkeep/propkeep/internal/models"
	"github.com/propkeep/propkeep/internal/store"
)

const (
	maxCommentLength = 500
	minTitleLength   = 5
	minDescLength    = 10
)

// Manager owns all ticket mutations. It persists through the store and
// reports assignment changes to the caller so notification dispatch can be
// triggered after the write commits.
type Manager struct {
	store  *store.Store
	logger zerolog.Logger
}

// NewManager creates a ticket lifecycle manager.
func NewManager(st *store.Store, logger zerolog.Logger) *Manager {
	return &Manager{store: st, logger: logger}
}

// CreateInput carries the fields accepted at ticket creation.
type CreateInput struct {
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	Category        models.TicketCategory `json:"category"`
	Priority        models.TicketPriority `json:"priority"`
	PropertyID      string                `json:"propertyId"`
	Unit            string                `json:"unit"`
	Room            string                `json:"room"`
	ForTenant       string                `json:"forTenant"`
	AssignedTo      string                `json:"assignedTo"`
	AssignedCompany string                `json:"assignedCompany"`
	DueDate         *time.Time            `json:"dueDate"`
}

// Create validates the input, substitutes a tenant actor's assigned
// property and unit when they were omitted, derives the initial status
// from the assignment fields, and persists the ticket with a single
// "created" history entry.
//
// Referenced property existence is not checked; a ticket may point at a
// property id the store has never seen.
func (m *Manager) Create(ctx context.Context, input CreateInput, actor *models.User) (*models.Ticket, error) {
	if actor == nil {
		return nil, models.NewPermissionError("authentication required")
	}

	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	if len(input.Title) < minTitleLength {
		return nil, models.NewValidationError("title", "title must be at least 5 characters")
	}
	if len(input.Description) < minDescLength {
		return nil, models.NewValidationError("description", "description must be at least 10 characters")
	}
	if !input.Category.Valid() {
		return nil, models.NewValidationError("category", "unknown category")
	}
	if !input.Priority.Valid() {
		return nil, models.NewValidationError("priority", "unknown priority")
	}

	// Tenants file against their own unit unless they said otherwise.
	if actor.Role == models.RoleTenant {
		if input.PropertyID == "" {
			input.PropertyID = actor.AssignedProperty
		}
		if input.Unit == "" {
			input.Unit = actor.AssignedUnit
		}
		if input.ForTenant == "" {
			input.ForTenant = actor.ID
		}
	}
	if input.PropertyID == "" || input.Unit == "" {
		return nil, models.NewValidationError("property", "property and unit are required")
	}

	now := time.Now().UTC()
	ticket := &models.Ticket{
		ID:              uuid.New().String(),
		Title:           input.Title,
		Description:     input.Description,
		Category:        input.Category,
		Priority:        input.Priority,
		Status:          deriveStatus(input.AssignedTo, input.AssignedCompany),
		CreatedBy:       actor.ID,
		ForTenant:       input.ForTenant,
		AssignedTo:      input.AssignedTo,
		AssignedCompany: input.AssignedCompany,
		PropertyID:      input.PropertyID,
		Unit:            input.Unit,
		Room:            input.Room,
		DueDate:         input.DueDate,
		CreatedAt:       now,
		UpdatedAt:       now,
		History: []models.HistoryEntry{{
			Action:    models.ActionCreated,
			Actor:     actor.ID,
			Timestamp: now,
			ToStatus:  deriveStatus(input.AssignedTo, input.AssignedCompany),
		}},
	}

	if ticket.AssignedCompany != "" {
		m.resolveCompanyName(ctx, ticket)
	}

	if err := m.store.CreateTicket(ctx, ticket); err != nil {
		return nil, err
	}

	m.logger.Info().
		Str("ticket_id", ticket.ID).
		Str("status", string(ticket.Status)).
		Str("created_by", actor.ID).
		Msg("ticket created")
	return ticket, nil
}

// Get fetches a ticket the actor is allowed to view.
func (m *Manager) Get(ctx context.Context, id string, actor *models.User) (*models.Ticket, error) {
	ticket, err := m.store.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor == nil || !authz.CanView(actor.Role, actor.ID, authz.RefsOf(ticket)) {
		return nil, models.NewPermissionError("not allowed to view this ticket")
	}
	return ticket, nil
}

// List returns the tickets visible to the actor, newest first.
func (m *Manager) List(ctx context.Context, actor *models.User) ([]models.Ticket, error) {
	if actor == nil {
		return nil, models.NewPermissionError("authentication required")
	}
	all, err := m.store.ListTickets(ctx)
	if err != nil {
		return nil, err
	}
	visible := make([]models.Ticket, 0, len(all))
	for i := range all {
		if authz.CanView(actor.Role, actor.ID, authz.RefsOf(&all[i])) {
			visible = append(visible, all[i])
		}
	}
	return visible, nil
}

// UpdatePatch carries the optional fields of a ticket update. Nil means
// the field is untouched.
type UpdatePatch struct {
	Title           *string                `json:"title"`
	Description     *string                `json:"description"`
	Category        *models.TicketCategory `json:"category"`
	Priority        *models.TicketPriority `json:"priority"`
	PropertyID      *string                `json:"propertyId"`
	Unit            *string                `json:"unit"`
	Room            *string                `json:"room"`
	AssignedTo      *string                `json:"assignedTo"`
	AssignedCompany *string                `json:"assignedCompany"`
	Status          *models.TicketStatus   `json:"status"`
	DueDate         *time.Time             `json:"dueDate"`
}

func (p *UpdatePatch) touchesAssignment() bool {
	return p.AssignedTo != nil || p.AssignedCompany != nil
}

// restrictedForTenant reports whether the patch touches a field a tenant
// may not change: property, assignment, or status.
func (p *UpdatePatch) restrictedForTenant() bool {
	return p.PropertyID != nil || p.touchesAssignment() || p.Status != nil
}

// Update applies the patch under the edit predicate. When an assignment
// field changes and no explicit status was supplied, the status is
// recomputed from the new assignment; an explicit status always wins.
// The returned flag reports whether assignment identity changed, so the
// caller can dispatch a ticket_assigned notification.
func (m *Manager) Update(ctx context.Context, id string, patch UpdatePatch, actor *models.User) (*models.Ticket, bool, error) {
	ticket, err := m.store.GetTicket(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if actor == nil || !authz.CanEdit(actor.Role, actor.ID, authz.RefsOf(ticket)) {
		return nil, false, models.NewPermissionError("not allowed to edit this ticket")
	}
	if actor.Role == models.RoleTenant && patch.restrictedForTenant() {
		return nil, false, models.NewPermissionError("tenants may not change assignment, status, or property")
	}

	now := time.Now().UTC()
	prevAssignedTo := ticket.AssignedTo
	prevCompany := ticket.AssignedCompany
	changed := false

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if len(title) < minTitleLength {
			return nil, false, models.NewValidationError("title", "title must be at least 5 characters")
		}
		ticket.Title = title
		changed = true
	}
	if patch.Description != nil {
		desc := strings.TrimSpace(*patch.Description)
		if len(desc) < minDescLength {
			return nil, false, models.NewValidationError("description", "description must be at least 10 characters")
		}
		ticket.Description = desc
		changed = true
	}
	if patch.Category != nil {
		if !patch.Category.Valid() {
			return nil, false, models.NewValidationError("category", "unknown category")
		}
		ticket.Category = *patch.Category
		changed = true
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return nil, false, models.NewValidationError("priority", "unknown priority")
		}
		ticket.Priority = *patch.Priority
		changed = true
	}
	if patch.PropertyID != nil {
		ticket.PropertyID = *patch.PropertyID
		changed = true
	}
	if patch.Unit != nil {
		ticket.Unit = *patch.Unit
		changed = true
	}
	if patch.Room != nil {
		ticket.Room = *patch.Room
		changed = true
	}
	if patch.DueDate != nil {
		ticket.DueDate = patch.DueDate
		changed = true
	}
	if patch.AssignedTo != nil {
		ticket.AssignedTo = *patch.AssignedTo
		changed = true
	}
	if patch.AssignedCompany != nil {
		ticket.AssignedCompany = *patch.AssignedCompany
		if ticket.AssignedCompany == "" {
			ticket.CompanyName = ""
		} else {
			m.resolveCompanyName(ctx, ticket)
		}
		changed = true
	}

	assignmentChanged := ticket.AssignedTo != prevAssignedTo || ticket.AssignedCompany != prevCompany

	switch {
	case patch.Status != nil:
		if !patch.Status.Valid() {
			return nil, false, models.NewValidationError("status", "unknown status")
		}
		applyStatus(ticket, *patch.Status, actor.ID, now)
		changed = true
	case assignmentChanged:
		applyStatus(ticket, deriveStatus(ticket.AssignedTo, ticket.AssignedCompany), actor.ID, now)
	}

	if assignmentChanged {
		ticket.History = append(ticket.History, models.HistoryEntry{
			Action:    models.ActionAssigned,
			Actor:     actor.ID,
			Timestamp: now,
			Note:      assignmentNote(ticket),
		})
	} else if changed {
		ticket.History = append(ticket.History, models.HistoryEntry{
			Action:    models.ActionUpdated,
			Actor:     actor.ID,
			Timestamp: now,
		})
	}

	ticket.UpdatedAt = now
	if err := m.store.UpdateTicket(ctx, ticket); err != nil {
		return nil, false, err
	}

	m.logger.Info().
		Str("ticket_id", ticket.ID).
		Str("status", string(ticket.Status)).
		Bool("assignment_changed", assignmentChanged).
		Str("actor", actor.ID).
		Msg("ticket updated")
	return ticket, assignmentChanged, nil
}

// AddComment appends an immutable comment and a "commented" history entry.
// Any actor with view access may comment; the isInternal flag is stored
// but not enforced on reads.
func (m *Manager) AddComment(ctx context.Context, id, message string, isInternal bool, actor *models.User) (*models.Ticket, error) {
	ticket, err := m.store.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor == nil || !authz.CanView(actor.Role, actor.ID, authz.RefsOf(ticket)) {
		return nil, models.NewPermissionError("not allowed to comment on this ticket")
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, models.NewValidationError("message", "comment message must not be empty")
	}
	if len(message) > maxCommentLength {
		return nil, models.NewValidationError("message", "comment message must be at most 500 characters")
	}

	now := time.Now().UTC()
	ticket.Comments = append(ticket.Comments, models.Comment{
		ID:         uuid.New().String(),
		Message:    message,
		Author:     actor.ID,
		IsInternal: isInternal,
		CreatedAt:  now,
	})
	ticket.History = append(ticket.History, models.HistoryEntry{
		Action:    models.ActionCommented,
		Actor:     actor.ID,
		Timestamp: now,
	})
	ticket.UpdatedAt = now

	if err := m.store.UpdateTicket(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// Delete hard-deletes a ticket under the delete predicate.
func (m *Manager) Delete(ctx context.Context, id string, actor *models.User) error {
	ticket, err := m.store.GetTicket(ctx, id)
	if err != nil {
		return err
	}
	if actor == nil || !authz.CanDelete(actor.Role, actor.ID, authz.RefsOf(ticket)) {
		return models.NewPermissionError("not allowed to delete this ticket")
	}
	if err := m.store.DeleteTicket(ctx, id); err != nil {
		return err
	}
	m.logger.Info().Str("ticket_id", id).Str("actor", actor.ID).Msg("ticket deleted")
	return nil
}

// deriveStatus computes the status implied by the assignment fields.
func deriveStatus(assignedTo, assignedCompany string) models.TicketStatus {
	if assignedTo != "" || assignedCompany != "" {
		return models.StatusInProgress
	}
	return models.StatusUnassigned
}

// applyStatus is the single substitution point for status transitions.
// There is no guard table. CompletedAt is set exactly once, the first time
// the status becomes "completed", and never cleared afterwards; "resolved"
// does not set it.
func applyStatus(t *models.Ticket, next models.TicketStatus, actorID string, now time.Time) {
	if t.Status == next {
		return
	}
	prev := t.Status
	t.Status = next
	if next == models.StatusCompleted && t.CompletedAt == nil {
		completed := now
		t.CompletedAt = &completed
	}
	t.History = append(t.History, models.HistoryEntry{
		Action:     models.ActionStatusChanged,
		Actor:      actorID,
		Timestamp:  now,
		FromStatus: prev,
		ToStatus:   next,
	})
}

// resolveCompanyName fills the denormalized display name for the assigned
// company. A missing company leaves the name blank rather than failing the
// ticket write.
func (m *Manager) resolveCompanyName(ctx context.Context, t *models.Ticket) {
	company, err := m.store.GetCompany(ctx, t.AssignedCompany)
	if err != nil {
		m.logger.Debug().
			Str("ticket_id", t.ID).
			Str("company_id", t.AssignedCompany).
			Msg("assigned company not found, leaving display name blank")
		return
	}
	t.CompanyName = company.Name
}

func assignmentNote(t *models.Ticket) string {
	switch {
	case t.AssignedTo != "" && t.AssignedCompany != "":
		return "assigned to worker and company"
	case t.AssignedTo != "":
		return "assigned to worker"
	case t.AssignedCompany != "":
		return "assigned to company"
	default:
		return "assignment cleared"
	}
}
