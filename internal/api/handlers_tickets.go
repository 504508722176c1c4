// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/propkeep/propkeep/internal/auth"
	"github.com/propkeep/propkeep/internal/metrics"
	"github.com/propkeep/propkeep/internal/models"
	"github.com/propkeep/propkeep/internal/notify"
	"github.com/propkeep/propkeep/internal/ticket"
)

// dispatchAsync fires notification fan-out in the background after a
// ticket write has committed. The HTTP response never waits on it, and
// the detached context survives the request ending.
func (h *Handler) dispatchAsync(eventType notify.EventType, t *models.Ticket, actor *models.User) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		h.dispatcher.Dispatch(ctx, &notify.Event{
			Type:   eventType,
			Ticket: t,
			Actor:  actor,
		})
	}()
}

// ListTickets returns the tickets visible to the authenticated user.
func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	tickets, err := h.tickets.List(r.Context(), actor)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteSuccess(w, "", tickets)
}

// CreateTicket creates a ticket and dispatches a ticket_created event.
func (h *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())

	var input ticket.CreateInput
	if err := decodeJSON(r, &input); err != nil {
		WriteError(w, r, err)
		return
	}

	created, err := h.tickets.Create(r.Context(), input, actor)
	metrics.RecordTicketOperation("create", err == nil)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	h.dispatchAsync(notify.EventTicketCreated, created, actor)
	WriteCreated(w, "ticket created", created)
}

// GetTicket returns one ticket under the view predicate.
func (h *Handler) GetTicket(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	t, err := h.tickets.Get(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteSuccess(w, "", t)
}

// UpdateTicket applies a partial update. When assignment identity changed
// a ticket_assigned event is dispatched.
func (h *Handler) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())

	var patch ticket.UpdatePatch
	if err := decodeJSON(r, &patch); err != nil {
		WriteError(w, r, err)
		return
	}

	updated, assignmentChanged, err := h.tickets.Update(r.Context(), chi.URLParam(r, "id"), patch, actor)
	metrics.RecordTicketOperation("update", err == nil)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	if assignmentChanged {
		h.dispatchAsync(notify.EventTicketAssigned, updated, actor)
	}
	WriteSuccess(w, "ticket updated", updated)
}

// DeleteTicket hard-deletes a ticket under the delete predicate.
func (h *Handler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	err := h.tickets.Delete(r.Context(), chi.URLParam(r, "id"), actor)
	metrics.RecordTicketOperation("delete", err == nil)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteSuccess(w, "ticket deleted", nil)
}

type addCommentRequest struct {
	Message    string `json:"message"`
	IsInternal bool   `json:"isInternal"`
}

// AddComment appends a comment to a ticket the actor can view.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())

	var req addCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}

	updated, err := h.tickets.AddComment(r.Context(), chi.URLParam(r, "id"), req.Message, req.IsInternal, actor)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteCreated(w, "comment added", updated)
}
