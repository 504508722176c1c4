// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

// Package notify implements best-effort notification fan-out for ticket
// events.
//
// Channels are independent strategies constructed once at startup from
// configuration and injected into the Dispatcher. A channel failure is
// recorded in the dispatch report and logged; it never aborts the other
// channels and never reaches the ticket write path.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/propkeep/propkeep/internal/models"
)

// EventType names the ticket events that trigger notification fan-out.
type EventType string

const (
	EventTicketCreated  EventType = "ticket_created"
	EventTicketAssigned EventType = "ticket_assigned"
)

// Event is one notification trigger.
type Event struct {
	Type      EventType
	Ticket    *models.Ticket
	Actor     *models.User
	Timestamp time.Time
}

// Result is the outcome of one channel's delivery attempt.
type Result struct {
	Channel  string        `json:"channel"`
	Success  bool          `json:"success"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Channel is one notification delivery mechanism. Send may return an
// error or a failed Result; the dispatcher treats both the same way.
type Channel interface {
	Name() string
	Send(ctx context.Context, event *Event) (*Result, error)
}

// Subject renders a short one-line summary for subject-style channels.
func Subject(event *Event) string {
	verb := "created"
	if event.Type == EventTicketAssigned {
		verb = "assigned"
	}
	return fmt.Sprintf("[%s] Ticket %s: %s",
		strings.ToUpper(string(event.Ticket.Priority)), verb, event.Ticket.Title)
}

// Body renders the plain-text message shared by all channels.
func Body(event *Event) string {
	t := event.Ticket
	var b strings.Builder

	switch event.Type {
	case EventTicketAssigned:
		b.WriteString("🔧 Maintenance ticket assigned\n\n")
	default:
		b.WriteString("🎫 New maintenance ticket\n\n")
	}

	fmt.Fprintf(&b, "Title: %s\n", t.Title)
	fmt.Fprintf(&b, "Category: %s\n", t.Category)
	fmt.Fprintf(&b, "Priority: %s\n", t.Priority)
	fmt.Fprintf(&b, "Status: %s\n", t.Status)
	fmt.Fprintf(&b, "Property: %s, unit %s\n", t.PropertyID, t.Unit)
	if t.Room != "" {
		fmt.Fprintf(&b, "Room: %s\n", t.Room)
	}
	if t.AssignedTo != "" {
		fmt.Fprintf(&b, "Assigned worker: %s\n", t.AssignedTo)
	}
	if t.CompanyName != "" {
		fmt.Fprintf(&b, "Company: %s\n", t.CompanyName)
	} else if t.AssignedCompany != "" {
		fmt.Fprintf(&b, "Company: %s\n", t.AssignedCompany)
	}
	if event.Actor != nil {
		fmt.Fprintf(&b, "By: %s\n", event.Actor.FullName())
	}
	fmt.Fprintf(&b, "\n%s", t.Description)
	return b.String()
}

// failed builds a failed Result carrying the error text.
func failed(channel string, start time.Time, err error) *Result {
	return &Result{
		Channel:  channel,
		Success:  false,
		Error:    err.Error(),
		Duration: time.Since(start),
	}
}

// succeeded builds a successful Result.
func succeeded(channel string, start time.Time) *Result {
	return &Result{
		Channel:  channel,
		Success:  true,
		Duration: time.Since(start),
	}
}
