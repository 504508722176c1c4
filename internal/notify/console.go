// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ConsoleChannel writes the notification to the structured log. Always
// enabled; it is the floor every deployment gets even with nothing else
// configured.
type ConsoleChannel struct {
	logger zerolog.Logger
}

// NewConsoleChannel creates the console channel.
func NewConsoleChannel(logger zerolog.Logger) *ConsoleChannel {
	return &ConsoleChannel{logger: logger}
}

func (c *ConsoleChannel) Name() string { return "console" }

func (c *ConsoleChannel) Send(_ context.Context, event *Event) (*Result, error) {
	start := time.Now()
	c.logger.Info().
		Str("event", string(event.Type)).
		Str("ticket_id", event.Ticket.ID).
		Str("title", event.Ticket.Title).
		Str("priority", string(event.Ticket.Priority)).
		Str("status", string(event.Ticket.Status)).
		Msg("ticket notification")
	return succeeded(c.Name(), start), nil
}
