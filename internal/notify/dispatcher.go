// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/propkeep/propkeep/internal/metrics"
)

// channelTimeout caps one channel attempt so a hung SMTP or HTTP call
// cannot stall the remaining channels.
const channelTimeout = 15 * time.Second

// Report aggregates one dispatch across all channels. The per-channel
// results are exposed so callers and tests can assert on partial failure
// instead of digging through logs.
type Report struct {
	Event             EventType `json:"event"`
	TicketID          string    `json:"ticketId"`
	Results           []Result  `json:"results"`
	ChannelsAttempted int       `json:"channelsAttempted"`
	ChannelsSucceeded int       `json:"channelsSucceeded"`
}

// Dispatcher fans an event out across its channel list. It holds no
// global state; channels are injected at construction.
type Dispatcher struct {
	channels []Channel
	logger   zerolog.Logger
}

// NewDispatcher creates a dispatcher over the given channels.
func NewDispatcher(channels []Channel, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{channels: channels, logger: logger}
}

// ChannelNames returns the names of the configured channels, for the
// status endpoint.
func (d *Dispatcher) ChannelNames() []string {
	names := make([]string, 0, len(d.channels))
	for _, ch := range d.channels {
		names = append(names, ch.Name())
	}
	return names
}

// Dispatch attempts delivery on every channel in order. Failures are
// isolated per channel and absorbed; Dispatch never returns an error and
// never panics outward. Purely best-effort: no retry, no queue, no
// ordering guarantee between channels.
func (d *Dispatcher) Dispatch(ctx context.Context, event *Event) *Report {
	report := &Report{
		Event:    event.Type,
		TicketID: event.Ticket.ID,
		Results:  make([]Result, 0, len(d.channels)),
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	for _, ch := range d.channels {
		result := d.attempt(ctx, ch, event)
		report.Results = append(report.Results, *result)
		report.ChannelsAttempted++
		if result.Success {
			report.ChannelsSucceeded++
		}
		metrics.RecordNotification(ch.Name(), result.Success)

		if result.Success {
			d.logger.Debug().
				Str("channel", ch.Name()).
				Str("ticket_id", event.Ticket.ID).
				Dur("duration", result.Duration).
				Msg("notification delivered")
		} else {
			d.logger.Warn().
				Str("channel", ch.Name()).
				Str("ticket_id", event.Ticket.ID).
				Str("error", result.Error).
				Msg("notification delivery failed")
		}
	}

	d.logger.Info().
		Str("event", string(event.Type)).
		Str("ticket_id", event.Ticket.ID).
		Int("attempted", report.ChannelsAttempted).
		Int("succeeded", report.ChannelsSucceeded).
		Msg("notification dispatch complete")
	return report
}

// attempt runs one channel under a timeout and converts panics and errors
// into a failed Result.
func (d *Dispatcher) attempt(ctx context.Context, ch Channel, event *Event) (result *Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			result = failed(ch.Name(), start, fmt.Errorf("channel panicked: %v", r))
		}
	}()

	sendCtx, cancel := context.WithTimeout(ctx, channelTimeout)
	defer cancel()

	res, err := ch.Send(sendCtx, event)
	if err != nil {
		return failed(ch.Name(), start, err)
	}
	if res == nil {
		return succeeded(ch.Name(), start)
	}
	return res
}
