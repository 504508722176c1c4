// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

package notify

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propkeep/propkeep/internal/models"
)

type stubChannel struct {
	name  string
	err   error
	panic bool
	calls int
}

func (c *stubChannel) Name() string { return c.name }

func (c *stubChannel) Send(_ context.Context, _ *Event) (*Result, error) {
	c.calls++
	if c.panic {
		panic("boom")
	}
	start := time.Now()
	if c.err != nil {
		return failed(c.name, start, c.err), nil
	}
	return succeeded(c.name, start), nil
}

func testEvent() *Event {
	return &Event{
		Type: EventTicketCreated,
		Ticket: &models.Ticket{
			ID:          "t-1",
			Title:       "Leaky Kitchen Faucet",
			Description: "Dripping all night",
			Category:    models.CategoryPlumbing,
			Priority:    models.PriorityHigh,
			Status:      models.StatusUnassigned,
			PropertyID:  "prop-1",
			Unit:        "A001",
		},
	}
}

func TestDispatchTally(t *testing.T) {
	ok1 := &stubChannel{name: "one"}
	bad := &stubChannel{name: "two", err: errors.New("smtp down")}
	ok2 := &stubChannel{name: "three"}

	d := NewDispatcher([]Channel{ok1, bad, ok2}, zerolog.Nop())
	report := d.Dispatch(context.Background(), testEvent())

	assert.Equal(t, 3, report.ChannelsAttempted)
	assert.Equal(t, 2, report.ChannelsSucceeded)
	require.Len(t, report.Results, 3)
	assert.True(t, report.Results[0].Success)
	assert.False(t, report.Results[1].Success)
	assert.Contains(t, report.Results[1].Error, "smtp down")
	assert.True(t, report.Results[2].Success)
}

// One channel failing must not prevent later channels from being tried.
func TestDispatchIsolatesFailures(t *testing.T) {
	bad := &stubChannel{name: "first", err: errors.New("nope")}
	after := &stubChannel{name: "second"}

	d := NewDispatcher([]Channel{bad, after}, zerolog.Nop())
	report := d.Dispatch(context.Background(), testEvent())

	assert.Equal(t, 1, after.calls)
	assert.Equal(t, 1, report.ChannelsSucceeded)
}

func TestDispatchAbsorbsPanics(t *testing.T) {
	panicky := &stubChannel{name: "panicky", panic: true}
	after := &stubChannel{name: "after"}

	d := NewDispatcher([]Channel{panicky, after}, zerolog.Nop())

	var report *Report
	assert.NotPanics(t, func() {
		report = d.Dispatch(context.Background(), testEvent())
	})
	require.Len(t, report.Results, 2)
	assert.False(t, report.Results[0].Success)
	assert.Contains(t, report.Results[0].Error, "panicked")
	assert.True(t, report.Results[1].Success)
}

func TestDispatchNoChannels(t *testing.T) {
	d := NewDispatcher(nil, zerolog.Nop())
	report := d.Dispatch(context.Background(), testEvent())
	assert.Zero(t, report.ChannelsAttempted)
	assert.Zero(t, report.ChannelsSucceeded)
}

func TestConsoleChannel(t *testing.T) {
	var buf strings.Builder
	ch := NewConsoleChannel(zerolog.New(&buf))

	result, err := ch.Send(context.Background(), testEvent())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Contains(t, buf.String(), "t-1")
	assert.Contains(t, buf.String(), "Leaky Kitchen Faucet")
}

func TestFileChannelAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notifications.log")
	ch := NewFileChannel(path)

	event := testEvent()
	event.Timestamp = time.Now().UTC()

	for i := 0; i < 2; i++ {
		result, err := ch.Send(context.Background(), event)
		require.NoError(t, err)
		assert.True(t, result.Success)
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"ticketId":"t-1"`)
}

func TestBodyContainsTicketFields(t *testing.T) {
	event := testEvent()
	event.Actor = &models.User{ID: "u1", FirstName: "Ada", LastName: "Admin"}

	body := Body(event)
	assert.Contains(t, body, "Leaky Kitchen Faucet")
	assert.Contains(t, body, "plumbing")
	assert.Contains(t, body, "high")
	assert.Contains(t, body, "Ada Admin")

	subject := Subject(event)
	assert.Contains(t, subject, "HIGH")
	assert.Contains(t, subject, "created")
}
