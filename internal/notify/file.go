// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

package notify

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// FileChannel appends one JSON line per notification to a log file.
// Always enabled alongside the console channel.
type FileChannel struct {
	path string

	// mu serializes appends from concurrent dispatches.
	mu sync.Mutex
}

// fileRecord is the JSONL shape written per notification.
type fileRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Event     EventType `json:"event"`
	TicketID  string    `json:"ticketId"`
	Title     string    `json:"title"`
	Priority  string    `json:"priority"`
	Status    string    `json:"status"`
	Actor     string    `json:"actor,omitempty"`
}

// NewFileChannel creates the file channel writing to path.
func NewFileChannel(path string) *FileChannel {
	return &FileChannel{path: path}
}

func (c *FileChannel) Name() string { return "file" }

func (c *FileChannel) Send(_ context.Context, event *Event) (*Result, error) {
	start := time.Now()

	record := fileRecord{
		Timestamp: event.Timestamp,
		Event:     event.Type,
		TicketID:  event.Ticket.ID,
		Title:     event.Ticket.Title,
		Priority:  string(event.Ticket.Priority),
		Status:    string(event.Ticket.Status),
	}
	if event.Actor != nil {
		record.Actor = event.Actor.ID
	}

	line, err := json.Marshal(record)
	if err != nil {
		return failed(c.Name(), start, err), nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return failed(c.Name(), start, fmt.Errorf("creating log directory: %w", err)), nil
		}
	}
	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o640)
	if err != nil {
		return failed(c.Name(), start, err), nil
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return failed(c.Name(), start, err), nil
	}
	return succeeded(c.Name(), start), nil
}
