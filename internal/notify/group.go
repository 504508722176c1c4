// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/propkeep/propkeep/internal/config"
)

// GroupChannel broadcasts notifications to a chat group through a webhook
// bridge. The bridge owns the authenticated chat session; this channel
// only posts JSON to it.
type GroupChannel struct {
	cfg    config.GroupConfig
	client *http.Client
}

// groupMessage is the webhook payload.
type groupMessage struct {
	GroupID string `json:"groupId"`
	Text    string `json:"text"`
}

// NewGroupChannel creates the group-broadcast channel.
func NewGroupChannel(cfg config.GroupConfig) *GroupChannel {
	return &GroupChannel{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *GroupChannel) Name() string { return "group" }

func (c *GroupChannel) Send(ctx context.Context, event *Event) (*Result, error) {
	start := time.Now()

	payload, err := json.Marshal(groupMessage{
		GroupID: c.cfg.GroupID,
		Text:    Body(event),
	})
	if err != nil {
		return failed(c.Name(), start, err), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.WebhookURL,
		bytes.NewReader(payload))
	if err != nil {
		return failed(c.Name(), start, err), nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return failed(c.Name(), start, err), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return failed(c.Name(), start, fmt.Errorf("group webhook returned %d: %s",
			resp.StatusCode, strings.TrimSpace(string(raw)))), nil
	}
	return succeeded(c.Name(), start), nil
}
