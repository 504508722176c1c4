// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

package api

import (
	"net/http"
	"time"
)

var startTime = time.Now()

// Health reports process liveness. Unauthenticated.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, "", map[string]any{
		"status":        "ok",
		"uptimeSeconds": int(time.Since(startTime).Seconds()),
		"time":          time.Now().UTC().Format(time.RFC3339),
	})
}

// NotificationStatus reports which notification channels are configured.
func (h *Handler) NotificationStatus(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, "", map[string]any{
		"channels": h.dispatcher.ChannelNames(),
	})
}
