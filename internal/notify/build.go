// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

package notify

import (
	"github.com/rs/zerolog"

	"github.com/propkeep/propkeep/internal/config"
)

// BuildChannels assembles the channel list from configuration. Console and
// file are always on; email, SMS, and group broadcast are constructed only
// when their credentials are complete. Incomplete credentials disable a
// channel silently rather than failing startup.
func BuildChannels(cfg config.NotifyConfig, logger zerolog.Logger) []Channel {
	channels := []Channel{
		NewConsoleChannel(logger),
		NewFileChannel(cfg.FilePath),
	}

	if cfg.Email.Enabled() {
		channels = append(channels, NewEmailChannel(cfg.Email))
	} else {
		logger.Debug().Msg("email channel disabled, credentials incomplete")
	}

	if cfg.SMS.Enabled() {
		channels = append(channels, NewSMSChannel(cfg.SMS))
	} else {
		logger.Debug().Msg("sms channel disabled, credentials incomplete")
	}

	if cfg.Group.Enabled() {
		channels = append(channels, NewGroupChannel(cfg.Group))
	} else {
		logger.Debug().Msg("group channel disabled, webhook not configured")
	}

	return channels
}
