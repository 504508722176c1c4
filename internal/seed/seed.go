// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

// Package seed creates the first-boot default owner account.
package seed

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/propkeep/propkeep/internal/auth"
	"github.com/propkeep/propkeep/internal/config"
	"github.com/propkeep/propkeep/internal/models"
	"github.com/propkeep/propkeep/internal/store"
)

// DefaultAdmin creates an owner account when seeding is enabled and no
// owner exists yet. Idempotent across restarts.
func DefaultAdmin(ctx context.Context, cfg config.SeedConfig, st *store.Store, logger zerolog.Logger) error {
	if !cfg.DefaultAdmin {
		return nil
	}

	exists, err := st.HasUserWithRole(ctx, models.RoleOwner)
	if err != nil {
		return err
	}
	if exists {
		logger.Debug().Msg("owner account already present, skipping seed")
		return nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	owner := &models.User{
		ID:           uuid.New().String(),
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		FirstName:    "Default",
		LastName:     "Owner",
		Role:         models.RoleOwner,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := st.CreateUser(ctx, owner); err != nil {
		return err
	}

	logger.Info().
		Str("email", owner.Email).
		Str("user_id", owner.ID).
		Msg("seeded default owner account")
	return nil
}
