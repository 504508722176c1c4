// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

package api

import (
	"net/http"

	"github.com/propkeep/propkeep/internal/auth"
	"github.com/propkeep/propkeep/internal/logging"
	"github.com/propkeep/propkeep/internal/validation"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password produce the same response so the endpoint cannot be used
// to enumerate accounts.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		WriteError(w, r, err)
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		WriteUnauthorized(w, "invalid email or password")
		return
	}
	if !user.IsActive {
		WriteUnauthorized(w, "account is deactivated")
		return
	}

	token, err := h.jwt.GenerateToken(user)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("user_id", user.ID).
		Str("role", string(user.Role)).
		Msg("user logged in")
	WriteSuccess(w, "login successful", loginResponse{Token: token, User: user})
}

// Profile returns the authenticated user's own record.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	if user == nil {
		WriteUnauthorized(w, "authentication required")
		return
	}
	WriteSuccess(w, "", user)
}
