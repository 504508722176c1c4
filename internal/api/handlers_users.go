// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/propkeep/propkeep/internal/auth"
	"github.com/propkeep/propkeep/internal/logging"
	"github.com/propkeep/propkeep/internal/models"
	"github.com/propkeep/propkeep/internal/validation"
)

type createUserRequest struct {
	Email            string      `json:"email" validate:"required,email"`
	Password         string      `json:"password" validate:"required,min=6"`
	FirstName        string      `json:"firstName" validate:"required"`
	LastName         string      `json:"lastName" validate:"required"`
	Phone            string      `json:"phone"`
	Role             models.Role `json:"role" validate:"required,oneof=owner admin senior_admin tenant worker"`
	AssignedProperty string      `json:"assignedProperty"`
	AssignedUnit     string      `json:"assignedUnit"`
}

// ListUsers returns all users. Manager roles only (route-gated).
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteSuccess(w, "", users)
}

// CreateUser registers a new account. Duplicate email yields 409. Only an
// owner may mint another owner or admin.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())

	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		WriteError(w, r, err)
		return
	}
	if (req.Role == models.RoleOwner || req.Role == models.RoleAdmin) && actor.Role != models.RoleOwner {
		WriteForbidden(w, "only an owner may create owner or admin accounts")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		WriteError(w, r, models.NewValidationError("password", err.Error()))
		return
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:               uuid.New().String(),
		Email:            req.Email,
		PasswordHash:     hash,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Phone:            req.Phone,
		Role:             req.Role,
		IsActive:         true,
		AssignedProperty: req.AssignedProperty,
		AssignedUnit:     req.AssignedUnit,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := h.store.CreateUser(r.Context(), user); err != nil {
		WriteError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("user_id", user.ID).
		Str("role", string(user.Role)).
		Str("created_by", actor.ID).
		Msg("user created")
	WriteCreated(w, "user created", user)
}

type updateUserRequest struct {
	FirstName         *string      `json:"firstName"`
	LastName          *string      `json:"lastName"`
	Phone             *string      `json:"phone"`
	Role              *models.Role `json:"role"`
	IsActive          *bool        `json:"isActive"`
	AssignedProperty  *string      `json:"assignedProperty"`
	AssignedUnit      *string      `json:"assignedUnit"`
	ManagedProperties *[]string    `json:"managedProperties"`
}

// UpdateUser applies a partial update to an account. Role changes to owner
// or admin are owner-only.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}

	user, err := h.store.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, r, err)
		return
	}

	if req.Role != nil {
		if !req.Role.Valid() {
			WriteBadRequest(w, "unknown role")
			return
		}
		if (*req.Role == models.RoleOwner || *req.Role == models.RoleAdmin) && actor.Role != models.RoleOwner {
			WriteForbidden(w, "only an owner may grant owner or admin roles")
			return
		}
		user.Role = *req.Role
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.AssignedProperty != nil {
		user.AssignedProperty = *req.AssignedProperty
	}
	if req.AssignedUnit != nil {
		user.AssignedUnit = *req.AssignedUnit
	}
	if req.ManagedProperties != nil {
		user.ManagedProperties = *req.ManagedProperties
	}
	user.UpdatedAt = time.Now().UTC()

	if err := h.store.UpdateUser(r.Context(), user); err != nil {
		WriteError(w, r, err)
		return
	}
	WriteSuccess(w, "user updated", user)
}

// DeleteUser removes an account. Owner-only (route-gated); tickets that
// reference the user keep a dangling reference.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())
	id := chi.URLParam(r, "id")
	if id == actor.ID {
		WriteBadRequest(w, "cannot delete your own account")
		return
	}
	if err := h.store.DeleteUser(r.Context(), id); err != nil {
		WriteError(w, r, err)
		return
	}
	WriteSuccess(w, "user deleted", nil)
}

type resetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// ResetPassword sets a new password on the target account.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		WriteError(w, r, err)
		return
	}

	user, err := h.store.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, r, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		WriteError(w, r, models.NewValidationError("password", err.Error()))
		return
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now().UTC()

	if err := h.store.UpdateUser(r.Context(), user); err != nil {
		WriteError(w, r, err)
		return
	}
	WriteSuccess(w, "password reset", nil)
}
