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
	"github.com/propkeep/propkeep/internal/models"
	"github.com/propkeep/propkeep/internal/validation"
)

// ListCompanies returns all contracting companies.
func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.store.ListCompanies(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteSuccess(w, "", companies)
}

type createCompanyRequest struct {
	Name       string                 `json:"name" validate:"required"`
	Category   models.CompanyCategory `json:"category" validate:"required"`
	Phone      string                 `json:"phone"`
	Email      string                 `json:"email" validate:"omitempty,email"`
	Properties []string               `json:"properties"`
}

// CreateCompany registers a contracting company owned by the acting user.
func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	actor := auth.UserFromContext(r.Context())

	var req createCompanyRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		WriteError(w, r, err)
		return
	}

	now := time.Now().UTC()
	company := &models.Company{
		ID:         uuid.New().String(),
		Name:       req.Name,
		Category:   req.Category,
		Phone:      req.Phone,
		Email:      req.Email,
		Properties: req.Properties,
		OwnerID:    actor.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := h.store.CreateCompany(r.Context(), company); err != nil {
		WriteError(w, r, err)
		return
	}
	WriteCreated(w, "company created", company)
}

type updateCompanyRequest struct {
	Name       *string                 `json:"name"`
	Category   *models.CompanyCategory `json:"category"`
	Phone      *string                 `json:"phone"`
	Email      *string                 `json:"email"`
	Properties *[]string               `json:"properties"`
}

// UpdateCompany applies a partial update to a company.
func (h *Handler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	var req updateCompanyRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}

	company, err := h.store.GetCompany(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, r, err)
		return
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Category != nil {
		company.Category = *req.Category
	}
	if req.Phone != nil {
		company.Phone = *req.Phone
	}
	if req.Email != nil {
		company.Email = *req.Email
	}
	if req.Properties != nil {
		company.Properties = *req.Properties
	}
	company.UpdatedAt = time.Now().UTC()

	if err := h.store.UpdateCompany(r.Context(), company); err != nil {
		WriteError(w, r, err)
		return
	}
	WriteSuccess(w, "company updated", company)
}

// DeleteCompany removes a company. Tickets referencing it keep their
// denormalized display name.
func (h *Handler) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteCompany(r.Context(), chi.URLParam(r, "id")); err != nil {
		WriteError(w, r, err)
		return
	}
	WriteSuccess(w, "company deleted", nil)
}
