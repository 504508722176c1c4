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

	"github.com/propkeep/propkeep/internal/models"
	"github.com/propkeep/propkeep/internal/validation"
)

// ListProperties returns all properties. Visible to every authenticated
// role; tenants need it to label their own unit.
func (h *Handler) ListProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.store.ListProperties(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteSuccess(w, "", properties)
}

type createPropertyRequest struct {
	Name       string              `json:"name" validate:"required"`
	Address    models.Address      `json:"address"`
	Type       models.PropertyType `json:"type" validate:"required,oneof=apartment house townhouse student_residence commercial"`
	TotalUnits int                 `json:"totalUnits" validate:"gte=0"`
	Units      []models.Unit       `json:"units"`
}

// CreateProperty creates a property, auto-generating units from
// totalUnits when none were supplied.
func (h *Handler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var req createPropertyRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		WriteError(w, r, err)
		return
	}

	now := time.Now().UTC()
	property := &models.Property{
		ID:         uuid.New().String(),
		Name:       req.Name,
		Address:    req.Address,
		Type:       req.Type,
		TotalUnits: req.TotalUnits,
		Units:      req.Units,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	property.GenerateUnits()

	if err := h.store.CreateProperty(r.Context(), property); err != nil {
		WriteError(w, r, err)
		return
	}
	WriteCreated(w, "property created", property)
}

type updatePropertyRequest struct {
	Name    *string              `json:"name"`
	Address *models.Address      `json:"address"`
	Type    *models.PropertyType `json:"type"`
	Units   *[]models.Unit       `json:"units"`
}

// UpdateProperty applies a partial update to a property.
func (h *Handler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	var req updatePropertyRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}

	property, err := h.store.GetProperty(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, r, err)
		return
	}

	if req.Name != nil {
		property.Name = *req.Name
	}
	if req.Address != nil {
		property.Address = *req.Address
	}
	if req.Type != nil {
		if !req.Type.Valid() {
			WriteBadRequest(w, "unknown property type")
			return
		}
		property.Type = *req.Type
	}
	if req.Units != nil {
		property.Units = *req.Units
	}
	property.UpdatedAt = time.Now().UTC()

	if err := h.store.UpdateProperty(r.Context(), property); err != nil {
		WriteError(w, r, err)
		return
	}
	WriteSuccess(w, "property updated", property)
}

// DeleteProperty removes a property. Tickets referencing it keep dangling
// references.
func (h *Handler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteProperty(r.Context(), chi.URLParam(r, "id")); err != nil {
		WriteError(w, r, err)
		return
	}
	WriteSuccess(w, "property deleted", nil)
}

type assignTenantRequest struct {
	TenantID   string `json:"tenantId" validate:"required"`
	UnitNumber string `json:"unitNumber" validate:"required"`
}

// AssignTenant places a tenant into a unit, marking the unit occupied and
// updating the tenant's assigned property and unit. The property write and
// the user write are two separate transactions; a crash between them
// leaves the two sides inconsistent. Known accepted limitation.
func (h *Handler) AssignTenant(w http.ResponseWriter, r *http.Request) {
	var req assignTenantRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	if err := validation.Struct(req); err != nil {
		WriteError(w, r, err)
		return
	}

	property, err := h.store.GetProperty(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	tenant, err := h.store.GetUser(r.Context(), req.TenantID)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	if tenant.Role != models.RoleTenant {
		WriteBadRequest(w, "user is not a tenant")
		return
	}

	unit := property.FindUnit(req.UnitNumber)
	if unit == nil {
		WriteError(w, r, models.NewNotFoundError("unit", req.UnitNumber))
		return
	}
	if unit.IsOccupied {
		WriteError(w, r, models.NewConflictError("unit is already occupied"))
		return
	}

	// Occupancy flag and tenant reference are set together.
	unit.IsOccupied = true
	unit.TenantID = tenant.ID
	property.UpdatedAt = time.Now().UTC()
	if err := h.store.UpdateProperty(r.Context(), property); err != nil {
		WriteError(w, r, err)
		return
	}

	tenant.AssignedProperty = property.ID
	tenant.AssignedUnit = unit.UnitNumber
	tenant.UpdatedAt = time.Now().UTC()
	if err := h.store.UpdateUser(r.Context(), tenant); err != nil {
		WriteError(w, r, err)
		return
	}

	WriteSuccess(w, "tenant assigned", property)
}
