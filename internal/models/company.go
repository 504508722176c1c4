// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

package models

import "time"

// CompanyCategory classifies a contracting company's trade.
type CompanyCategory string

const (
	CompanyPlumbing    CompanyCategory = "plumbing"
	CompanyElectrical  CompanyCategory = "electrical"
	CompanyHVAC        CompanyCategory = "hvac"
	CompanyCleaning    CompanyCategory = "cleaning"
	CompanyPestControl CompanyCategory = "pest_control"
	CompanySecurity    CompanyCategory = "security"
	CompanyGeneral     CompanyCategory = "general"
)

// Company is an external contractor that tickets can be assigned to.
// Each company is owned by exactly one owner-role user and may service
// a set of properties.
type Company struct {
	ID         string          `json:"id"`
	Name       string          `json:"name" validate:"required"`
	Category   CompanyCategory `json:"category" validate:"required"`
	Phone      string          `json:"phone,omitempty"`
	Email      string          `json:"email,omitempty" validate:"omitempty,email"`
	Properties []string        `json:"properties,omitempty"`
	OwnerID    string          `json:"ownerId"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}
