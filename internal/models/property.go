// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

package models

import (
	"fmt"
	"time"
)

// PropertyType classifies a building.
type PropertyType string

const (
	PropertyApartment        PropertyType = "apartment"
	PropertyHouse            PropertyType = "house"
	PropertyTownhouse        PropertyType = "townhouse"
	PropertyStudentResidence PropertyType = "student_residence"
	PropertyCommercial       PropertyType = "commercial"
)

// Valid reports whether t is a known property type.
func (t PropertyType) Valid() bool {
	switch t {
	case PropertyApartment, PropertyHouse, PropertyTownhouse,
		PropertyStudentResidence, PropertyCommercial:
		return true
	}
	return false
}

// UnitType classifies a rentable unit.
type UnitType string

const (
	UnitStudio   UnitType = "studio"
	UnitOneBed   UnitType = "1bed"
	UnitTwoBed   UnitType = "2bed"
	UnitThreeBed UnitType = "3bed"
	UnitFourBed  UnitType = "4bed"
	UnitShared   UnitType = "shared"
)

// Address is a postal address.
type Address struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Unit is a rentable unit embedded in a property.
// IsOccupied and TenantID are set together and cleared together.
type Unit struct {
	UnitNumber string   `json:"unitNumber" validate:"required"`
	Type       UnitType `json:"type"`
	Floor      int      `json:"floor"`
	IsOccupied bool     `json:"isOccupied"`
	TenantID   string   `json:"tenantId,omitempty"`
}

// Property is a building with an ordered list of embedded units.
type Property struct {
	ID         string       `json:"id"`
	Name       string       `json:"name" validate:"required"`
	Address    Address      `json:"address"`
	Type       PropertyType `json:"type" validate:"required,oneof=apartment house townhouse student_residence commercial"`
	TotalUnits int          `json:"totalUnits" validate:"gte=0"`
	Units      []Unit       `json:"units"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// GenerateUnits fills in TotalUnits studio units when none were supplied.
// Unit numbers follow the A001 convention, ten units per floor.
func (p *Property) GenerateUnits() {
	if len(p.Units) > 0 || p.TotalUnits <= 0 {
		return
	}
	p.Units = make([]Unit, 0, p.TotalUnits)
	for i := 0; i < p.TotalUnits; i++ {
		p.Units = append(p.Units, Unit{
			UnitNumber: fmt.Sprintf("A%03d", i+1),
			Type:       UnitStudio,
			Floor:      i/10 + 1,
		})
	}
}

// FindUnit returns a pointer to the unit with the given number, or nil.
func (p *Property) FindUnit(unitNumber string) *Unit {
	for i := range p.Units {
		if p.Units[i].UnitNumber == unitNumber {
			return &p.Units[i]
		}
	}
	return nil
}
