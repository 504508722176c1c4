// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

package store

import (
	"context"

	"github.com/dgraph-io/badger/v4"

	"github.com/propkeep/propkeep/internal/models"
)

// CreateCompany stores a new company document.
func (s *Store) CreateCompany(ctx context.Context, company *models.Company) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return put(txn, companyPrefix+company.ID, company)
	})
}

// GetCompany fetches a company by id.
func (s *Store) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var company models.Company
	err := s.db.View(func(txn *badger.Txn) error {
		return get(txn, companyPrefix+id, &company)
	})
	if err != nil {
		return nil, notFound(err, "company", id)
	}
	return &company, nil
}

// ListCompanies returns all companies.
func (s *Store) ListCompanies(ctx context.Context) ([]models.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return scan[models.Company](s.db, companyPrefix)
}

// UpdateCompany rewrites the company document.
func (s *Store) UpdateCompany(ctx context.Context, company *models.Company) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		var existing models.Company
		if err := get(txn, companyPrefix+company.ID, &existing); err != nil {
			return notFound(err, "company", company.ID)
		}
		return put(txn, companyPrefix+company.ID, company)
	})
}

// DeleteCompany removes the company document.
func (s *Store) DeleteCompany(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		var existing models.Company
		if err := get(txn, companyPrefix+id, &existing); err != nil {
			return notFound(err, "company", id)
		}
		return txn.Delete([]byte(companyPrefix + id))
	})
}
