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

// CreateProperty stores a new property document.
func (s *Store) CreateProperty(ctx context.Context, property *models.Property) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return put(txn, propertyPrefix+property.ID, property)
	})
}

// GetProperty fetches a property by id.
func (s *Store) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var property models.Property
	err := s.db.View(func(txn *badger.Txn) error {
		return get(txn, propertyPrefix+id, &property)
	})
	if err != nil {
		return nil, notFound(err, "property", id)
	}
	return &property, nil
}

// ListProperties returns all properties.
func (s *Store) ListProperties(ctx context.Context) ([]models.Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return scan[models.Property](s.db, propertyPrefix)
}

// UpdateProperty rewrites the property document.
func (s *Store) UpdateProperty(ctx context.Context, property *models.Property) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		var existing models.Property
		if err := get(txn, propertyPrefix+property.ID, &existing); err != nil {
			return notFound(err, "property", property.ID)
		}
		return put(txn, propertyPrefix+property.ID, property)
	})
}

// DeleteProperty removes the property document.
func (s *Store) DeleteProperty(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		var existing models.Property
		if err := get(txn, propertyPrefix+id, &existing); err != nil {
			return notFound(err, "property", id)
		}
		return txn.Delete([]byte(propertyPrefix + id))
	})
}
