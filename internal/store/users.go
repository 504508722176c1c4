// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

package store

import (
	"context"
	"errors"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/propkeep/propkeep/internal/models"
)

func emailKey(email string) string {
	return userEmailPrefix + strings.ToLower(strings.TrimSpace(email))
}

// CreateUser stores a new user. Fails with ConflictError when the email is
// already registered; the email index is written in the same transaction.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(emailKey(user.Email))); err == nil {
			return models.NewConflictError("a user with this email already exists")
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := put(txn, userPrefix+user.ID, user); err != nil {
			return err
		}
		return txn.Set([]byte(emailKey(user.Email)), []byte(user.ID))
	})
}

// GetUser fetches a user by id.
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var user models.User
	err := s.db.View(func(txn *badger.Txn) error {
		return get(txn, userPrefix+id, &user)
	})
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return &user, nil
}

// GetUserByEmail resolves the email index and fetches the user.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var user models.User
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(emailKey(email)))
		if err != nil {
			return err
		}
		var id string
		if err := item.Value(func(val []byte) error {
			id = string(val)
			return nil
		}); err != nil {
			return err
		}
		return get(txn, userPrefix+id, &user)
	})
	if err != nil {
		return nil, notFound(err, "user", email)
	}
	return &user, nil
}

// ListUsers returns all users.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return scan[models.User](s.db, userPrefix)
}

// UpdateUser rewrites the user document. When the email changed, the old
// index entry is replaced in the same transaction.
func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		var existing models.User
		if err := get(txn, userPrefix+user.ID, &existing); err != nil {
			return notFound(err, "user", user.ID)
		}
		if !strings.EqualFold(existing.Email, user.Email) {
			if _, err := txn.Get([]byte(emailKey(user.Email))); err == nil {
				return models.NewConflictError("a user with this email already exists")
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
			if err := txn.Delete([]byte(emailKey(existing.Email))); err != nil {
				return err
			}
			if err := txn.Set([]byte(emailKey(user.Email)), []byte(user.ID)); err != nil {
				return err
			}
		}
		return put(txn, userPrefix+user.ID, user)
	})
}

// DeleteUser removes the user and its email index entry. Tickets that
// reference the user keep their dangling reference.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		var user models.User
		if err := get(txn, userPrefix+id, &user); err != nil {
			return notFound(err, "user", id)
		}
		if err := txn.Delete([]byte(emailKey(user.Email))); err != nil {
			return err
		}
		return txn.Delete([]byte(userPrefix + id))
	})
}

// HasUserWithRole reports whether any user holds the given role.
// Used by first-boot seeding.
func (s *Store) HasUserWithRole(ctx context.Context, role models.Role) (bool, error) {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return false, err
	}
	for i := range users {
		if users[i].Role == role {
			return true, nil
		}
	}
	return false, nil
}
