// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

// Package store persists PropKeep entities as JSON documents in an
// embedded badger key-value store.
//
// Key layout:
//
//	user:<id>            -> User document
//	user_email:<email>   -> user id (unique-email index)
//	property:<id>        -> Property document
//	company:<id>         -> Company document
//	ticket:<id>          -> Ticket document
//
// Index keys are maintained in the same badger transaction as the primary
// document, so single-document writes are atomic. Nothing spans entities:
// a ticket write and a property write are independent transactions.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/propkeep/propkeep/internal/config"
	"github.com/propkeep/propkeep/internal/models"
)

const (
	userPrefix      = "user:"
	userEmailPrefix = "user_email:"
	propertyPrefix  = "property:"
	companyPrefix   = "company:"
	ticketPrefix    = "ticket:"
)

// Store wraps a badger database holding all PropKeep documents.
type Store struct {
	db         *badger.DB
	logger     zerolog.Logger
	gcInterval time.Duration
}

// Open opens (or creates) the store at the configured path.
func Open(cfg config.DatabaseConfig, logger zerolog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(cfg.Path).
		WithLogger(nil).
		WithInMemory(cfg.InMemory)
	if cfg.InMemory {
		opts = opts.WithDir("").WithValueDir("")
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger at %s: %w", cfg.Path, err)
	}

	gcInterval := cfg.GCInterval
	if gcInterval <= 0 {
		gcInterval = 10 * time.Minute
	}

	return &Store{
		db:         db,
		logger:     logger,
		gcInterval: gcInterval,
	}, nil
}

// Close flushes and closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Serve runs badger value-log garbage collection on a ticker until the
// context is cancelled. Implements suture.Service.
func (s *Store) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// ErrNoRewrite just means there was nothing to collect.
			if err := s.db.RunValueLogGC(0.5); err != nil && !errors.Is(err, badger.ErrNoRewrite) {
				s.logger.Warn().Err(err).Msg("badger value log GC failed")
			}
		}
	}
}

func (s *Store) String() string { return "store-gc" }

// put marshals a document and writes it under key.
func put(txn *badger.Txn, key string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshalling %s: %w", key, err)
	}
	return txn.Set([]byte(key), data)
}

// get reads and unmarshals the document at key into out.
// Returns badger.ErrKeyNotFound unchanged when absent.
func get(txn *badger.Txn, key string, out any) error {
	item, err := txn.Get([]byte(key))
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}

// scan iterates all documents under prefix, unmarshalling each into a T
// and appending to the result.
func scan[T any](db *badger.DB, prefix string) ([]T, error) {
	var results []T
	err := db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.ValidForPrefix([]byte(prefix)); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var doc T
				if err := json.Unmarshal(val, &doc); err != nil {
					return err
				}
				results = append(results, doc)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// notFound translates badger's sentinel into the domain taxonomy.
func notFound(err error, entity, id string) error {
	if errors.Is(err, badger.ErrKeyNotFound) {
		return models.NewNotFoundError(entity, id)
	}
	return err
}
