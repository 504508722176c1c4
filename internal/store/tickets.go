// PropKeep - Property Maintenance Ticketing and Notifications
// Copyright 2026 The PropKeep Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/propkeep/propkeep

package store

import (
	"context"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"github.com/propkeep/propkeep/internal/models"
)

// CreateTicket stores a new ticket document.
func (s *Store) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return put(txn, ticketPrefix+ticket.ID, ticket)
	})
}

// GetTicket fetches a ticket by id.
func (s *Store) GetTicket(ctx context.Context, id string) (*models.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var ticket models.Ticket
	err := s.db.View(func(txn *badger.Txn) error {
		return get(txn, ticketPrefix+id, &ticket)
	})
	if err != nil {
		return nil, notFound(err, "ticket", id)
	}
	return &ticket, nil
}

// ListTickets returns all tickets, newest first. Callers filter by the
// view predicate; ticket volume is web-CRUD scale so a full scan is fine.
func (s *Store) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tickets, err := scan[models.Ticket](s.db, ticketPrefix)
	if err != nil {
		return nil, err
	}
	sort.Slice(tickets, func(i, j int) bool {
		return tickets[i].CreatedAt.After(tickets[j].CreatedAt)
	})
	return tickets, nil
}

// UpdateTicket rewrites the full ticket document. Concurrent updates to
// the same ticket are last-write-wins; there is no optimistic concurrency
// token.
func (s *Store) UpdateTicket(ctx context.Context, ticket *models.Ticket) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		var existing models.Ticket
		if err := get(txn, ticketPrefix+ticket.ID, &existing); err != nil {
			return notFound(err, "ticket", ticket.ID)
		}
		return put(txn, ticketPrefix+ticket.ID, ticket)
	})
}

// DeleteTicket hard-deletes the ticket document.
func (s *Store) DeleteTicket(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		var existing models.Ticket
		if err := get(txn, ticketPrefix+id, &existing); err != nil {
			return notFound(err, "ticket", id)
		}
		return txn.Delete([]byte(ticketPrefix + id))
	})
}
