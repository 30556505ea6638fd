// Package store wraps db.Querier with transaction support and groups the
// multi-step write operations that must execute atomically.
//
// Single-query reads (GetSingleValue, ListRecentErrorLogs) should be called
// directly on db.Querier; there is no value in proxying them through this
// package.
//
// Dependency rule: store imports db only.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nyashahama/mandrill-mailer/internal/db"
)

// Store holds a *sql.DB for starting transactions and a *db.Queries for
// executing queries outside of transactions.
type Store struct {
	// pool is the raw connection pool, used only to begin transactions.
	pool *sql.DB

	q *db.Queries
}

// New creates a Store from a live connection pool. The pool must already be
// open and verified (e.g. via db.PingContext) before calling New.
func New(pool *sql.DB, q *db.Queries) *Store {
	return &Store{pool: pool, q: q}
}

// Q exposes the underlying Querier for single-query reads.
func (s *Store) Q() db.Querier {
	return s.q
}

// txQuerier receives a transactional Querier. Returning a non-nil error
// causes withTx to roll back.
type txQuerier func(ctx context.Context, q db.Querier) error

// withTx begins a transaction, passes a Querier scoped to that transaction to
// fn, and commits on success or rolls back on any error (including panics).
func (s *Store) withTx(ctx context.Context, fn txQuerier) error {
	tx, err := s.pool.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin transaction: %w", err)
	}

	// Roll back on panic so the connection is never left in a broken state.
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	// WithTx re-uses prepared statements scoped to the transaction.
	if err := fn(ctx, s.q.WithTx(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("store: fn error: %w; rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit transaction: %w", err)
	}
	return nil
}
