package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/nexus/internal/nexus/store"
)

type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the outer DB stays open and the caller commits or rolls back.
func (t *txStore) Close() error { return nil }

// Ping is a no-op, the connection is held by the transaction.
func (t *txStore) Ping(ctx context.Context) error { return nil }

// Tx refuses to nest.
func (t *txStore) Tx(ctx context.Context) (store.Tx, error) { return nil, sql.ErrTxDone }

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Users() store.Users             { return &usersRepo{db: t.tx} }
func (t *txStore) Projects() store.Projects       { return &projectsRepo{db: t.tx} }
func (t *txStore) Assignments() store.Assignments { return &assignmentsRepo{db: t.tx} }
func (t *txStore) Documents() store.Documents     { return &documentsRepo{db: t.tx} }

// ApplyMigrations is a no-op; migrations run before any transaction.
func (t *txStore) ApplyMigrations() error { return nil }
