package store

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"
)

// Repositories is the postgres-backed Storage implementation. Saves
// keep the whole-collection replace contract by rewriting the table
// inside one transaction.
type Repositories struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewRepositories(db *sql.DB, logger *zap.Logger) *Repositories {
	return &Repositories{DB: db, Log: logger}
}

func (r *Repositories) BeginTx(ctx context.Context) (*sql.Tx, error) {
	r.Log.Debug("BeginTx called")
	return r.DB.BeginTx(ctx, &sql.TxOptions{})
}

func (r *Repositories) rollback(tx *sql.Tx, op string) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		r.Log.Warn(op+": rollback failed", zap.Error(err))
	}
}
