package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type txContextKey struct{}

// TxStarter begins transactions. Implemented by pgxpool.Pool and pgxmock pools.
type TxStarter interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// TxManager runs units of work inside a single read-write transaction.
type TxManager struct {
	pool TxStarter
}

// NewTxManager creates a TxManager on top of the given pool.
func NewTxManager(pool TxStarter) *TxManager {
	return &TxManager{pool: pool}
}

// WithinTx runs fn with a transaction stored in its context. The transaction is committed
// when fn returns nil and rolled back otherwise. A call nested inside another WithinTx
// joins the outer transaction.
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadWrite})
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if err := fn(context.WithValue(ctx, txContextKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return errors.Join(err, fmt.Errorf("rolling back transaction: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// QueryerFrom returns the transaction carried by ctx, or fallback when there is none.
func QueryerFrom(ctx context.Context, fallback Queryer) Queryer {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return fallback
}

func txFromContext(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txContextKey{}).(pgx.Tx)
	return tx, ok
}

// Transactor runs a unit of work inside one transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
