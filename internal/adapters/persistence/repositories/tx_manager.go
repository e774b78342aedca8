package repositories

import (
	"context"

	"gorm.io/gorm"
)

// txKey carries the transaction handle through the context so that repository
// calls made inside TxManager.Do join the transaction instead of using the
// shared connection pool.
type txKey struct{}

// GormTxManager implements TxManager over gorm's Transaction helper
type GormTxManager struct {
	db *gorm.DB
}

// NewTxManager creates a new transaction manager
func NewTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

// Do runs fn inside one database transaction. Row locks taken with
// GetByIDForUpdate are released when the transaction commits or rolls back.
func (m *GormTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFromContext returns the transaction handle stashed by TxManager.Do, or
// the repository's own handle when called outside a transaction.
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
