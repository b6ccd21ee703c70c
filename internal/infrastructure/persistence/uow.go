package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/shelterhq/backend/internal/domain/shared"
)

type txContextKey struct{}

// GormUnitOfWork implements shared.UnitOfWork on top of a GORM transaction.
// The transaction handle travels in the context: repositories resolve their
// session with dbFromContext, so every repository call made inside Execute
// joins the same transaction without knowing about it.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Execute runs fn inside a single transaction. Nested calls reuse the
// transaction already carried by the context.
func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx := txFromContext(ctx); tx != nil {
		return fn(ctx)
	}

	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}

var _ shared.UnitOfWork = (*GormUnitOfWork)(nil)

func txFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok {
		return tx
	}
	return nil
}

// dbFromContext returns the transaction carried by the context, or the
// repository's own handle when no transaction is open
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return fallback
}
