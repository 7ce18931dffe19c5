package repository

import (
	"context"

	"gorm.io/gorm"

	domainRepo "github.com/concilia-retail/concilia-api/internal/domain/repository"
)

type txKey struct{}

// txFromContext extracts the transaction handle placed by WithinTx, if any
func txFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return nil
}

type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager over the shared gorm handle
func NewTxManager(db *gorm.DB) domainRepo.TxManager {
	return &txManager{db: db}
}

// WithinTx runs fn inside one transaction. The transaction handle travels in
// the context, so every repository call made with that context joins it. A
// nested call joins the outer transaction instead of opening a new one.
func (m *txManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}
