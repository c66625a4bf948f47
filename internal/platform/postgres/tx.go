package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type txKey struct{}

// Conn returns the transaction carried by ctx, or db scoped to ctx when there is none.
// Repositories call it for every statement so they join a caller's unit of work.
func Conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// InTx reports whether ctx carries an open transaction.
func InTx(ctx context.Context) bool {
	tx, ok := ctx.Value(txKey{}).(*gorm.DB)
	return ok && tx != nil
}

// Transactor runs functions inside a single database transaction.
type Transactor struct {
	db *gorm.DB
}

// NewTransactor binds a transactor to the shared pool.
func NewTransactor(db *gorm.DB) (*Transactor, error) {
	if db == nil {
		return nil, errors.New("postgres transactor requires a database")
	}
	return &Transactor{db: db}, nil
}

// WithinTransaction commits when fn returns nil and rolls back otherwise.
// Nested calls reuse the outer transaction.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if InTx(ctx) {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}
