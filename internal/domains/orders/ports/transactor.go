package ports

import "context"

// Transactor runs fn as one unit of work. Repositories joined through ctx commit or roll back together.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// DirectTransactor runs fn without a surrounding transaction.
var DirectTransactor Transactor = directTransactor{}

type directTransactor struct{}

func (directTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
