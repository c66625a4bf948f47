package memory

import (
	"context"
	"sync"

	"github.com/Apurer/go-storefront-api/internal/domains/orders/ports"
)

var _ ports.Transactor = (*Transactor)(nil)

type heldKey struct{}

// Transactor serializes units of work so in-memory checkouts never interleave.
// It provides isolation only; there is no rollback.
type Transactor struct {
	mu sync.Mutex
}

func NewTransactor() *Transactor {
	return &Transactor{}
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if held, _ := ctx.Value(heldKey{}).(*Transactor); held == t {
		return fn(ctx)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(context.WithValue(ctx, heldKey{}, t))
}
