package repositories

import (
	"context"
	"sync"
	"time"

	"reelstore/internal/models"
)

// OrderStore holds pending orders between creation and payment verification.
// Consume is an atomic get-and-delete: two verifications racing on the same
// order id see exactly one success, which is what prevents double redemption.
type OrderStore interface {
	Put(ctx context.Context, order models.PendingOrder) error
	Consume(ctx context.Context, orderID string) (models.PendingOrder, error)
	Sweep(ctx context.Context, now time.Time) (int, error)
}

// MemoryOrderRepo is the single-instance order store: a mutex-guarded map
// with a periodic sweep driven from cmd.
type MemoryOrderRepo struct {
	mu     sync.Mutex
	orders map[string]models.PendingOrder
	ttl    time.Duration
}

func NewMemoryOrderRepo(ttl time.Duration) *MemoryOrderRepo {
	return &MemoryOrderRepo{
		orders: make(map[string]models.PendingOrder),
		ttl:    ttl,
	}
}

func (r *MemoryOrderRepo) Put(_ context.Context, order models.PendingOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.OrderID] = order
	return nil
}

// Consume removes and returns the order. Entries past the expiry window are
// rejected even if the sweep has not collected them yet.
func (r *MemoryOrderRepo) Consume(_ context.Context, orderID string) (models.PendingOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return models.PendingOrder{}, models.ErrOrderNotFound
	}
	delete(r.orders, orderID)
	if time.Since(order.CreatedAt) > r.ttl {
		return models.PendingOrder{}, models.ErrOrderNotFound
	}
	return order, nil
}

// Sweep drops entries older than the expiry window and reports how many it
// removed. Lazy cleanup only; Consume enforces expiry on its own.
func (r *MemoryOrderRepo) Sweep(_ context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, order := range r.orders {
		if now.Sub(order.CreatedAt) > r.ttl {
			delete(r.orders, id)
			removed++
		}
	}
	return removed, nil
}

// Len reports the number of pending orders.
func (r *MemoryOrderRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}
