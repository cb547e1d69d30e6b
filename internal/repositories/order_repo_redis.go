package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"reelstore/internal/models"
)

const orderKeyPrefix = "order:"

// RedisOrderRepo backs the order store with Redis for deployments running
// more than one instance. The expiry window maps onto key TTL and GETDEL
// keeps consume atomic across instances.
type RedisOrderRepo struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisOrderRepo(rdb *redis.Client, ttl time.Duration) *RedisOrderRepo {
	return &RedisOrderRepo{rdb: rdb, ttl: ttl}
}

func (r *RedisOrderRepo) Put(ctx context.Context, order models.PendingOrder) error {
	b, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, orderKeyPrefix+order.OrderID, b, r.ttl).Err()
}

func (r *RedisOrderRepo) Consume(ctx context.Context, orderID string) (models.PendingOrder, error) {
	b, err := r.rdb.GetDel(ctx, orderKeyPrefix+orderID).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.PendingOrder{}, models.ErrOrderNotFound
	}
	if err != nil {
		return models.PendingOrder{}, err
	}
	var order models.PendingOrder
	if err := json.Unmarshal(b, &order); err != nil {
		return models.PendingOrder{}, err
	}
	if time.Since(order.CreatedAt) > r.ttl {
		return models.PendingOrder{}, models.ErrOrderNotFound
	}
	return order, nil
}

// Sweep is a no-op: key TTL already collects expired orders.
func (r *RedisOrderRepo) Sweep(_ context.Context, _ time.Time) (int, error) {
	return 0, nil
}
