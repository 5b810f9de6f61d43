// AngelaMos | 2026
// orders.go

package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rgrams-coder/aicmmlr/internal/core"
)

// OrderStore keeps pending orders in Redis under a TTL so abandoned
// checkouts clean themselves up.
type OrderStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewOrderStore(rdb *redis.Client, ttl time.Duration) *OrderStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &OrderStore{rdb: rdb, ttl: ttl}
}

func orderKey(orderID string) string {
	return core.Key("order", orderID)
}

func (s *OrderStore) Save(ctx context.Context, o PendingOrder) error {
	raw, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}
	if err := s.rdb.Set(ctx, orderKey(o.OrderID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save order %s: %w", o.OrderID, err)
	}
	return nil
}

func (s *OrderStore) Load(ctx context.Context, orderID string) (PendingOrder, error) {
	raw, err := s.rdb.Get(ctx, orderKey(orderID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return PendingOrder{}, fmt.Errorf("load order %s: %w", orderID, ErrUnknownOrder)
	}
	if err != nil {
		return PendingOrder{}, fmt.Errorf("load order %s: %w", orderID, err)
	}

	var o PendingOrder
	if err := json.Unmarshal(raw, &o); err != nil {
		return PendingOrder{}, fmt.Errorf("decode order %s: %w", orderID, err)
	}
	return o, nil
}

func (s *OrderStore) Delete(ctx context.Context, orderID string) error {
	if err := s.rdb.Del(ctx, orderKey(orderID)).Err(); err != nil {
		return fmt.Errorf("delete order %s: %w", orderID, err)
	}
	return nil
}
