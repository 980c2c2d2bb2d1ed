package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"policyAdvisor/domain"

	"github.com/redis/go-redis/v9"
)

const (
	cartKeyPrefix      = "cart:customer:"
	cartLastUpdatedKey = "cart:last_updated"
)

// CartRepository keeps carts in redis: one JSON value per customer plus a
// sorted set on last-updated time so the abandoned-cart sweep is a single
// range query instead of a full key scan.
type CartRepository struct {
	client *redis.Client
}

func NewCartRepository(client *redis.Client) *CartRepository {
	return &CartRepository{
		client: client,
	}
}

func cartKey(customerID uint) string {
	return cartKeyPrefix + strconv.FormatUint(uint64(customerID), 10)
}

func (r *CartRepository) Get(ctx context.Context, customerID uint) (*domain.Cart, error) {
	val, err := r.client.Get(ctx, cartKey(customerID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart from Redis: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal([]byte(val), &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}

	return &cart, nil
}

func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	if err := r.client.Set(ctx, cartKey(cart.CustomerID), raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to store cart in Redis: %w", err)
	}

	err = r.client.ZAdd(ctx, cartLastUpdatedKey, redis.Z{
		Score:  float64(cart.LastUpdated.Unix()),
		Member: strconv.FormatUint(uint64(cart.CustomerID), 10),
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to index cart last-updated: %w", err)
	}

	return nil
}

func (r *CartRepository) Delete(ctx context.Context, customerID uint) error {
	if err := r.client.Del(ctx, cartKey(customerID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	member := strconv.FormatUint(uint64(customerID), 10)
	if err := r.client.ZRem(ctx, cartLastUpdatedKey, member).Err(); err != nil {
		return fmt.Errorf("failed to remove cart from last-updated index: %w", err)
	}

	return nil
}

// FindIdleBefore lists customers whose cart has not been touched since the
// cutoff.
func (r *CartRepository) FindIdleBefore(ctx context.Context, cutoff time.Time) ([]uint, error) {
	members, err := r.client.ZRangeByScore(ctx, cartLastUpdatedKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(cutoff.Unix(), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to range idle carts: %w", err)
	}

	ids := make([]uint, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseUint(m, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}

	return ids, nil
}
