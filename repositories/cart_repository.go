package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"catering-shop/models"

	"github.com/redis/go-redis/v9"
)

// CartRepository persists each session's cart as a single serialized record
// under one key. Absence or corruption of the record reads as an empty cart.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{client: client, ttl: ttl}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

func (r *CartRepository) Load(ctx context.Context, sessionID string) (models.Cart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("sessionID is empty")
	}

	raw, err := r.client.Get(ctx, cartKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return models.Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis.Get: %w", err)
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		// A malformed record is recoverable: start over with an empty cart.
		log.Printf("Discarding malformed cart for session %s: %v", sessionID, err)
		return models.Cart{}, nil
	}
	return cart, nil
}

func (r *CartRepository) Save(ctx context.Context, sessionID string, cart models.Cart) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is empty")
	}

	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := r.client.Set(ctx, cartKey(sessionID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis.Set: %w", err)
	}
	return nil
}

func (r *CartRepository) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is empty")
	}

	if err := r.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis.Del: %w", err)
	}
	return nil
}
