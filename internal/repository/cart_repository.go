package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"aaamo-store/internal/domain"

	"github.com/redis/go-redis/v9"
)

// cart:{cart_id} -> JSON encoded domain.Cart
const keyCart = "cart:%s"

// CartRepository stores server-side carts by an opaque cart id.
// Get returns an empty cart for unknown ids.
type CartRepository interface {
	Get(ctx context.Context, cartID string) (*domain.Cart, error)
	Save(ctx context.Context, cartID string, cart *domain.Cart) error
	Delete(ctx context.Context, cartID string) error
}

type redisCartRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCartRepository creates a cart store whose entries expire ttl after the last write
func NewRedisCartRepository(rdb *redis.Client, ttl time.Duration) CartRepository {
	return &redisCartRepository{rdb: rdb, ttl: ttl}
}

func (r *redisCartRepository) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	raw, err := r.rdb.Get(ctx, fmt.Sprintf(keyCart, cartID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &domain.Cart{Items: []domain.CartItem{}}, nil
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	cart := &domain.Cart{}
	if err := json.Unmarshal(raw, cart); err != nil {
		// a corrupted entry is reset rather than blocking the shopper
		return &domain.Cart{Items: []domain.CartItem{}}, nil
	}
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	return cart, nil
}

func (r *redisCartRepository) Save(ctx context.Context, cartID string, cart *domain.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := r.rdb.Set(ctx, fmt.Sprintf(keyCart, cartID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (r *redisCartRepository) Delete(ctx context.Context, cartID string) error {
	if err := r.rdb.Del(ctx, fmt.Sprintf(keyCart, cartID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// InMemoryCartRepository keeps carts in process memory without expiry
type InMemoryCartRepository struct {
	mu    sync.RWMutex
	carts map[string]domain.Cart
}

func NewInMemoryCartRepository() *InMemoryCartRepository {
	return &InMemoryCartRepository{carts: make(map[string]domain.Cart)}
}

func cloneCart(c domain.Cart) *domain.Cart {
	items := make([]domain.CartItem, len(c.Items))
	for i, item := range c.Items {
		item.ImageURLs = append([]string(nil), item.ImageURLs...)
		items[i] = item
	}
	return &domain.Cart{Items: items}
}

func (r *InMemoryCartRepository) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneCart(r.carts[cartID]), nil
}

func (r *InMemoryCartRepository) Save(ctx context.Context, cartID string, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[cartID] = *cloneCart(*cart)
	return nil
}

func (r *InMemoryCartRepository) Delete(ctx context.Context, cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, cartID)
	return nil
}
