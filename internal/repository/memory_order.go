package repository

import (
	"context"
	"sort"
	"sync"

	"aaamo-store/internal/domain"
)

func cloneOrder(o *domain.Order) *domain.Order {
	c := *o
	if o.UserID != nil {
		userID := *o.UserID
		c.UserID = &userID
	}
	c.Items = make([]domain.CartItem, len(o.Items))
	for i, item := range o.Items {
		item.ImageURLs = append([]string(nil), item.ImageURLs...)
		c.Items[i] = item
	}
	return &c
}

// InMemoryOrderRepository keeps orders in process memory. Contents reset on restart.
type InMemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

func NewInMemoryOrderRepository(seed []*domain.Order) *InMemoryOrderRepository {
	r := &InMemoryOrderRepository{orders: make(map[string]*domain.Order, len(seed))}
	for _, o := range seed {
		r.orders[o.ID] = cloneOrder(o)
	}
	return r
}

func (r *InMemoryOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *InMemoryOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (r *InMemoryOrderRepository) List(ctx context.Context, status *domain.OrderStatus) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if status != nil && o.Status != *status {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *InMemoryOrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	o.Status = status
	return cloneOrder(o), nil
}

func (r *InMemoryOrderRepository) UpdateStatusFrom(ctx context.Context, id string, from, to domain.OrderStatus) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	if o.Status != from {
		return nil, ErrStatusChanged
	}
	o.Status = to
	return cloneOrder(o), nil
}
