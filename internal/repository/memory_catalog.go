package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"aaamo-store/internal/domain"
)

func cloneProduct(p *domain.Product) *domain.Product {
	c := *p
	c.ImageURLs = append([]string(nil), p.ImageURLs...)
	return &c
}

// InMemoryProductRepository keeps products in process memory. Contents reset on restart.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

// NewInMemoryProductRepository creates a product store preloaded with seed
func NewInMemoryProductRepository(seed []*domain.Product) *InMemoryProductRepository {
	r := &InMemoryProductRepository{products: make(map[string]*domain.Product, len(seed))}
	for _, p := range seed {
		r.products[p.ID] = cloneProduct(p)
	}
	return r
}

func (r *InMemoryProductRepository) Create(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *InMemoryProductRepository) Update(ctx context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.products[product.ID]
	if !ok {
		return ErrProductNotFound
	}
	updated := cloneProduct(product)
	updated.CreatedAt = existing.CreatedAt
	r.products[product.ID] = updated
	return nil
}

func (r *InMemoryProductRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *InMemoryProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (r *InMemoryProductRepository) List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		if filter.CategorySlug != "" && p.CategorySlug != filter.CategorySlug {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		out = append(out, cloneProduct(p))
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *InMemoryProductRepository) AdjustStock(ctx context.Context, id string, delta int) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	if p.Stock+delta < 0 {
		return nil, ErrInsufficientStock
	}
	p.Stock += delta
	p.UpdatedAt = time.Now()
	return cloneProduct(p), nil
}

// InMemoryCategoryRepository serves a fixed category list
type InMemoryCategoryRepository struct {
	categories []*domain.Category
}

func NewInMemoryCategoryRepository(seed []*domain.Category) *InMemoryCategoryRepository {
	categories := make([]*domain.Category, 0, len(seed))
	for _, c := range seed {
		cc := *c
		categories = append(categories, &cc)
	}
	return &InMemoryCategoryRepository{categories: categories}
}

func (r *InMemoryCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	out := make([]*domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		cc := *c
		out = append(out, &cc)
	}
	return out, nil
}

func (r *InMemoryCategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			cc := *c
			return &cc, nil
		}
	}
	return nil, ErrCategoryNotFound
}
