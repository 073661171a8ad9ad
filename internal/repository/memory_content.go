package repository

import (
	"context"
	"sort"
	"sync"

	"aaamo-store/internal/domain"
)

func cloneOffer(o *domain.Offer) *domain.Offer {
	c := *o
	if o.DiscountPercentage != nil {
		d := *o.DiscountPercentage
		c.DiscountPercentage = &d
	}
	return &c
}

// InMemoryOfferRepository keeps offers in process memory
type InMemoryOfferRepository struct {
	mu     sync.RWMutex
	offers map[string]*domain.Offer
}

func NewInMemoryOfferRepository(seed []*domain.Offer) *InMemoryOfferRepository {
	r := &InMemoryOfferRepository{offers: make(map[string]*domain.Offer, len(seed))}
	for _, o := range seed {
		r.offers[o.ID] = cloneOffer(o)
	}
	return r
}

func (r *InMemoryOfferRepository) Create(ctx context.Context, offer *domain.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.offers[offer.ID] = cloneOffer(offer)
	return nil
}

func (r *InMemoryOfferRepository) Update(ctx context.Context, offer *domain.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.offers[offer.ID]; !ok {
		return ErrOfferNotFound
	}
	r.offers[offer.ID] = cloneOffer(offer)
	return nil
}

func (r *InMemoryOfferRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.offers[id]; !ok {
		return ErrOfferNotFound
	}
	delete(r.offers, id)
	return nil
}

func (r *InMemoryOfferRepository) FindByID(ctx context.Context, id string) (*domain.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.offers[id]
	if !ok {
		return nil, ErrOfferNotFound
	}
	return cloneOffer(o), nil
}

func (r *InMemoryOfferRepository) List(ctx context.Context) ([]*domain.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Offer, 0, len(r.offers))
	for _, o := range r.offers {
		out = append(out, cloneOffer(o))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EndDate.Equal(out[j].EndDate) {
			return out[i].EndDate.Before(out[j].EndDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// InMemoryMessageRepository keeps contact messages in process memory
type InMemoryMessageRepository struct {
	mu       sync.RWMutex
	messages map[string]*domain.Message
}

func NewInMemoryMessageRepository(seed []*domain.Message) *InMemoryMessageRepository {
	r := &InMemoryMessageRepository{messages: make(map[string]*domain.Message, len(seed))}
	for _, m := range seed {
		mm := *m
		r.messages[m.ID] = &mm
	}
	return r
}

func (r *InMemoryMessageRepository) Create(ctx context.Context, message *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	mm := *message
	r.messages[message.ID] = &mm
	return nil
}

func (r *InMemoryMessageRepository) List(ctx context.Context) ([]*domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Message, 0, len(r.messages))
	for _, m := range r.messages {
		mm := *m
		out = append(out, &mm)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *InMemoryMessageRepository) ToggleRead(ctx context.Context, id string) (*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.messages[id]
	if !ok {
		return nil, ErrMessageNotFound
	}
	m.IsRead = !m.IsRead
	mm := *m
	return &mm, nil
}

func (r *InMemoryMessageRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.messages[id]; !ok {
		return ErrMessageNotFound
	}
	delete(r.messages, id)
	return nil
}

// InMemorySettingsRepository holds the settings singleton
type InMemorySettingsRepository struct {
	mu       sync.RWMutex
	settings *domain.SiteSettings
}

func NewInMemorySettingsRepository(seed *domain.SiteSettings) *InMemorySettingsRepository {
	r := &InMemorySettingsRepository{}
	if seed != nil {
		s := *seed
		r.settings = &s
	}
	return r
}

func (r *InMemorySettingsRepository) Get(ctx context.Context) (*domain.SiteSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.settings == nil {
		return nil, ErrSettingsNotFound
	}
	s := *r.settings
	return &s, nil
}

func (r *InMemorySettingsRepository) Save(ctx context.Context, settings *domain.SiteSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := *settings
	r.settings = &s
	return nil
}
