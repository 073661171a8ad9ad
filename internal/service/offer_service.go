package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aaamo-store/internal/domain"
	"aaamo-store/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidOfferDates = errors.New("invalid offer dates")
	ErrInvalidDiscount   = errors.New("invalid discount")
)

// OfferInput carries the editable offer fields
type OfferInput struct {
	Title              string
	Description        string
	ProductID          string
	CategorySlug       string
	DiscountPercentage *float64
	ImageURL           string
	CouponCode         string
	StartDate          time.Time
	EndDate            time.Time
	IsActive           bool
}

func (in OfferInput) validate() error {
	if strings.TrimSpace(in.Title) == "" || in.StartDate.IsZero() || in.EndDate.IsZero() {
		return ErrIncompleteData
	}
	if !in.StartDate.Before(in.EndDate) {
		return ErrInvalidOfferDates
	}
	if d := in.DiscountPercentage; d != nil && (*d < 0 || *d > 100) {
		return ErrInvalidDiscount
	}
	return nil
}

func (in OfferInput) apply(offer *domain.Offer) {
	offer.Title = strings.TrimSpace(in.Title)
	offer.Description = strings.TrimSpace(in.Description)
	offer.ProductID = strings.TrimSpace(in.ProductID)
	offer.CategorySlug = strings.TrimSpace(in.CategorySlug)
	offer.DiscountPercentage = nil
	if in.DiscountPercentage != nil {
		d := *in.DiscountPercentage
		offer.DiscountPercentage = &d
	}
	offer.ImageURL = strings.TrimSpace(in.ImageURL)
	offer.CouponCode = strings.TrimSpace(in.CouponCode)
	offer.StartDate = in.StartDate
	offer.EndDate = in.EndDate
	offer.IsActive = in.IsActive
}

// OfferService defines the interface for promotional offers
type OfferService interface {
	ListLive(ctx context.Context) ([]*domain.Offer, error)
	ListAll(ctx context.Context) ([]*domain.Offer, error)
	Get(ctx context.Context, id string) (*domain.Offer, error)
	Create(ctx context.Context, input OfferInput) (*domain.Offer, error)
	Update(ctx context.Context, id string, input OfferInput) (*domain.Offer, error)
	Delete(ctx context.Context, id string) error
}

type offerService struct {
	offerRepo repository.OfferRepository
	now       func() time.Time
}

// NewOfferService creates a new instance of OfferService
func NewOfferService(offerRepo repository.OfferRepository, now func() time.Time) OfferService {
	if now == nil {
		now = time.Now
	}
	return &offerService{offerRepo: offerRepo, now: now}
}

// ListLive returns offers currently running
func (s *offerService) ListLive(ctx context.Context) ([]*domain.Offer, error) {
	offers, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	live := make([]*domain.Offer, 0, len(offers))
	for _, o := range offers {
		if o.IsCurrentlyOffered(now) {
			live = append(live, o)
		}
	}
	return live, nil
}

func (s *offerService) ListAll(ctx context.Context) ([]*domain.Offer, error) {
	offers, err := s.offerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	return offers, nil
}

func (s *offerService) Get(ctx context.Context, id string) (*domain.Offer, error) {
	offer, err := s.offerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find offer: %w", err)
	}
	return offer, nil
}

func (s *offerService) Create(ctx context.Context, input OfferInput) (*domain.Offer, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	offer := &domain.Offer{ID: "offer_" + uuid.NewString()[:8]}
	input.apply(offer)

	if err := s.offerRepo.Create(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}
	return offer, nil
}

func (s *offerService) Update(ctx context.Context, id string, input OfferInput) (*domain.Offer, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	offer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	input.apply(offer)

	if err := s.offerRepo.Update(ctx, offer); err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update offer: %w", err)
	}
	return offer, nil
}

func (s *offerService) Delete(ctx context.Context, id string) error {
	if err := s.offerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete offer: %w", err)
	}
	return nil
}
