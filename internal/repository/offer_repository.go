package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"aaamo-store/internal/domain"
)

var (
	ErrOfferNotFound = errors.New("offer not found")
)

// OfferRepository defines the interface for offer data access
type OfferRepository interface {
	Create(ctx context.Context, offer *domain.Offer) error
	Update(ctx context.Context, offer *domain.Offer) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Offer, error)
	List(ctx context.Context) ([]*domain.Offer, error)
}

type offerRepository struct {
	db *sql.DB
}

// NewOfferRepository creates a new instance of OfferRepository
func NewOfferRepository(db *sql.DB) OfferRepository {
	return &offerRepository{db: db}
}

const offerColumns = `id, title, description, product_id, category_slug, discount_percentage, image_url, coupon_code, start_date, end_date, is_active`

func scanOffer(row rowScanner) (*domain.Offer, error) {
	offer := &domain.Offer{}
	var discount sql.NullFloat64
	err := row.Scan(
		&offer.ID,
		&offer.Title,
		&offer.Description,
		&offer.ProductID,
		&offer.CategorySlug,
		&discount,
		&offer.ImageURL,
		&offer.CouponCode,
		&offer.StartDate,
		&offer.EndDate,
		&offer.IsActive,
	)
	if err != nil {
		return nil, err
	}
	if discount.Valid {
		offer.DiscountPercentage = &discount.Float64
	}
	return offer, nil
}

func offerArgs(offer *domain.Offer) []any {
	return []any{
		offer.ID,
		offer.Title,
		offer.Description,
		offer.ProductID,
		offer.CategorySlug,
		offer.DiscountPercentage,
		offer.ImageURL,
		offer.CouponCode,
		offer.StartDate,
		offer.EndDate,
		offer.IsActive,
	}
}

// Create inserts a new offer
func (r *offerRepository) Create(ctx context.Context, offer *domain.Offer) error {
	query := `
		INSERT INTO offers (` + offerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	if _, err := r.db.ExecContext(ctx, query, offerArgs(offer)...); err != nil {
		return fmt.Errorf("failed to create offer: %w", err)
	}

	return nil
}

// Update overwrites every field of an existing offer
func (r *offerRepository) Update(ctx context.Context, offer *domain.Offer) error {
	query := `
		UPDATE offers
		SET title = $2, description = $3, product_id = $4, category_slug = $5,
		    discount_percentage = $6, image_url = $7, coupon_code = $8,
		    start_date = $9, end_date = $10, is_active = $11
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, offerArgs(offer)...)
	if err != nil {
		return fmt.Errorf("failed to update offer: %w", err)
	}

	return expectOneRow(result, ErrOfferNotFound)
}

// Delete removes an offer
func (r *offerRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM offers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete offer: %w", err)
	}

	return expectOneRow(result, ErrOfferNotFound)
}

// FindByID retrieves an offer by ID
func (r *offerRepository) FindByID(ctx context.Context, id string) (*domain.Offer, error) {
	offer, err := scanOffer(r.db.QueryRowContext(ctx, `SELECT `+offerColumns+` FROM offers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOfferNotFound
		}
		return nil, fmt.Errorf("failed to find offer by ID: %w", err)
	}

	return offer, nil
}

// List retrieves all offers ordered by end date
func (r *offerRepository) List(ctx context.Context) ([]*domain.Offer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+offerColumns+` FROM offers ORDER BY end_date ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	defer rows.Close()

	offers := []*domain.Offer{}
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		offers = append(offers, offer)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating offers: %w", err)
	}

	return offers, nil
}
