package domain

import "time"

// Offer is a time-bounded promotion, optionally scoped to one product or one category
type Offer struct {
	ID                 string    `json:"id" db:"id"`
	Title              string    `json:"title" db:"title"`
	Description        string    `json:"description,omitempty" db:"description"`
	ProductID          string    `json:"productId,omitempty" db:"product_id"`
	CategorySlug       string    `json:"categorySlug,omitempty" db:"category_slug"`
	DiscountPercentage *float64  `json:"discountPercentage,omitempty" db:"discount_percentage"`
	ImageURL           string    `json:"imageUrl,omitempty" db:"image_url"`
	CouponCode         string    `json:"couponCode,omitempty" db:"coupon_code"`
	StartDate          time.Time `json:"startDate" db:"start_date"`
	EndDate            time.Time `json:"endDate" db:"end_date"`
	IsActive           bool      `json:"isActive" db:"is_active"`
}

// IsCurrentlyOffered reports whether the offer is active and now lies within [StartDate, EndDate]
func (o *Offer) IsCurrentlyOffered(now time.Time) bool {
	if !o.IsActive {
		return false
	}
	return !now.Before(o.StartDate) && !now.After(o.EndDate)
}
