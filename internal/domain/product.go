package domain

import (
	"time"
)

// LowStockThreshold is the stock level under which a product counts as low on stock
const LowStockThreshold = 10

// MaxProductImages is the maximum number of images a product may carry
const MaxProductImages = 5

// Product represents a product in the catalog
type Product struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	ImageURLs    []string  `json:"imageUrls" db:"image_urls"`
	Price        float64   `json:"price" db:"price"`
	CategorySlug string    `json:"categorySlug" db:"category_slug"`
	Stock        int       `json:"stock" db:"stock"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// IsLowStock reports whether the product is below the low stock threshold
func (p *Product) IsLowStock() bool {
	return p.Stock < LowStockThreshold
}

// Category represents a product category
type Category struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Slug string `json:"slug" db:"slug"`
}
