package domain

import (
	"github.com/shopspring/decimal"
)

// CartItem is a product snapshot with a quantity
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal returns price times quantity
func (i CartItem) LineTotal() decimal.Decimal {
	return decimal.NewFromFloat(i.Price).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is an ordered list of cart lines, at most one per product id.
// Stock is not checked here.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Add merges qty of product into the cart. A non-positive qty counts as 1.
func (c *Cart) Add(product Product, qty int) {
	if qty <= 0 {
		qty = 1
	}
	for i := range c.Items {
		if c.Items[i].ID == product.ID {
			c.Items[i].Quantity += qty
			return
		}
	}
	c.Items = append(c.Items, CartItem{Product: product, Quantity: qty})
}

// Remove drops the line of the given product
func (c *Cart) Remove(productID string) {
	out := c.Items[:0]
	for _, item := range c.Items {
		if item.ID != productID {
			out = append(out, item)
		}
	}
	c.Items = out
}

// SetQuantity overwrites a line's quantity; qty <= 0 removes the line
func (c *Cart) SetQuantity(productID string, qty int) {
	if qty <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ID == productID {
			c.Items[i].Quantity = qty
			return
		}
	}
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Items = nil
}

// Subtotal returns the sum of price times quantity
func (c *Cart) Subtotal() float64 {
	return ItemsTotal(c.Items).InexactFloat64()
}

// ItemCount returns the sum of quantities
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
