package domain

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func testProduct(id string, price float64) Product {
	return Product{ID: id, Name: "منتج " + id, Price: price, CategorySlug: "cases", Stock: 10}
}

// Feature: storefront, Property 1: Adding an existing product increments its line
func TestProperty_AddMergesByProductID(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("adding the same product twice keeps one line with summed quantity", prop.ForAll(
		func(first, second int) bool {
			var cart Cart
			p := testProduct("prod_001", 250)

			cart.Add(p, first)
			cart.Add(p, second)

			if len(cart.Items) != 1 {
				t.Logf("FAIL: expected 1 line, got %d", len(cart.Items))
				return false
			}
			return cart.Items[0].Quantity == first+second
		},
		gen.IntRange(1, 50),
		gen.IntRange(1, 50),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Feature: storefront, Property 2: Subtotal and item count aggregate every line
func TestProperty_SubtotalAndItemCount(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("subtotal is the sum of price times quantity", prop.ForAll(
		func(prices []int, qty int) bool {
			var cart Cart
			expectedTotal := 0
			for i, price := range prices {
				cart.Add(testProduct(fmt.Sprintf("prod_%03d", i), float64(price)), qty)
				expectedTotal += price * qty
			}

			if cart.ItemCount() != qty*len(prices) {
				t.Logf("FAIL: item count %d, expected %d", cart.ItemCount(), qty*len(prices))
				return false
			}
			return cart.Subtotal() == float64(expectedTotal)
		},
		gen.SliceOfN(10, gen.IntRange(1, 5000)),
		gen.IntRange(1, 9),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestCart_SetQuantityZeroRemovesLine(t *testing.T) {
	var cart Cart
	cart.Add(testProduct("prod_001", 250), 2)
	cart.Add(testProduct("prod_003", 450), 1)

	cart.SetQuantity("prod_001", 0)

	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line after removal, got %d", len(cart.Items))
	}
	if cart.Items[0].ID != "prod_003" {
		t.Fatalf("unexpected remaining line %q", cart.Items[0].ID)
	}
}

func TestCart_SetQuantityOverwrites(t *testing.T) {
	var cart Cart
	cart.Add(testProduct("prod_001", 250), 2)
	cart.SetQuantity("prod_001", 5)

	if cart.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", cart.Items[0].Quantity)
	}

	// unknown product is a no-op
	cart.SetQuantity("missing", 3)
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart.Items))
	}
}

func TestCart_AddDefaultsToOne(t *testing.T) {
	var cart Cart
	cart.Add(testProduct("prod_001", 250), 0)

	if cart.ItemCount() != 1 {
		t.Fatalf("expected item count 1, got %d", cart.ItemCount())
	}
}

func TestCart_RemoveAndClear(t *testing.T) {
	var cart Cart
	cart.Add(testProduct("prod_001", 250), 1)
	cart.Add(testProduct("prod_002", 1200), 1)

	cart.Remove("prod_001")
	if len(cart.Items) != 1 || cart.Items[0].ID != "prod_002" {
		t.Fatalf("unexpected items after remove: %+v", cart.Items)
	}

	cart.Clear()
	if !cart.IsEmpty() {
		t.Fatal("expected empty cart after clear")
	}
	if cart.Subtotal() != 0 {
		t.Fatalf("expected zero subtotal, got %v", cart.Subtotal())
	}
}
