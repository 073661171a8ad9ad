package repository

import (
	"context"
	"testing"
	"time"

	"aaamo-store/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisCartRepo(t *testing.T, ttl time.Duration) (CartRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisCartRepository(rdb, ttl), mr
}

func TestRedisCartRepository_RoundTrip(t *testing.T) {
	repo, mr := newRedisCartRepo(t, 2*time.Hour)
	ctx := context.Background()

	cart := &domain.Cart{}
	cart.Add(domain.Product{ID: "prod_001", Name: "جراب", Price: 250, ImageURLs: []string{"https://example.com/a.jpg"}}, 2)
	cart.Add(domain.Product{ID: "prod_003", Price: 450}, 1)

	if err := repo.Save(ctx, "abc", cart); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if ttl := mr.TTL("cart:abc"); ttl != 2*time.Hour {
		t.Errorf("expected ttl 2h, got %v", ttl)
	}

	stored, err := repo.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(stored.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(stored.Items))
	}
	if stored.Items[0].ID != "prod_001" || stored.Items[0].Quantity != 2 {
		t.Errorf("unexpected first line %+v", stored.Items[0])
	}
	if stored.Subtotal() != 950 {
		t.Errorf("expected subtotal 950, got %v", stored.Subtotal())
	}

	if err := repo.Delete(ctx, "abc"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if mr.Exists("cart:abc") {
		t.Error("expected key to be removed")
	}
}

func TestRedisCartRepository_UnknownCartIsEmpty(t *testing.T) {
	repo, _ := newRedisCartRepo(t, time.Hour)

	cart, err := repo.Get(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if cart.Items == nil || !cart.IsEmpty() {
		t.Errorf("expected an empty cart, got %+v", cart)
	}
}

func TestRedisCartRepository_CorruptEntryResets(t *testing.T) {
	repo, mr := newRedisCartRepo(t, time.Hour)
	if err := mr.Set("cart:broken", "{not json"); err != nil {
		t.Fatalf("seeding redis failed: %v", err)
	}

	cart, err := repo.Get(context.Background(), "broken")
	if err != nil {
		t.Fatalf("expected corrupt entry to be ignored, got %v", err)
	}
	if !cart.IsEmpty() {
		t.Errorf("expected an empty cart, got %+v", cart)
	}
}

func TestRedisCartRepository_Expiry(t *testing.T) {
	repo, mr := newRedisCartRepo(t, time.Minute)
	ctx := context.Background()

	cart := &domain.Cart{}
	cart.Add(domain.Product{ID: "p", Price: 1}, 1)
	if err := repo.Save(ctx, "short", cart); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	expired, err := repo.Get(ctx, "short")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !expired.IsEmpty() {
		t.Error("expected the cart to expire")
	}
}

func TestRedisCartRepository_BackendError(t *testing.T) {
	repo, mr := newRedisCartRepo(t, time.Hour)
	mr.SetError("LOADING")

	if _, err := repo.Get(context.Background(), "x"); err == nil {
		t.Error("expected an error while redis is failing")
	}
}
