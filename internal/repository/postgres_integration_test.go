package repository

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"aaamo-store/internal/database"
	"aaamo-store/internal/domain"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// testDB is nil when no container could be started; integration tests skip then
var testDB *sql.DB

func setupTestDB() (func(context.Context) error, error) {
	var (
		dbName = "aaamo_test"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:15",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, err
	}

	connStr, err := dbContainer.ConnectionString(context.Background(), "sslmode=disable")
	if err != nil {
		return dbContainer.Terminate, err
	}

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return dbContainer.Terminate, err
	}

	if err := database.RunMigrations(db, "../../migrations", zap.NewNop()); err != nil {
		_ = db.Close()
		return dbContainer.Terminate, err
	}

	testDB = db
	return dbContainer.Terminate, nil
}

func TestMain(m *testing.M) {
	flag.Parse()

	var teardown func(context.Context) error
	if !testing.Short() {
		var err error
		teardown, err = setupTestDB()
		if err != nil {
			log.Printf("postgres integration tests disabled: %v", err)
		}
	}

	code := m.Run()

	if testDB != nil {
		_ = testDB.Close()
	}
	if teardown != nil {
		if err := teardown(context.Background()); err != nil {
			log.Printf("could not teardown postgres container: %v", err)
		}
	}
	os.Exit(code)
}

func requireDB(t *testing.T) {
	t.Helper()
	if testDB == nil {
		t.Skip("postgres container not available")
	}
}

// Feature: storefront, Property 5: Product creation preserves attributes
func TestProperty_ProductCreationPreservesAttributes(t *testing.T) {
	requireDB(t)
	productRepo := NewProductRepository(testDB)
	categoryRepo := NewCategoryRepository(testDB)

	categories, err := categoryRepo.List(context.Background())
	if err != nil || len(categories) == 0 {
		t.Fatalf("expected migrated categories, got %v (%v)", categories, err)
	}

	properties := gopter.NewProperties(nil)

	properties.Property("creating and retrieving a product preserves all attributes", prop.ForAll(
		func(name string, description string, cents int, images []string, stock int, categoryIdx int) bool {
			ctx := context.Background()
			now := time.Now().UTC().Truncate(time.Microsecond)
			product := &domain.Product{
				ID:           "prod_" + uuid.NewString(),
				Name:         name,
				Description:  description,
				ImageURLs:    images,
				Price:        float64(cents) / 100,
				CategorySlug: categories[categoryIdx%len(categories)].Slug,
				Stock:        stock,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := productRepo.Create(ctx, product); err != nil {
				t.Logf("Failed to create product: %v", err)
				return false
			}
			defer func() { _ = productRepo.Delete(ctx, product.ID) }()

			got, err := productRepo.FindByID(ctx, product.ID)
			if err != nil {
				t.Logf("Failed to find product: %v", err)
				return false
			}

			if got.Name != product.Name || got.Description != product.Description ||
				got.Price != product.Price || got.CategorySlug != product.CategorySlug ||
				got.Stock != product.Stock || !got.CreatedAt.Equal(product.CreatedAt) {
				t.Logf("Product mismatch: want %+v, got %+v", product, got)
				return false
			}
			if len(got.ImageURLs) != len(product.ImageURLs) {
				return false
			}
			for i := range images {
				if got.ImageURLs[i] != images[i] {
					return false
				}
			}
			return true
		},
		gen.RegexMatch(`[A-Za-z ]{3,40}`),
		gen.RegexMatch(`[A-Za-z ,.]{0,80}`),
		gen.IntRange(1, 9999999),
		gen.SliceOfN(3, gen.RegexMatch(`https://cdn\.example\.com/[a-z]{4,10}\.jpg`)),
		gen.IntRange(0, 1000),
		gen.IntRange(0, 100),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProductRepository_Integration_AdjustStock(t *testing.T) {
	requireDB(t)
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	product := &domain.Product{
		ID:           "prod_stock_" + uuid.NewString(),
		Name:         "كابل",
		ImageURLs:    []string{"https://cdn.example.com/cable.jpg"},
		Price:        75,
		CategorySlug: "cables-adapters",
		Stock:        3,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := repo.Create(ctx, product); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	t.Cleanup(func() { _ = repo.Delete(ctx, product.ID) })

	updated, err := repo.AdjustStock(ctx, product.ID, -3)
	if err != nil {
		t.Fatalf("AdjustStock failed: %v", err)
	}
	if updated.Stock != 0 {
		t.Errorf("expected stock 0, got %d", updated.Stock)
	}

	if _, err := repo.AdjustStock(ctx, product.ID, -1); !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("expected ErrInsufficientStock, got %v", err)
	}
	if _, err := repo.AdjustStock(ctx, "prod_missing", 1); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}

	listed, err := repo.List(ctx, ProductFilter{CategorySlug: "cables-adapters"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	found := false
	for _, p := range listed {
		found = found || p.ID == product.ID
	}
	if !found {
		t.Error("expected the product in its category listing")
	}
}

func TestOrderRepository_Integration_RoundTrip(t *testing.T) {
	requireDB(t)
	repo := NewOrderRepository(testDB)
	ctx := context.Background()

	userID := "cust-" + uuid.NewString()
	order := domain.NewOrder(&userID, domain.CustomerDetails{
		Name:        "سارة",
		Phone:       "01012345678",
		Address:     "12 شارع التحرير",
		Email:       "sara@example.com",
		Governorate: "القاهرة",
	}, []domain.CartItem{
		{Product: domain.Product{ID: "prod_001", Name: "جراب", Price: 250, ImageURLs: []string{"https://cdn.example.com/a.jpg"}}, Quantity: 2},
	}, domain.PaymentFawry, time.Now().UTC().Truncate(time.Microsecond))

	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.FindByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if got.UserID == nil || *got.UserID != userID {
		t.Errorf("expected user id %s, got %v", userID, got.UserID)
	}
	if got.CustomerDetails != order.CustomerDetails {
		t.Errorf("customer details mismatch: %+v", got.CustomerDetails)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 2 || got.Items[0].Price != 250 {
		t.Errorf("items mismatch: %+v", got.Items)
	}
	if got.FinalAmount != order.FinalAmount || got.Status != domain.OrderStatusPending {
		t.Errorf("unexpected amounts or status: %+v", got)
	}

	updated, err := repo.UpdateStatus(ctx, order.ID, domain.OrderStatusShipping)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.Status != domain.OrderStatusShipping {
		t.Errorf("expected shipping, got %s", updated.Status)
	}

	shipping := domain.OrderStatusShipping
	listed, err := repo.List(ctx, &shipping)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	found := false
	for _, o := range listed {
		if o.Status != shipping {
			t.Errorf("order %s leaked into the shipping filter", o.ID)
		}
		found = found || o.ID == order.ID
	}
	if !found {
		t.Error("expected the order in the shipping listing")
	}
}

func TestContentRepositories_Integration(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	offers := NewOfferRepository(testDB)
	discount := 15.0
	offer := &domain.Offer{
		ID:                 "offer_" + uuid.NewString(),
		Title:              "خصم الصيف",
		DiscountPercentage: &discount,
		StartDate:          now.Add(-time.Hour),
		EndDate:            now.Add(time.Hour),
		IsActive:           true,
	}
	if err := offers.Create(ctx, offer); err != nil {
		t.Fatalf("offer Create failed: %v", err)
	}
	gotOffer, err := offers.FindByID(ctx, offer.ID)
	if err != nil {
		t.Fatalf("offer FindByID failed: %v", err)
	}
	if gotOffer.DiscountPercentage == nil || *gotOffer.DiscountPercentage != discount {
		t.Errorf("discount not preserved: %+v", gotOffer.DiscountPercentage)
	}
	if err := offers.Delete(ctx, offer.ID); err != nil {
		t.Fatalf("offer Delete failed: %v", err)
	}

	messages := NewMessageRepository(testDB)
	msg := &domain.Message{
		ID:        fmt.Sprintf("msg_%d", now.UnixNano()),
		Name:      "زائر",
		Email:     "visitor@example.com",
		Subject:   "سؤال",
		Content:   "هل يتوفر الشحن لأسوان؟",
		CreatedAt: now,
	}
	if err := messages.Create(ctx, msg); err != nil {
		t.Fatalf("message Create failed: %v", err)
	}
	toggled, err := messages.ToggleRead(ctx, msg.ID)
	if err != nil {
		t.Fatalf("ToggleRead failed: %v", err)
	}
	if !toggled.IsRead {
		t.Error("expected message to be read")
	}
	if err := messages.Delete(ctx, msg.ID); err != nil {
		t.Fatalf("message Delete failed: %v", err)
	}

	settings := NewSettingsRepository(testDB)
	want := &domain.SiteSettings{SiteName: "AAAMO", Email: "info@example.com", PhoneNumber: "01000000000"}
	if err := settings.Save(ctx, want); err != nil {
		t.Fatalf("settings Save failed: %v", err)
	}
	got, err := settings.Get(ctx)
	if err != nil {
		t.Fatalf("settings Get failed: %v", err)
	}
	if *got != *want {
		t.Errorf("settings mismatch: want %+v, got %+v", want, got)
	}
}
