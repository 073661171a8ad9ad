package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"aaamo-store/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

var productRowColumns = []string{"id", "name", "description", "image_urls", "price", "category_slug", "stock", "created_at", "updated_at"}

var orderRowColumns = []string{"id", "user_id", "customer_details", "items", "total_amount", "shipping_cost", "final_amount", "payment_method", "status", "created_at"}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
		db.Close()
	})
	return db, mock
}

func TestProductRepositoryCreateEncodesImages(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductRepository(db)
	now := time.Now()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO products")).
		WithArgs("prod_1", "جراب", "وصف", []byte(`["https://example.com/a.png"]`), 250.0, "cases", 4, now, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), &domain.Product{
		ID:           "prod_1",
		Name:         "جراب",
		Description:  "وصف",
		ImageURLs:    []string{"https://example.com/a.png"},
		Price:        250,
		CategorySlug: "cases",
		Stock:        4,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
}

func TestProductRepositoryFindByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows(productRowColumns).
		AddRow("prod_1", "جراب", "وصف", []byte(`["a.png","b.png"]`), 250.0, "cases", 4, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1")).WithArgs("prod_1").WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1")).WithArgs("prod_x").
		WillReturnRows(sqlmock.NewRows(productRowColumns))

	product, err := repo.FindByID(context.Background(), "prod_1")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if len(product.ImageURLs) != 2 || product.Price != 250 || product.CategorySlug != "cases" {
		t.Errorf("Unexpected product: %+v", product)
	}

	if _, err := repo.FindByID(context.Background(), "prod_x"); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound, got %v", err)
	}
}

func TestProductRepositoryListBuildsFilters(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE category_slug = $1 AND (name ILIKE $2 OR description ILIKE $2)")).
		WithArgs("cases", "%سيليكون%").
		WillReturnRows(sqlmock.NewRows(productRowColumns))

	products, err := repo.List(context.Background(), ProductFilter{CategorySlug: "cases", Query: " سيليكون "})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if products == nil || len(products) != 0 {
		t.Errorf("Expected an empty non-nil slice, got %v", products)
	}
}

func TestProductRepositoryAdjustStock(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE products")).WithArgs("prod_1", -2).
		WillReturnRows(sqlmock.NewRows(productRowColumns).
			AddRow("prod_1", "جراب", "وصف", []byte(`[]`), 250.0, "cases", 3, now, now))

	product, err := repo.AdjustStock(context.Background(), "prod_1", -2)
	if err != nil {
		t.Fatalf("AdjustStock() error = %v", err)
	}
	if product.Stock != 3 {
		t.Errorf("Expected stock 3, got %d", product.Stock)
	}

	// no row updated but the product exists: stock would go negative
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE products")).WithArgs("prod_1", -10).
		WillReturnRows(sqlmock.NewRows(productRowColumns))
	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1")).WithArgs("prod_1").
		WillReturnRows(sqlmock.NewRows(productRowColumns).
			AddRow("prod_1", "جراب", "وصف", []byte(`[]`), 250.0, "cases", 3, now, now))

	if _, err := repo.AdjustStock(context.Background(), "prod_1", -10); !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("Expected ErrInsufficientStock, got %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE products")).WithArgs("prod_x", -1).
		WillReturnRows(sqlmock.NewRows(productRowColumns))
	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE id = $1")).WithArgs("prod_x").
		WillReturnRows(sqlmock.NewRows(productRowColumns))

	if _, err := repo.AdjustStock(context.Background(), "prod_x", -1); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound, got %v", err)
	}
}

func TestProductRepositoryDeleteMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProductRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = $1")).WithArgs("prod_x").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "prod_x"); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("Expected ErrProductNotFound, got %v", err)
	}
}

func TestOrderRepositoryRoundTripsJSONColumns(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOrderRepository(db)
	now := time.Now()

	details := []byte(`{"name":"أحمد","phone":"01012345678","address":"الهرم","governorate":"الجيزة"}`)
	items := []byte(`[{"id":"prod_1","name":"جراب","price":250,"quantity":2}]`)
	rows := sqlmock.NewRows(orderRowColumns).
		AddRow("order_1", nil, details, items, 500.0, 50.0, 550.0, "cod", "pending", now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE id = $1")).WithArgs("order_1").WillReturnRows(rows)

	order, err := repo.FindByID(context.Background(), "order_1")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if order.UserID != nil {
		t.Errorf("Expected guest order, got user %v", *order.UserID)
	}
	if order.CustomerDetails.Governorate != "الجيزة" || len(order.Items) != 1 || order.Items[0].Quantity != 2 {
		t.Errorf("Unexpected decoded order: %+v", order)
	}
	if order.PaymentMethod != domain.PaymentCOD || order.Status != domain.OrderStatusPending {
		t.Errorf("Unexpected vocabulary values: %s %s", order.PaymentMethod, order.Status)
	}
}

func TestOrderRepositoryListByStatus(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOrderRepository(db)
	status := domain.OrderStatusShipping

	mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE status = $1 ORDER BY created_at DESC")).
		WithArgs(string(status)).
		WillReturnRows(sqlmock.NewRows(orderRowColumns))

	orders, err := repo.List(context.Background(), &status)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("Expected no orders, got %d", len(orders))
	}
}

func TestOrderRepositoryUpdateStatusMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOrderRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE orders SET status = $2 WHERE id = $1")).
		WithArgs("order_x", string(domain.OrderStatusDelivered)).
		WillReturnRows(sqlmock.NewRows(orderRowColumns))

	if _, err := repo.UpdateStatus(context.Background(), "order_x", domain.OrderStatusDelivered); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("Expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepositoryUpdateStatusFromStale(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOrderRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE orders SET status = $3 WHERE id = $1 AND status = $2")).
		WithArgs("order_1", string(domain.OrderStatusShipping), string(domain.OrderStatusDelivered)).
		WillReturnRows(sqlmock.NewRows(orderRowColumns))
	details := []byte(`{"name":"أحمد","phone":"01012345678","address":"الهرم","governorate":"الجيزة"}`)
	mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE id = $1")).WithArgs("order_1").
		WillReturnRows(sqlmock.NewRows(orderRowColumns).
			AddRow("order_1", nil, details, []byte(`[]`), 0.0, 50.0, 50.0, "cod", "cancelled", time.Now()))

	_, err := repo.UpdateStatusFrom(context.Background(), "order_1", domain.OrderStatusShipping, domain.OrderStatusDelivered)
	if !errors.Is(err, ErrStatusChanged) {
		t.Errorf("Expected ErrStatusChanged, got %v", err)
	}
}

func TestOrderRepositoryUpdateStatusFromMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewOrderRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE orders SET status = $3 WHERE id = $1 AND status = $2")).
		WithArgs("order_x", string(domain.OrderStatusPending), string(domain.OrderStatusProcessing)).
		WillReturnRows(sqlmock.NewRows(orderRowColumns))
	mock.ExpectQuery(regexp.QuoteMeta("FROM orders WHERE id = $1")).WithArgs("order_x").
		WillReturnRows(sqlmock.NewRows(orderRowColumns))

	_, err := repo.UpdateStatusFrom(context.Background(), "order_x", domain.OrderStatusPending, domain.OrderStatusProcessing)
	if !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("Expected ErrOrderNotFound, got %v", err)
	}
}

func TestMessageRepositoryToggleReadMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMessageRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE messages SET is_read = NOT is_read WHERE id = $1")).
		WithArgs("msg_x").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "subject", "content", "created_at", "is_read"}))

	if _, err := repo.ToggleRead(context.Background(), "msg_x"); !errors.Is(err, ErrMessageNotFound) {
		t.Errorf("Expected ErrMessageNotFound, got %v", err)
	}
}

func TestSettingsRepository(t *testing.T) {
	db, mock := newMock(t)
	repo := NewSettingsRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM site_settings")).
		WillReturnRows(sqlmock.NewRows([]string{"site_name", "facebook_url", "instagram_url", "whatsapp_number", "phone_number", "email"}))

	if _, err := repo.Get(context.Background()); !errors.Is(err, ErrSettingsNotFound) {
		t.Errorf("Expected ErrSettingsNotFound, got %v", err)
	}

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (id) DO UPDATE")).
		WithArgs("AAAMO", "", "", "", "", "support@aaamo.com").
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Save(context.Background(), &domain.SiteSettings{SiteName: "AAAMO", Email: "support@aaamo.com"}); err != nil {
		t.Errorf("Save() error = %v", err)
	}
}

func TestCategoryRepositoryFindBySlug(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCategoryRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM categories WHERE slug = $1")).WithArgs("cases").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}).AddRow("1", "جرابات", "cases"))
	mock.ExpectQuery(regexp.QuoteMeta("FROM categories WHERE slug = $1")).WithArgs("watches").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}))

	category, err := repo.FindBySlug(context.Background(), "cases")
	if err != nil || category.Name != "جرابات" {
		t.Errorf("Unexpected category %+v, err %v", category, err)
	}
	if _, err := repo.FindBySlug(context.Background(), "watches"); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}
}
