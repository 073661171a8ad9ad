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

var ErrInvalidProduct = errors.New("invalid product")

// ProductInput carries the editable product fields
type ProductInput struct {
	Name         string
	Description  string
	ImageURLs    []string
	Price        float64
	CategorySlug string
	Stock        int
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Description) == "" ||
		strings.TrimSpace(in.CategorySlug) == "" {
		return ErrIncompleteData
	}
	if in.Price <= 0 || in.Stock < 0 || len(in.ImageURLs) == 0 || len(in.ImageURLs) > domain.MaxProductImages {
		return ErrInvalidProduct
	}
	return nil
}

// CatalogService defines the interface for products and categories
type CatalogService interface {
	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, input ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	ProductsByCategory(ctx context.Context, slug string) (*domain.Category, []*domain.Product, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *catalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error) {
	filter.CategorySlug = strings.TrimSpace(filter.CategorySlug)
	filter.Query = strings.TrimSpace(filter.Query)

	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return product, nil
}

func (s *catalogService) ensureCategory(ctx context.Context, slug string) error {
	if _, err := s.categoryRepo.FindBySlug(ctx, slug); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return err
		}
		return fmt.Errorf("failed to find category: %w", err)
	}
	return nil
}

func (s *catalogService) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := s.ensureCategory(ctx, input.CategorySlug); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &domain.Product{
		ID:           "prod_" + uuid.NewString()[:8],
		Name:         strings.TrimSpace(input.Name),
		Description:  strings.TrimSpace(input.Description),
		ImageURLs:    append([]string(nil), input.ImageURLs...),
		Price:        input.Price,
		CategorySlug: input.CategorySlug,
		Stock:        input.Stock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id string, input ProductInput) (*domain.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	existing, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureCategory(ctx, input.CategorySlug); err != nil {
		return nil, err
	}

	existing.Name = strings.TrimSpace(input.Name)
	existing.Description = strings.TrimSpace(input.Description)
	existing.ImageURLs = append([]string(nil), input.ImageURLs...)
	existing.Price = input.Price
	existing.CategorySlug = input.CategorySlug
	existing.Stock = input.Stock
	existing.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return existing, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *catalogService) ProductsByCategory(ctx context.Context, slug string) (*domain.Category, []*domain.Product, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("failed to find category: %w", err)
	}

	products, err := s.ListProducts(ctx, repository.ProductFilter{CategorySlug: category.Slug})
	if err != nil {
		return nil, nil, err
	}
	return category, products, nil
}
