package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"aaamo-store/internal/domain"
	"aaamo-store/internal/repository"
)

var ErrInvalidCartID = errors.New("invalid cart id")

const maxCartIDLength = 64

// CartService manages server-side carts. Stock is not checked until checkout.
type CartService interface {
	Get(ctx context.Context, cartID string) (*domain.Cart, error)
	AddItem(ctx context.Context, cartID, productID string, quantity int) (*domain.Cart, error)
	SetQuantity(ctx context.Context, cartID, productID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, cartID, productID string) (*domain.Cart, error)
	Clear(ctx context.Context, cartID string) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates a new instance of CartService
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func checkCartID(cartID string) error {
	if strings.TrimSpace(cartID) == "" || len(cartID) > maxCartIDLength {
		return ErrInvalidCartID
	}
	return nil
}

func (s *cartService) load(ctx context.Context, cartID string) (*domain.Cart, error) {
	if err := checkCartID(cartID); err != nil {
		return nil, err
	}
	cart, err := s.cartRepo.Get(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return cart, nil
}

func (s *cartService) save(ctx context.Context, cartID string, cart *domain.Cart) (*domain.Cart, error) {
	if err := s.cartRepo.Save(ctx, cartID, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

func (s *cartService) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	return s.load(ctx, cartID)
}

// AddItem snapshots the current catalog product into the cart
func (s *cartService) AddItem(ctx context.Context, cartID, productID string, quantity int) (*domain.Cart, error) {
	cart, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	cart.Add(*product, quantity)
	return s.save(ctx, cartID, cart)
}

func (s *cartService) SetQuantity(ctx context.Context, cartID, productID string, quantity int) (*domain.Cart, error) {
	cart, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	cart.SetQuantity(productID, quantity)
	return s.save(ctx, cartID, cart)
}

func (s *cartService) RemoveItem(ctx context.Context, cartID, productID string) (*domain.Cart, error) {
	cart, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	cart.Remove(productID)
	return s.save(ctx, cartID, cart)
}

func (s *cartService) Clear(ctx context.Context, cartID string) error {
	if err := checkCartID(cartID); err != nil {
		return err
	}
	if err := s.cartRepo.Delete(ctx, cartID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
