package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aaamo-store/internal/domain"
	"aaamo-store/internal/events"
	"aaamo-store/internal/repository"

	"go.uber.org/zap"
)

var (
	ErrUnsupportedRegion     = errors.New("unsupported shipping region")
	ErrInvalidPaymentMethod  = errors.New("invalid payment method")
	ErrInvalidPhone          = errors.New("invalid phone")
	ErrInvalidAlternatePhone = errors.New("invalid alternate phone")
	ErrInvalidStatus         = errors.New("invalid status")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrVerificationMismatch  = errors.New("verification mismatch")
)

// CheckoutInput is a customer's checkout form. Items carry product ids and
// quantities; name and price are re-read from the catalog.
type CheckoutInput struct {
	UserID                 *string
	CustomerName           string
	CustomerPhone          string
	CustomerAlternatePhone string
	CustomerAddress        string
	CustomerLandmark       string
	CustomerEmail          string
	CustomerGovernorate    string
	PaymentMethod          string
	CartItems              []domain.CartItem
}

// OrderService defines the interface for checkout and order administration
type OrderService interface {
	Checkout(ctx context.Context, input CheckoutInput) (*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status string) (*domain.Order, error)
	List(ctx context.Context, status *domain.OrderStatus) ([]*domain.Order, error)
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	Track(ctx context.Context, orderID, verification string) (*domain.Order, error)
}

type orderService struct {
	productRepo        repository.ProductRepository
	orderRepo          repository.OrderRepository
	publisher          events.Publisher
	enforceTransitions bool
	now                func() time.Time
	logger             *zap.Logger
}

// OrderServiceOption customizes an order service
type OrderServiceOption func(*orderService)

// WithEnforcedTransitions rejects status updates outside the workflow graph
func WithEnforcedTransitions(enforce bool) OrderServiceOption {
	return func(s *orderService) { s.enforceTransitions = enforce }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) OrderServiceOption {
	return func(s *orderService) { s.now = now }
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	publisher events.Publisher,
	logger *zap.Logger,
	opts ...OrderServiceOption,
) OrderService {
	s := &orderService{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		publisher:   publisher,
		now:         time.Now,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// validateCheckout applies the form rules in order and returns the first failure
func validateCheckout(in *CheckoutInput) (domain.PaymentMethod, error) {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	in.CustomerAlternatePhone = strings.TrimSpace(in.CustomerAlternatePhone)
	in.CustomerAddress = strings.TrimSpace(in.CustomerAddress)
	in.CustomerLandmark = strings.TrimSpace(in.CustomerLandmark)
	in.CustomerEmail = strings.TrimSpace(in.CustomerEmail)
	in.CustomerGovernorate = strings.TrimSpace(in.CustomerGovernorate)
	in.PaymentMethod = strings.TrimSpace(in.PaymentMethod)

	if in.CustomerName == "" || in.CustomerPhone == "" || in.CustomerAddress == "" ||
		in.CustomerGovernorate == "" || in.PaymentMethod == "" || len(in.CartItems) == 0 {
		return "", ErrIncompleteData
	}
	if _, ok := domain.FindGovernorate(in.CustomerGovernorate); !ok {
		return "", ErrUnsupportedRegion
	}
	method := domain.PaymentMethod(in.PaymentMethod)
	if !method.IsValid() {
		return "", ErrInvalidPaymentMethod
	}
	if !domain.IsValidPhone(in.CustomerPhone) {
		return "", ErrInvalidPhone
	}
	if in.CustomerAlternatePhone != "" && !domain.IsValidPhone(in.CustomerAlternatePhone) {
		return "", ErrInvalidAlternatePhone
	}
	if in.CustomerEmail != "" && !domain.IsValidEmail(in.CustomerEmail) {
		return "", ErrInvalidEmail
	}
	for _, item := range in.CartItems {
		if item.ID == "" || item.Quantity <= 0 {
			return "", ErrIncompleteData
		}
	}
	return method, nil
}

// Checkout validates the form, reserves stock and stores a pending order
func (s *orderService) Checkout(ctx context.Context, input CheckoutInput) (*domain.Order, error) {
	method, err := validateCheckout(&input)
	if err != nil {
		return nil, err
	}

	items, err := s.reserveStock(ctx, input.CartItems)
	if err != nil {
		return nil, err
	}

	order := domain.NewOrder(input.UserID, domain.CustomerDetails{
		Name:           input.CustomerName,
		Phone:          input.CustomerPhone,
		AlternatePhone: input.CustomerAlternatePhone,
		Address:        input.CustomerAddress,
		Landmark:       input.CustomerLandmark,
		Email:          input.CustomerEmail,
		Governorate:    input.CustomerGovernorate,
	}, items, method, s.now())

	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.releaseStock(ctx, items)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("governorate", order.CustomerDetails.Governorate),
		zap.Float64("final_amount", order.FinalAmount),
	)

	env, err := events.OrderCreated(order, s.now())
	s.publish(ctx, env, err)

	return order, nil
}

// reserveStock decrements stock line by line and snapshots the catalog product.
// On failure every earlier decrement is given back.
func (s *orderService) reserveStock(ctx context.Context, lines []domain.CartItem) ([]domain.CartItem, error) {
	reserved := make([]domain.CartItem, 0, len(lines))
	for _, line := range lines {
		product, err := s.productRepo.AdjustStock(ctx, line.ID, -line.Quantity)
		if err != nil {
			s.releaseStock(ctx, reserved)
			if errors.Is(err, repository.ErrProductNotFound) || errors.Is(err, repository.ErrInsufficientStock) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to reserve stock: %w", err)
		}
		reserved = append(reserved, domain.CartItem{Product: *product, Quantity: line.Quantity})
	}
	return reserved, nil
}

func (s *orderService) releaseStock(ctx context.Context, items []domain.CartItem) {
	for _, item := range items {
		if _, err := s.productRepo.AdjustStock(ctx, item.ID, item.Quantity); err != nil {
			s.logger.Error("Failed to release reserved stock",
				zap.String("product_id", item.ID),
				zap.Int("quantity", item.Quantity),
				zap.Error(err),
			)
		}
	}
}

// publish is best effort: a sink failure is logged and never fails the request
func (s *orderService) publish(ctx context.Context, env events.Envelope, buildErr error) {
	if buildErr != nil {
		s.logger.Error("Failed to build order event", zap.Error(buildErr))
		return
	}
	if err := s.publisher.Publish(ctx, env); err != nil {
		s.logger.Warn("Failed to publish order event",
			zap.String("event_type", env.EventType),
			zap.String("order_id", env.CorrelationID),
			zap.Error(err),
		)
	}
}

// UpdateStatus overwrites an order's status. The value may be a status key or its Arabic label.
func (s *orderService) UpdateStatus(ctx context.Context, orderID string, status string) (*domain.Order, error) {
	next, ok := domain.ParseOrderStatus(strings.TrimSpace(status))
	if !ok {
		return nil, ErrInvalidStatus
	}

	current, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	var updated *domain.Order
	if s.enforceTransitions {
		if !domain.CanTransition(current.Status, next) {
			return nil, ErrInvalidTransition
		}
		// the checked status must still be the stored one when the write lands
		updated, err = s.orderRepo.UpdateStatusFrom(ctx, orderID, current.Status, next)
		if errors.Is(err, repository.ErrStatusChanged) {
			return nil, ErrInvalidTransition
		}
	} else {
		updated, err = s.orderRepo.UpdateStatus(ctx, orderID, next)
	}
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", orderID),
		zap.String("from", string(current.Status)),
		zap.String("to", string(next)),
	)

	env, err := events.OrderStatusChanged(orderID, current.Status, next, s.now())
	s.publish(ctx, env, err)

	return updated, nil
}

func (s *orderService) List(ctx context.Context, status *domain.OrderStatus) ([]*domain.Order, error) {
	if status != nil && !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	orders, err := s.orderRepo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, strings.TrimSpace(orderID))
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return order, nil
}

// Track returns the order only when verification matches its email or one of its phones
func (s *orderService) Track(ctx context.Context, orderID, verification string) (*domain.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" || strings.TrimSpace(verification) == "" {
		return nil, ErrIncompleteData
	}

	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.MatchesVerification(verification) {
		return nil, ErrVerificationMismatch
	}
	return order, nil
}
