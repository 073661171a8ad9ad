package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"aaamo-store/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"

	eventVersion = 1
	producerName = "aaamo-store"
)

// Envelope wraps every published event
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id
	Payload       json.RawMessage `json:"payload"`
}

type OrderCreatedPayload struct {
	OrderID       string               `json:"order_id"`
	Governorate   string               `json:"governorate"`
	ItemCount     int                  `json:"item_count"`
	TotalAmount   float64              `json:"total_amount"`
	ShippingCost  float64              `json:"shipping_cost"`
	FinalAmount   float64              `json:"final_amount"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	Status        domain.OrderStatus   `json:"status"`
}

type OrderStatusChangedPayload struct {
	OrderID string             `json:"order_id"`
	From    domain.OrderStatus `json:"from"`
	To      domain.OrderStatus `json:"to"`
}

// NewEnvelope marshals payload into a fresh envelope
func NewEnvelope(eventType, correlationID string, payload any, now time.Time) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to encode %s payload: %w", eventType, err)
	}
	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  eventVersion,
		OccurredAt:    now.UTC(),
		Producer:      producerName,
		CorrelationID: correlationID,
		Payload:       raw,
	}, nil
}

// OrderCreated builds the envelope announcing a new order
func OrderCreated(order *domain.Order, now time.Time) (Envelope, error) {
	count := 0
	for _, item := range order.Items {
		count += item.Quantity
	}
	return NewEnvelope(EventOrderCreated, order.ID, OrderCreatedPayload{
		OrderID:       order.ID,
		Governorate:   order.CustomerDetails.Governorate,
		ItemCount:     count,
		TotalAmount:   order.TotalAmount,
		ShippingCost:  order.ShippingCost,
		FinalAmount:   order.FinalAmount,
		PaymentMethod: order.PaymentMethod,
		Status:        order.Status,
	}, now)
}

// OrderStatusChanged builds the envelope announcing a status update
func OrderStatusChanged(orderID string, from, to domain.OrderStatus, now time.Time) (Envelope, error) {
	return NewEnvelope(EventOrderStatusChanged, orderID, OrderStatusChangedPayload{
		OrderID: orderID,
		From:    from,
		To:      to,
	}, now)
}

// Publisher delivers envelopes to one sink
type Publisher interface {
	Publish(ctx context.Context, env Envelope) error
}

// MultiPublisher fans an envelope out to every sink and joins their errors
type MultiPublisher []Publisher

func (m MultiPublisher) Publish(ctx context.Context, env Envelope) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, env); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogPublisher records envelopes in the service log; used when no broker is configured
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, env Envelope) error {
	p.logger.Info("Order event",
		zap.String("event_id", env.EventID),
		zap.String("event_type", env.EventType),
		zap.String("correlation_id", env.CorrelationID),
		zap.ByteString("payload", env.Payload),
	)
	return nil
}
