package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is one of the seven order states
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipping   OrderStatus = "shipping"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusOnHold     OrderStatus = "on_hold"
	OrderStatusRejected   OrderStatus = "rejected"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists the status vocabulary in display order
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipping,
	OrderStatusDelivered,
	OrderStatusOnHold,
	OrderStatusRejected,
	OrderStatusCancelled,
}

var orderStatusLabels = map[OrderStatus]string{
	OrderStatusPending:    "قيد الانتظار",
	OrderStatusProcessing: "قيد التجهيز",
	OrderStatusShipping:   "تم الشحن",
	OrderStatusDelivered:  "تم التوصيل",
	OrderStatusOnHold:     "معلق",
	OrderStatusRejected:   "مرفوض",
	OrderStatusCancelled:  "ملغي",
}

// Label returns the Arabic display label of the status
func (s OrderStatus) Label() string {
	return orderStatusLabels[s]
}

// IsValid reports whether s belongs to the status vocabulary
func (s OrderStatus) IsValid() bool {
	_, ok := orderStatusLabels[s]
	return ok
}

// IsTerminal reports whether no further transition leaves s
func (s OrderStatus) IsTerminal() bool {
	return s.IsValid() && len(validNext[s]) == 0
}

// ParseOrderStatus resolves a status key or its Arabic label
func ParseOrderStatus(v string) (OrderStatus, bool) {
	v = strings.TrimSpace(v)
	if s := OrderStatus(v); s.IsValid() {
		return s, true
	}
	for s, label := range orderStatusLabels {
		if label == v {
			return s, true
		}
	}
	return "", false
}

// validNext is the intended forward pipeline; delivered, rejected and cancelled are terminal
var validNext = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusPending: {
		OrderStatusProcessing: true, OrderStatusOnHold: true,
		OrderStatusCancelled: true, OrderStatusRejected: true,
	},
	OrderStatusProcessing: {
		OrderStatusShipping: true, OrderStatusOnHold: true,
		OrderStatusCancelled: true, OrderStatusRejected: true,
	},
	OrderStatusShipping: {
		OrderStatusDelivered: true, OrderStatusOnHold: true,
	},
	OrderStatusOnHold: {
		OrderStatusPending: true, OrderStatusProcessing: true, OrderStatusShipping: true,
		OrderStatusCancelled: true, OrderStatusRejected: true,
	},
	OrderStatusDelivered: {},
	OrderStatusRejected:  {},
	OrderStatusCancelled: {},
}

// CanTransition reports whether the pipeline allows moving from one status to another.
// Re-applying the current status is always allowed.
func CanTransition(from, to OrderStatus) bool {
	if from == to {
		return from.IsValid()
	}
	return validNext[from][to]
}

// PaymentMethod is one of the accepted payment keys
type PaymentMethod string

const (
	PaymentCOD          PaymentMethod = "cod"
	PaymentVodafoneCash PaymentMethod = "vodafone_cash"
	PaymentFawry        PaymentMethod = "fawry"
)

// PaymentMethods lists the payment vocabulary in display order
var PaymentMethods = []PaymentMethod{PaymentCOD, PaymentVodafoneCash, PaymentFawry}

var paymentMethodLabels = map[PaymentMethod]string{
	PaymentCOD:          "الدفع عند الاستلام",
	PaymentVodafoneCash: "فودافون كاش",
	PaymentFawry:        "فوري",
}

// Label returns the Arabic display label of the payment method
func (m PaymentMethod) Label() string {
	return paymentMethodLabels[m]
}

// IsValid reports whether m is a recognized payment key
func (m PaymentMethod) IsValid() bool {
	_, ok := paymentMethodLabels[m]
	return ok
}

// CustomerDetails holds the shipping contact of an order
type CustomerDetails struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	AlternatePhone string `json:"alternatePhone,omitempty"`
	Address        string `json:"address"`
	Landmark       string `json:"landmark,omitempty"`
	Email          string `json:"email,omitempty"`
	Governorate    string `json:"governorate"`
}

// Order is a placed order. Only Status changes after creation.
type Order struct {
	ID              string          `json:"id" db:"id"`
	UserID          *string         `json:"userId" db:"user_id"`
	CustomerDetails CustomerDetails `json:"customerDetails" db:"customer_details"`
	Items           []CartItem      `json:"items" db:"items"`
	TotalAmount     float64         `json:"totalAmount" db:"total_amount"`
	ShippingCost    float64         `json:"shippingCost" db:"shipping_cost"`
	FinalAmount     float64         `json:"finalAmount" db:"final_amount"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod" db:"payment_method"`
	Status          OrderStatus     `json:"status" db:"status"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
}

// NewOrderID builds an id of the form order_<unix millis>_<5 random chars>
func NewOrderID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:5]
	return fmt.Sprintf("order_%d_%s", now.UnixMilli(), suffix)
}

// NewOrder prices a cart snapshot and returns a pending order.
// The items slice is copied so later cart changes do not leak into the order.
func NewOrder(userID *string, details CustomerDetails, items []CartItem, method PaymentMethod, now time.Time) *Order {
	snapshot := make([]CartItem, len(items))
	copy(snapshot, items)
	for i := range snapshot {
		snapshot[i].ImageURLs = append([]string(nil), items[i].ImageURLs...)
	}

	total := ItemsTotal(snapshot)
	shipping := decimal.NewFromFloat(ShippingCostFor(details.Governorate))

	return &Order{
		ID:              NewOrderID(now),
		UserID:          userID,
		CustomerDetails: details,
		Items:           snapshot,
		TotalAmount:     total.InexactFloat64(),
		ShippingCost:    shipping.InexactFloat64(),
		FinalAmount:     total.Add(shipping).InexactFloat64(),
		PaymentMethod:   method,
		Status:          OrderStatusPending,
		CreatedAt:       now,
	}
}

// ItemsTotal sums price times quantity over the items
func ItemsTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// MatchesVerification reports whether detail identifies the order's customer.
// Email comparison is case-insensitive; phones must match exactly after trimming.
func (o *Order) MatchesVerification(detail string) bool {
	detail = strings.ToLower(strings.TrimSpace(detail))
	if detail == "" {
		return false
	}
	c := o.CustomerDetails
	if c.Email != "" && strings.ToLower(c.Email) == detail {
		return true
	}
	if c.Phone == detail {
		return true
	}
	return c.AlternatePhone != "" && c.AlternatePhone == detail
}
