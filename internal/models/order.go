package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// OrderStatus is the coarse lifecycle state of an order.
type OrderStatus string

const (
	StatusProcessing OrderStatus = "processing"
	StatusReceived   OrderStatus = "received"
)

// CanTransitionTo reports whether an order in status s may move to next.
// Confirming an already received order is an idempotent self-assignment.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case StatusProcessing:
		return next == StatusReceived
	case StatusReceived:
		return next == StatusReceived
	}
	return false
}

// Dish is a single line of an order.
type Dish struct {
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Details string          `json:"details"`
}

// DishInput is a dish as sent by the client. Every field is optional.
type DishInput struct {
	Name    *string          `json:"name"`
	Price   *decimal.Decimal `json:"price"`
	Details *string          `json:"details"`
}

// Normalize fills absent fields with their zero values.
func (d DishInput) Normalize() Dish {
	dish := Dish{Price: decimal.Zero}
	if d.Name != nil {
		dish.Name = *d.Name
	}
	if d.Price != nil {
		dish.Price = *d.Price
	}
	if d.Details != nil {
		dish.Details = *d.Details
	}
	return dish
}

// Order represents a customer order as kept in the store.
type Order struct {
	ID                   string      `gorm:"primaryKey;type:varchar(36)"`
	UserID               string      `gorm:"index;not null;type:varchar(128)"`
	Dishes               []Dish      `gorm:"serializer:json;not null"`
	CreatedAt            time.Time   `gorm:"index"` // set by the store on insert
	ExpectedDeliveryTime time.Time
	Status               OrderStatus `gorm:"type:varchar(20);not null"`
}

// OrderView is the API representation of an Order.
type OrderView struct {
	ID                   string      `json:"id"`
	UserID               string      `json:"userId"`
	Dishes               []Dish      `json:"dishes"`
	Status               OrderStatus `json:"status"`
	CreatedAt            Millis      `json:"createdAt"`
	ExpectedDeliveryTime Millis      `json:"expectedDeliveryTime"`
}

// NewOrderView projects an order for the API.
func NewOrderView(o Order) OrderView {
	dishes := o.Dishes
	if dishes == nil {
		dishes = []Dish{}
	}
	return OrderView{
		ID:                   o.ID,
		UserID:               o.UserID,
		Dishes:               dishes,
		Status:               o.Status,
		CreatedAt:            MillisOf(o.CreatedAt),
		ExpectedDeliveryTime: MillisOf(o.ExpectedDeliveryTime),
	}
}

// OrderEvent is published on the message bus whenever an order changes.
type OrderEvent struct {
	Type      string      `json:"type"`
	OrderID   string      `json:"orderId"`
	UserID    string      `json:"userId,omitempty"`
	Status    OrderStatus `json:"status"`
	Dishes    int         `json:"dishes,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

const (
	EventOrderCreated   = "order.created"
	EventOrderConfirmed = "order.confirmed"
)
