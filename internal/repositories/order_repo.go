package repositories

import (
	"context"
	"errors"

	"foodorder/internal/models"
)

// ErrOrderNotFound is returned when an operation names an order the store does not hold.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Create stores a new order. The store assigns ID and CreatedAt.
	Create(ctx context.Context, order *models.Order) error
	// ListByUser returns the orders of one user, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error
}
