package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"foodorder/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]models.Order
	seq    map[string]int
	next   int
	last   time.Time
	now    func() time.Time
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return NewMockOrderRepositoryWithClock(time.Now)
}

// NewMockOrderRepositoryWithClock creates a MockOrderRepository that stamps
// CreatedAt from now.
func NewMockOrderRepositoryWithClock(now func() time.Time) *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
		seq:    make(map[string]int),
		now:    now,
	}
}

// Create adds a new order.
func (r *MockOrderRepository) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if _, ok := r.orders[order.ID]; ok {
		return fmt.Errorf("order with ID %s already exists", order.ID)
	}
	if order.CreatedAt.IsZero() {
		ts := r.now()
		// CreatedAt never goes backwards in insertion order.
		if ts.Before(r.last) {
			ts = r.last
		}
		r.last = ts
		order.CreatedAt = ts
	}
	r.orders[order.ID] = cloneOrder(*order)
	r.seq[order.ID] = r.next
	r.next++
	return nil
}

// ListByUser returns the orders of userID, newest first.
func (r *MockOrderRepository) ListByUser(_ context.Context, userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0)
	for _, order := range r.orders {
		if order.UserID == userID {
			orders = append(orders, cloneOrder(order))
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return r.seq[orders[i].ID] > r.seq[orders[j].ID]
	})
	return orders, nil
}

// UpdateStatus updates the status of an order.
func (r *MockOrderRepository) UpdateStatus(_ context.Context, id string, status models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order with ID %s: %w", id, ErrOrderNotFound)
	}
	order.Status = status
	r.orders[id] = order
	return nil
}

func cloneOrder(o models.Order) models.Order {
	o.Dishes = append([]models.Dish(nil), o.Dishes...)
	return o
}
