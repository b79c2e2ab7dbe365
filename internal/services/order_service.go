package services

import (
	"context"
	"fmt"
	"time"

	"foodorder/internal/metrics"
	"foodorder/internal/models"
	"foodorder/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// EventPublisher delivers order events to interested consumers.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event models.OrderEvent) error
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo      repositories.OrderRepository
	publisher      EventPublisher // may be nil
	deliveryOffset time.Duration
	validate       *validator.Validate
	now            func() time.Time
	logger         *zap.SugaredLogger
}

// NewOrderService creates a new OrderService. publisher may be nil, in which
// case no order events are sent.
func NewOrderService(orderRepo repositories.OrderRepository, publisher EventPublisher, deliveryOffset time.Duration, logger *zap.SugaredLogger) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		publisher:      publisher,
		deliveryOffset: deliveryOffset,
		validate:       validator.New(),
		now:            time.Now,
		logger:         logger,
	}
}

// WithClock replaces the wall clock used for expected delivery times.
func (s *OrderService) WithClock(now func() time.Time) *OrderService {
	s.now = now
	return s
}

// CreateOrder validates and stores a new order for callerID and returns its ID.
func (s *OrderService) CreateOrder(ctx context.Context, callerID string, dishes []models.DishInput) (string, error) {
	if err := s.validate.Var(dishes, "required,min=1,max=10"); err != nil {
		return "", &ValidationError{Message: MsgInvalidDishes, Err: err}
	}

	cleaned := make([]models.Dish, 0, len(dishes))
	for _, d := range dishes {
		cleaned = append(cleaned, d.Normalize())
	}

	order := &models.Order{
		UserID:               callerID,
		Dishes:               cleaned,
		ExpectedDeliveryTime: s.now().Add(s.deliveryOffset),
		Status:               models.StatusProcessing,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return "", fmt.Errorf("failed to create order in repository: %w", err)
	}
	metrics.RecordOrderCreated(len(cleaned))
	s.logger.Infow("order created", "order_id", order.ID, "user_id", callerID, "dishes", len(cleaned))

	s.publish(ctx, models.OrderEvent{
		Type:    models.EventOrderCreated,
		OrderID: order.ID,
		UserID:  callerID,
		Status:  order.Status,
		Dishes:  len(cleaned),
	})
	return order.ID, nil
}

// ListOrders returns the caller's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, callerID string) ([]models.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ConfirmOrder marks the order as received. It neither checks who owns the
// order nor what status it is in; confirming twice is a no-op.
func (s *OrderService) ConfirmOrder(ctx context.Context, orderID string) (models.OrderStatus, error) {
	if err := s.orderRepo.UpdateStatus(ctx, orderID, models.StatusReceived); err != nil {
		return "", fmt.Errorf("failed to confirm order %s: %w", orderID, err)
	}
	metrics.RecordOrderConfirmed()

	s.publish(ctx, models.OrderEvent{
		Type:    models.EventOrderConfirmed,
		OrderID: orderID,
		Status:  models.StatusReceived,
	})
	return models.StatusReceived, nil
}

// publish sends an event and only logs failures; the order is already stored.
func (s *OrderService) publish(ctx context.Context, event models.OrderEvent) {
	if s.publisher == nil {
		return
	}
	event.Timestamp = s.now().UTC()
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		s.logger.Warnw("failed to publish order event", "type", event.Type, "order_id", event.OrderID, "error", err)
	}
}
