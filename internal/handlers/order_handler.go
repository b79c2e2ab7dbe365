package handlers

import (
	"errors"

	"foodorder/internal/middleware"
	"foodorder/internal/models"
	"foodorder/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
	logger  *zap.SugaredLogger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, logger *zap.SugaredLogger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the order routes. Every route sits behind auth;
// createLimit, when non-nil, runs in front of order creation only.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler, createLimit fiber.Handler) {
	orderRoutes := router.Group("/orders", auth)
	if createLimit != nil {
		orderRoutes.Post("/", createLimit, h.HandleCreateOrder)
	} else {
		orderRoutes.Post("/", h.HandleCreateOrder)
	}
	orderRoutes.Get("/", h.HandleListOrders)
	orderRoutes.Patch("/:id/confirm", h.HandleConfirmOrder)
}

// CreateOrderRequest is the body of POST /api/orders. Unknown fields are ignored.
type CreateOrderRequest struct {
	Dishes []models.DishInput `json:"dishes"`
}

// HandleCreateOrder stores a new order for the caller.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Infow("rejecting unparsable order body", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": services.MsgInvalidDishes,
		})
	}

	orderID, err := h.service.CreateOrder(c.UserContext(), middleware.UserID(c), req.Dishes)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": verr.Message,
			})
		}
		h.logger.Errorw("error creating order", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Помилка створення замовлення",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Замовлення створено успішно",
		"orderId": orderID,
	})
}

// HandleListOrders returns the caller's orders, newest first.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListOrders(c.UserContext(), middleware.UserID(c))
	if err != nil {
		h.logger.Errorw("error fetching orders", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch orders",
		})
	}

	views := make([]models.OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, models.NewOrderView(o))
	}
	return c.JSON(views)
}

// HandleConfirmOrder marks an order as received.
func (h *OrderHandler) HandleConfirmOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")
	status, err := h.service.ConfirmOrder(c.UserContext(), orderID)
	if err != nil {
		h.logger.Errorw("error updating order status", "order_id", orderID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to confirm order",
		})
	}
	return c.JSON(fiber.Map{
		"status": status,
	})
}
