package handlers

import (
	"foodorder/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MenuHandler serves the public menu.
type MenuHandler struct {
	service *services.MenuService
	logger  *zap.SugaredLogger
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(service *services.MenuService, logger *zap.SugaredLogger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the menu routes.
func (h *MenuHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/menu", h.HandleGetMenu)
}

// HandleGetMenu returns every menu item.
func (h *MenuHandler) HandleGetMenu(c *fiber.Ctx) error {
	items, err := h.service.ListMenu(c.UserContext())
	if err != nil {
		h.logger.Errorw("error fetching menu", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch menu",
		})
	}
	return c.JSON(items)
}
