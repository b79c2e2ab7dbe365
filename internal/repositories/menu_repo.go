package repositories

import (
	"context"

	"foodorder/internal/models"
)

// MenuRepository defines the interface for menu data access.
type MenuRepository interface {
	GetAll(ctx context.Context) ([]models.MenuItem, error)
	Create(ctx context.Context, item *models.MenuItem) error
}
