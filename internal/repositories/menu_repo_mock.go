package repositories

import (
	"context"
	"sync"

	"foodorder/internal/models"

	"github.com/google/uuid"
)

// MockMenuRepository is an in-memory implementation of MenuRepository.
// Items come back in insertion order.
type MockMenuRepository struct {
	items []models.MenuItem
	mu    sync.RWMutex
}

// NewMockMenuRepository creates a new instance of MockMenuRepository.
func NewMockMenuRepository() *MockMenuRepository {
	return &MockMenuRepository{}
}

// GetAll returns all menu items.
func (r *MockMenuRepository) GetAll(_ context.Context) ([]models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.MenuItem, len(r.items))
	copy(items, r.items)
	return items, nil
}

// Create adds a new menu item.
func (r *MockMenuRepository) Create(_ context.Context, item *models.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.items = append(r.items, *item)
	return nil
}
