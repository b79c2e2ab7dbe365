package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"foodorder/internal/models"
	"foodorder/internal/repositories"

	"go.uber.org/zap"
)

// MenuCache is a string key/value cache with expiry.
type MenuCache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	GenerateKey(operation, key string) string
}

// MenuService reads the menu collection.
type MenuService struct {
	repo   repositories.MenuRepository
	cache  MenuCache // may be nil
	ttl    time.Duration
	logger *zap.SugaredLogger
}

// NewMenuService creates a new MenuService. cache may be nil.
func NewMenuService(repo repositories.MenuRepository, cache MenuCache, ttl time.Duration, logger *zap.SugaredLogger) *MenuService {
	return &MenuService{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// ListMenu returns every menu document as stored.
func (s *MenuService) ListMenu(ctx context.Context) ([]models.MenuItem, error) {
	if items, ok := s.fromCache(ctx); ok {
		return items, nil
	}

	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu: %w", err)
	}
	if items == nil {
		items = []models.MenuItem{}
	}

	s.toCache(ctx, items)
	return items, nil
}

// SeedMenu stores items when the menu is empty. It reports how many were added.
func (s *MenuService) SeedMenu(ctx context.Context, items []models.MenuItem) (int, error) {
	existing, err := s.repo.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read menu before seeding: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for i := range items {
		if err := s.repo.Create(ctx, &items[i]); err != nil {
			return i, fmt.Errorf("failed to seed menu item: %w", err)
		}
	}
	return len(items), nil
}

func (s *MenuService) cacheKey() string {
	return s.cache.GenerateKey("menu", "all")
}

func (s *MenuService) fromCache(ctx context.Context) ([]models.MenuItem, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, s.cacheKey())
	if err != nil {
		s.logger.Warnw("menu cache read failed", "error", err)
		return nil, false
	}
	if raw == "" {
		return nil, false
	}
	var items []models.MenuItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.logger.Warnw("menu cache entry is corrupt", "error", err)
		return nil, false
	}
	return items, true
}

func (s *MenuService) toCache(ctx context.Context, items []models.MenuItem) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		s.logger.Warnw("failed to encode menu for cache", "error", err)
		return
	}
	if err := s.cache.Set(ctx, s.cacheKey(), string(raw), s.ttl); err != nil {
		s.logger.Warnw("menu cache write failed", "error", err)
	}
}
