package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/coffee_shop/internal/models"
	"github.com/Skotchmaster/coffee_shop/internal/repo"
	"github.com/Skotchmaster/coffee_shop/internal/transport"
	"github.com/Skotchmaster/coffee_shop/pkg/logging"
)

// MenuIndex is a full text index over the menu. The database stays the
// source of truth; index failures are logged and never fail a write.
type MenuIndex interface {
	IndexMenuItem(ctx context.Context, item *models.MenuItem) error
	DeleteMenuItem(ctx context.Context, id uint) error
	Search(ctx context.Context, query string, from, size int) (int64, []models.MenuItem, error)
}

type MenuService struct {
	Repo  *repo.GormRepo
	Index MenuIndex
}

// ParseID reads a positive numeric id from a path or query parameter.
func ParseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %q is not a valid id", ErrValidation, s)
	}
	return uint(id), nil
}

func (s *MenuService) GetMenuItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	item, err := s.Repo.GetMenuItem(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMenuNotFound
	}
	return item, err
}

func (s *MenuService) ListMenuItems(ctx context.Context, category string, offset, limit int) (int64, []models.MenuItem, error) {
	return s.Repo.ListMenuItems(ctx, strings.TrimSpace(category), offset, limit)
}

func (s *MenuService) Search(ctx context.Context, query string, offset, limit int) (int64, []models.MenuItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return 0, nil, fmt.Errorf("%w: q is required", ErrValidation)
	}
	if s.Index != nil {
		total, items, err := s.Index.Search(ctx, query, offset, limit)
		if err == nil {
			return total, items, nil
		}
		logging.FromContext(ctx).Warn("menu_index_search_error", "reason", "falling back to database", "error", err)
	}
	return s.Repo.SearchMenuItems(ctx, query, offset, limit)
}

func (s *MenuService) CreateMenuItem(ctx context.Context, req transport.CreateMenuItemRequest) (*models.MenuItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}

	item := &models.MenuItem{
		Name:        name,
		Category:    strings.TrimSpace(req.Category),
		Price:       req.Price,
		Stock:       req.Stock,
		Image:       req.Image,
		Description: req.Description,
	}
	if err := s.Repo.CreateMenuItem(ctx, item); err != nil {
		return nil, err
	}
	s.reindex(ctx, item)
	return item, nil
}

func (s *MenuService) PatchMenuItem(ctx context.Context, req transport.PatchMenuItemRequest, id uint) (*models.MenuItem, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
	}
	if req.Price != nil && req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}

	item, err := s.Repo.PatchMenuItem(ctx, req, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuNotFound
		}
		return nil, err
	}
	s.reindex(ctx, item)
	return item, nil
}

// Restock adds quantity to the current stock.
func (s *MenuService) Restock(ctx context.Context, id uint, quantity int) (*models.MenuItem, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	if err := s.Repo.Restock(ctx, id, quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuNotFound
		}
		return nil, err
	}
	item, err := s.Repo.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}
	s.reindex(ctx, item)
	return item, nil
}

// DeleteMenuItem removes the menu entry. Past order items keep their
// captured name and subtotal.
func (s *MenuService) DeleteMenuItem(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteMenuItem(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMenuNotFound
		}
		return err
	}
	if s.Index != nil {
		if err := s.Index.DeleteMenuItem(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("menu_index_delete_error", "menu_id", id, "error", err)
		}
	}
	return nil
}

func (s *MenuService) reindex(ctx context.Context, item *models.MenuItem) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexMenuItem(ctx, item); err != nil {
		logging.FromContext(ctx).Warn("menu_index_error", "menu_id", item.ID, "error", err)
	}
}
