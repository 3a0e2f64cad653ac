package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dinepos/internal/dto"
	"dinepos/internal/model"
	"dinepos/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// MenuCacheKey holds the cached public menu response. Every catalog write
// drops it so the next menu request rebuilds from the database.
const MenuCacheKey = "menu:active"

// CatalogService manages categories and products. Deactivation is the only
// way to retire either: order lines keep their product references, so a
// referenced product is never hard-deleted.
type CatalogService interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	ListCategories(ctx context.Context) ([]dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	DeactivateCategory(ctx context.Context, id uuid.UUID) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context, filter dto.ProductFilter) ([]dto.ProductResponse, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	DeactivateProduct(ctx context.Context, id uuid.UUID) error
	ReactivateProduct(ctx context.Context, id uuid.UUID) error

	Menu(ctx context.Context) (*dto.MenuResponse, error)
}

type catalogService struct {
	catRepo  repository.CategoryRepository
	prodRepo repository.ProductRepository
	rdb      *redis.Client
}

func NewCatalogService(catRepo repository.CategoryRepository, prodRepo repository.ProductRepository, rdb *redis.Client) CatalogService {
	return &catalogService{catRepo: catRepo, prodRepo: prodRepo, rdb: rdb}
}

// invalidateMenu is best effort — a stale cache entry expires on its own TTL.
func (s *catalogService) invalidateMenu(ctx context.Context) {
	if s.rdb != nil {
		_ = s.rdb.Del(ctx, MenuCacheKey).Err()
	}
}

func mapCategory(c *model.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
	}
}

func mapProduct(p *model.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		CategoryID:  p.CategoryID,
		UnitPrice:   p.UnitPrice,
		Description: p.Description,
		Active:      p.Active,
	}
	if p.Category != nil {
		resp.Category = p.Category.Name
	}
	return resp
}

func (s *catalogService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: category name must not be empty", ErrValidation)
	}

	existing, err := s.catRepo.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: a category with that name already exists", ErrValidation)
	}

	c := &model.Category{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
	}
	if err := s.catRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.invalidateMenu(ctx)
	return mapCategory(c), nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := s.catRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CategoryResponse, 0, len(list))
	for i := range list {
		result = append(result, *mapCategory(&list[i]))
	}
	return result, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := s.catRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: category name must not be empty", ErrValidation)
		}
		if *req.Name != c.Name {
			existing, err := s.catRepo.FindByName(ctx, *req.Name)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			if existing != nil && existing.ID != id {
				return nil, fmt.Errorf("%w: a category with that name already exists", ErrValidation)
			}
		}
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = req.Description
	}
	if req.Active != nil {
		c.Active = *req.Active
	}

	if err := s.catRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	s.invalidateMenu(ctx)
	return mapCategory(c), nil
}

func (s *catalogService) DeactivateCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.catRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("category %s: %w", id, ErrNotFound)
		}
		return err
	}
	if err := s.catRepo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.invalidateMenu(ctx)
	return nil
}

// DeleteCategory hard-deletes only when no product — active or not — still
// references the category.
func (s *catalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.catRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("category %s: %w", id, ErrNotFound)
		}
		return err
	}
	n, err := s.catRepo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrCategoryInUse
	}
	if err := s.catRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateMenu(ctx)
	return nil
}

func (s *catalogService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: product name must not be empty", ErrValidation)
	}
	if req.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit price must not be negative", ErrValidation)
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid category_id", ErrValidation)
	}
	category, err := s.catRepo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %s: %w", categoryID, ErrNotFound)
		}
		return nil, err
	}

	p := &model.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		CategoryID:  categoryID,
		UnitPrice:   req.UnitPrice,
		Description: req.Description,
		Active:      true,
		Category:    category,
	}
	if err := s.prodRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidateMenu(ctx)
	return mapProduct(p), nil
}

func (s *catalogService) ListProducts(ctx context.Context, filter dto.ProductFilter) ([]dto.ProductResponse, error) {
	list, err := s.prodRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ProductResponse, 0, len(list))
	for i := range list {
		result = append(result, *mapProduct(&list[i]))
	}
	return result, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.prodRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: product name must not be empty", ErrValidation)
		}
		p.Name = *req.Name
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid category_id", ErrValidation)
		}
		if _, err := s.catRepo.FindByID(ctx, categoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("category %s: %w", categoryID, ErrNotFound)
			}
			return nil, err
		}
		p.CategoryID = categoryID
		p.Category = nil
	}
	if req.UnitPrice != nil {
		// Price edits only affect future order lines — existing lines keep
		// their snapshot.
		if req.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: unit price must not be negative", ErrValidation)
		}
		p.UnitPrice = *req.UnitPrice
	}
	if req.Description != nil {
		p.Description = req.Description
	}

	if err := s.prodRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidateMenu(ctx)
	return mapProduct(p), nil
}

func (s *catalogService) DeactivateProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.prodRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return err
	}
	if err := s.prodRepo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidateMenu(ctx)
	return nil
}

func (s *catalogService) ReactivateProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.prodRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return err
	}
	if err := s.prodRepo.Reactivate(ctx, id); err != nil {
		return err
	}
	s.invalidateMenu(ctx)
	return nil
}

// Menu groups the active products under their categories in display order.
func (s *catalogService) Menu(ctx context.Context) (*dto.MenuResponse, error) {
	categories, err := s.catRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.prodRepo.List(ctx, dto.ProductFilter{})
	if err != nil {
		return nil, err
	}

	byCategory := make(map[uuid.UUID][]dto.ProductResponse, len(categories))
	for i := range products {
		p := &products[i]
		byCategory[p.CategoryID] = append(byCategory[p.CategoryID], *mapProduct(p))
	}

	menu := &dto.MenuResponse{Categories: make([]dto.MenuCategory, 0, len(categories))}
	for _, c := range categories {
		menu.Categories = append(menu.Categories, dto.MenuCategory{
			ID:       c.ID,
			Name:     c.Name,
			Products: byCategory[c.ID],
		})
	}
	return menu, nil
}
