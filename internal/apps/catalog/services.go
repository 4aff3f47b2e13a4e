package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dilshodm/hamxona-backend/internal/cache"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)

const defaultPageSize = 10

// CatalogService serves category and product reads for the storefront,
// with a cache-aside layer in front of the hot lookups, and the admin
// writes that invalidate it.
type CatalogService struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewCatalogService(db *gorm.DB, c *cache.Cache) *CatalogService {
	return &CatalogService{db: db, cache: c}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if hit, err := s.cache.Get(ctx, "categories", &categories); err != nil {
		slog.Error("category cache read failed", "error", err)
	} else if hit {
		return categories, nil
	}

	if err := s.db.Order("created_at ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	if err := s.cache.Set(ctx, "categories", categories); err != nil {
		slog.Error("category cache write failed", "error", err)
	}
	return categories, nil
}

// ListProducts returns one page of products, optionally filtered by
// category and by a title/description search term. Pages are 1-based.
func (s *CatalogService) ListProducts(categoryID *uuid.UUID, search string, page int) ([]Product, int64, error) {
	if page < 1 {
		page = 1
	}

	query := s.db.Model(&Product{}).Preload("Category")
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []Product
	err := query.Order("created_at DESC").
		Limit(defaultPageSize).
		Offset((page - 1) * defaultPageSize).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	cacheKey := "product:" + id.String()

	var product Product
	if hit, err := s.cache.Get(ctx, cacheKey, &product); err != nil {
		slog.Error("product cache read failed", "error", err)
	} else if hit {
		return &product, nil
	}

	if err := s.db.Preload("Category").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	if err := s.cache.Set(ctx, cacheKey, &product); err != nil {
		slog.Error("product cache write failed", "error", err)
	}
	return &product, nil
}

// --- admin writes ---

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*Category, error) {
	category := Category{ID: uuid.New(), Name: name}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	s.invalidateCategories(ctx)
	return &category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*Category, error) {
	var category Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	category.Name = name
	if err := s.db.Save(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	s.invalidateCategories(ctx)
	return &category, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	result := s.db.Delete(&Category{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	s.invalidateCategories(ctx)
	return nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *Product) error {
	if product.CategoryID != nil {
		var category Category
		if err := s.db.First(&category, "id = ?", *product.CategoryID).Error; err != nil {
			return ErrCategoryNotFound
		}
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if err := s.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, product *Product) error {
	if err := s.db.Save(product).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	s.invalidateProduct(ctx, product.ID)
	return nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	result := s.db.Delete(&Product{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	s.invalidateProduct(ctx, id)
	return nil
}

// invalidateCategories drops the category list and every cached product
// detail, since product entries embed their category.
func (s *CatalogService) invalidateCategories(ctx context.Context) {
	if err := s.cache.Delete(ctx, "categories"); err != nil {
		slog.Error("category cache invalidation failed", "error", err)
	}
	if err := s.cache.DeletePattern(ctx, "product:*"); err != nil {
		slog.Error("product cache invalidation failed", "error", err)
	}
}

func (s *CatalogService) invalidateProduct(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, "product:"+id.String()); err != nil {
		slog.Error("product cache invalidation failed", "error", err)
	}
}
