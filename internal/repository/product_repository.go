package repository

import (
	"errors"
	"strings"

	"github.com/aevi-next/internal/constants"
	"github.com/aevi-next/internal/models"

	"gorm.io/gorm"
)

// ProductRepository is the catalog query surface.
type ProductRepository interface {
	List() ([]models.Product, error)
	ListBestsellers() ([]models.Product, error)
	ListNew() ([]models.Product, error)
	ListByCategory(category string) ([]models.Product, error)
	Search(q string, limit int) ([]models.Product, error)
	Filter(filter ProductFilter) ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	CountByName(name string) (int64, error)
}

// GormProductRepository is the GORM implementation.
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a catalog repository.
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// List returns every product.
func (r *GormProductRepository) List() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("id asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListBestsellers returns flagged bestsellers.
func (r *GormProductRepository) ListBestsellers() ([]models.Product, error) {
	return r.listByFlag("is_bestseller")
}

// ListNew returns new arrivals.
func (r *GormProductRepository) ListNew() ([]models.Product, error) {
	return r.listByFlag("is_new")
}

func (r *GormProductRepository) listByFlag(column string) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where(column+" = ?", true).Order("id asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListByCategory returns products whose category label matches exactly.
func (r *GormProductRepository) ListByCategory(category string) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("category = ?", category).Order("id asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Search matches the term case-insensitively against name, descriptions
// and tags, capped at limit rows.
func (r *GormProductRepository) Search(q string, limit int) ([]models.Product, error) {
	like := "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
	var products []models.Product
	query := r.db.Where(
		"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(short_description) LIKE ? OR LOWER(tags) LIKE ?",
		like, like, like, like,
	)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Filter applies the combined category/price/stock filter and sort order.
// Category slugs other than the virtual ones are matched loosely after
// rewriting '-' to ' & ' and title-casing, mirroring the storefront's
// slug scheme ("face-body" -> "Face & Body").
func (r *GormProductRepository) Filter(filter ProductFilter) ([]models.Product, error) {
	query := r.db.Model(&models.Product{})

	category := strings.TrimSpace(filter.Category)
	if category != "" && category != constants.CategoryAll {
		switch category {
		case constants.CategoryBestsellers:
			query = query.Where("is_bestseller = ?", true)
		case constants.CategoryNewIn:
			query = query.Where("is_new = ?", true)
		default:
			formatted := formatCategorySlug(category)
			query = query.Where("LOWER(category) LIKE ?", "%"+strings.ToLower(formatted)+"%")
		}
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.InStock != nil {
		query = query.Where("in_stock = ?", *filter.InStock)
	}

	switch filter.Sort {
	case constants.SortPriceLow:
		query = query.Order("price asc")
	case constants.SortPriceHigh:
		query = query.Order("price desc")
	case constants.SortRating:
		query = query.Order("rating desc")
	case constants.SortNewest:
		query = query.Order("created_at desc")
	default:
		query = query.Order("name asc")
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID returns a product or nil when it does not exist.
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Create inserts a product (seed tooling).
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// CountByName counts products carrying the exact name (seed idempotency).
func (r *GormProductRepository) CountByName(name string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("name = ?", name).Count(&count).Error
	return count, err
}

func formatCategorySlug(slug string) string {
	formatted := strings.ReplaceAll(slug, "-", " & ")
	words := strings.Fields(formatted)
	for i, word := range words {
		if word == "&" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
