package service

import (
	"strings"

	"github.com/aevi-next/internal/constants"
	"github.com/aevi-next/internal/models"
	"github.com/aevi-next/internal/repository"
)

// CatalogService answers read-only product queries.
type CatalogService struct {
	productRepo repository.ProductRepository
}

// NewCatalogService creates the catalog service.
func NewCatalogService(productRepo repository.ProductRepository) *CatalogService {
	return &CatalogService{productRepo: productRepo}
}

// ListAll returns the whole catalog.
func (s *CatalogService) ListAll() ([]models.Product, error) {
	return s.productRepo.List()
}

// ListBestsellers returns flagged bestsellers.
func (s *CatalogService) ListBestsellers() ([]models.Product, error) {
	return s.productRepo.ListBestsellers()
}

// ListNew returns new arrivals.
func (s *CatalogService) ListNew() ([]models.Product, error) {
	return s.productRepo.ListNew()
}

// ListByCategory returns products carrying the exact category label.
func (s *CatalogService) ListByCategory(category string) ([]models.Product, error) {
	return s.productRepo.ListByCategory(category)
}

// GetProduct loads one product by id.
func (s *CatalogService) GetProduct(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Search matches a free-text term against names, descriptions and tags.
// A blank term returns nothing rather than everything.
func (s *CatalogService) Search(q string) ([]models.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []models.Product{}, nil
	}
	return s.productRepo.Search(q, constants.SearchResultLimit)
}

// Filter applies the combined category/price/stock filter and sort.
func (s *CatalogService) Filter(filter repository.ProductFilter) ([]models.Product, error) {
	return s.productRepo.Filter(filter)
}
