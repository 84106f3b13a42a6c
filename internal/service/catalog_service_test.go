package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aevi-next/internal/constants"
	"github.com/aevi-next/internal/models"
	"github.com/aevi-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCatalogServiceTest(t *testing.T) (*CatalogService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:catalog_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateAll(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewCatalogService(repository.NewProductRepository(db))
	return svc, db
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	products := []models.Product{
		{Name: "Nourishing Face Oil", Price: models.NewMoneyFromDecimal(decimal.RequireFromString("39.99")), Category: "Serums & Oils", IsBestseller: true, Rating: 4.8, InStock: true, Tags: "hydrating, natural", ShortDescription: "facial oil"},
		{Name: "Gentle Cleansing Foam", Price: models.NewMoneyFromDecimal(decimal.RequireFromString("24.99")), Category: "Cleansers & Masks", IsBestseller: true, Rating: 4.6, InStock: true, Tags: "gentle", Description: "pH-balanced foam"},
		{Name: "Brightening Vitamin C Serum", Price: models.NewMoneyFromDecimal(decimal.RequireFromString("44.99")), Category: "Serums & Oils", IsNew: true, Rating: 4.7, InStock: true, Tags: "brightening"},
		{Name: "Repair Balm", Price: models.NewMoneyFromDecimal(decimal.RequireFromString("28.99")), Category: "Balms", Rating: 4.9, InStock: false, Tags: "healing"},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
}

func TestCatalogLists(t *testing.T) {
	svc, db := setupCatalogServiceTest(t)
	seedCatalog(t, db)

	all, err := svc.ListAll()
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 products, got %d", len(all))
	}

	best, err := svc.ListBestsellers()
	if err != nil {
		t.Fatalf("bestsellers failed: %v", err)
	}
	if len(best) != 2 {
		t.Fatalf("expected 2 bestsellers, got %d", len(best))
	}

	fresh, err := svc.ListNew()
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	if len(fresh) != 1 || fresh[0].Name != "Brightening Vitamin C Serum" {
		t.Fatalf("unexpected new arrivals: %+v", fresh)
	}

	serums, err := svc.ListByCategory("Serums & Oils")
	if err != nil {
		t.Fatalf("category failed: %v", err)
	}
	if len(serums) != 2 {
		t.Fatalf("expected 2 serums, got %d", len(serums))
	}
}

func TestCatalogGetProduct(t *testing.T) {
	svc, db := setupCatalogServiceTest(t)
	seedCatalog(t, db)

	product, err := svc.GetProduct(1)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if product.Name == "" {
		t.Fatalf("unexpected product: %+v", product)
	}
	if _, err := svc.GetProduct(999); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got: %v", err)
	}
}

func TestCatalogSearch(t *testing.T) {
	svc, db := setupCatalogServiceTest(t)
	seedCatalog(t, db)

	// Blank query returns nothing, not everything.
	empty, err := svc.Search("   ")
	if err != nil {
		t.Fatalf("blank search failed: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("blank search should be empty, got %d", len(empty))
	}

	byName, err := svc.Search("vitamin")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(byName) != 1 || byName[0].Name != "Brightening Vitamin C Serum" {
		t.Fatalf("unexpected name match: %+v", byName)
	}

	byTag, err := svc.Search("healing")
	if err != nil {
		t.Fatalf("tag search failed: %v", err)
	}
	if len(byTag) != 1 || byTag[0].Name != "Repair Balm" {
		t.Fatalf("unexpected tag match: %+v", byTag)
	}

	byDescription, err := svc.Search("ph-balanced")
	if err != nil {
		t.Fatalf("description search failed: %v", err)
	}
	if len(byDescription) != 1 || byDescription[0].Name != "Gentle Cleansing Foam" {
		t.Fatalf("unexpected description match: %+v", byDescription)
	}
}

func TestCatalogSearchCap(t *testing.T) {
	svc, db := setupCatalogServiceTest(t)
	for i := 0; i < constants.SearchResultLimit+5; i++ {
		product := models.Product{
			Name:    fmt.Sprintf("Cloudberry Cream %d", i),
			Price:   models.NewMoneyFromDecimal(decimal.RequireFromString("10.00")),
			InStock: true,
		}
		if err := db.Create(&product).Error; err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	results, err := svc.Search("cloudberry")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != constants.SearchResultLimit {
		t.Fatalf("expected %d capped results, got %d", constants.SearchResultLimit, len(results))
	}
}

func TestCatalogFilter(t *testing.T) {
	svc, db := setupCatalogServiceTest(t)
	seedCatalog(t, db)

	minPrice := 25.0
	inStock := true
	results, err := svc.Filter(repository.ProductFilter{
		MinPrice: &minPrice,
		InStock:  &inStock,
		Sort:     constants.SortPriceLow,
	})
	if err != nil {
		t.Fatalf("filter failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 in-stock products over 25, got %d", len(results))
	}
	if results[0].Name != "Nourishing Face Oil" || results[1].Name != "Brightening Vitamin C Serum" {
		t.Fatalf("unexpected price-low order: %s, %s", results[0].Name, results[1].Name)
	}

	best, err := svc.Filter(repository.ProductFilter{Category: constants.CategoryBestsellers})
	if err != nil {
		t.Fatalf("bestsellers filter failed: %v", err)
	}
	if len(best) != 2 {
		t.Fatalf("expected 2 bestsellers, got %d", len(best))
	}

	// Slug rewriting: "serums-oils" -> "Serums & Oils".
	serums, err := svc.Filter(repository.ProductFilter{Category: "serums-oils"})
	if err != nil {
		t.Fatalf("slug filter failed: %v", err)
	}
	if len(serums) != 2 {
		t.Fatalf("expected 2 slug-matched serums, got %d", len(serums))
	}

	rated, err := svc.Filter(repository.ProductFilter{Sort: constants.SortRating})
	if err != nil {
		t.Fatalf("rating sort failed: %v", err)
	}
	if rated[0].Name != "Repair Balm" {
		t.Fatalf("expected highest rated first, got %s", rated[0].Name)
	}
}
