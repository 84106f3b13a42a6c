package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aevi-next/internal/models"
	"github.com/aevi-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupWishlistServiceTest(t *testing.T) (*WishlistService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:wishlist_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateAll(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewWishlistService(repository.NewWishlistRepository(db), repository.NewProductRepository(db))
	return svc, db
}

func seedWishlistProduct(t *testing.T, db *gorm.DB, name string) *models.Product {
	t.Helper()
	product := models.Product{
		Name:    name,
		Price:   models.NewMoneyFromDecimal(decimal.RequireFromString("19.99")),
		InStock: true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return &product
}

func TestWishlistAddAndList(t *testing.T) {
	svc, db := setupWishlistServiceTest(t)
	product := seedWishlistProduct(t, db, "Face Oil")
	userID := uint(7)

	if err := svc.Add(userID, product.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	entries, err := svc.List(userID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ProductID != product.ID {
		t.Fatalf("unexpected wishlist contents: %+v", entries)
	}
	if entries[0].Product == nil || entries[0].Product.Name != "Face Oil" {
		t.Fatalf("expected product preloaded, got: %+v", entries[0].Product)
	}
}

func TestWishlistDuplicateLeavesListUnchanged(t *testing.T) {
	svc, db := setupWishlistServiceTest(t)
	product := seedWishlistProduct(t, db, "Balm")
	userID := uint(7)

	if err := svc.Add(userID, product.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.Add(userID, product.ID); !errors.Is(err, ErrWishlistDuplicate) {
		t.Fatalf("expected ErrWishlistDuplicate, got: %v", err)
	}
	count, err := svc.Count(userID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("duplicate add must not grow the list, got %d entries", count)
	}
}

func TestWishlistAddValidation(t *testing.T) {
	svc, _ := setupWishlistServiceTest(t)
	userID := uint(7)

	if err := svc.Add(userID, 0); !errors.Is(err, ErrProductRequired) {
		t.Fatalf("expected ErrProductRequired, got: %v", err)
	}
	if err := svc.Add(userID, 12345); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got: %v", err)
	}
}

func TestWishlistRemove(t *testing.T) {
	svc, db := setupWishlistServiceTest(t)
	product := seedWishlistProduct(t, db, "Mist")
	userID := uint(9)

	if err := svc.Add(userID, product.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.Remove(userID, product.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := svc.Remove(userID, product.ID); !errors.Is(err, ErrWishlistNotFound) {
		t.Fatalf("expected ErrWishlistNotFound on second remove, got: %v", err)
	}
}

func TestWishlistIsPerUser(t *testing.T) {
	svc, db := setupWishlistServiceTest(t)
	product := seedWishlistProduct(t, db, "Serum")

	if err := svc.Add(1, product.ID); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	entries, err := svc.List(2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("user 2 should have an empty wishlist, got %d", len(entries))
	}
	if err := svc.Remove(2, product.ID); !errors.Is(err, ErrWishlistNotFound) {
		t.Fatalf("expected ErrWishlistNotFound for other user, got: %v", err)
	}
}
