package service

import (
	"github.com/aevi-next/internal/models"
	"github.com/aevi-next/internal/repository"
)

// WishlistEntryDetail is a wishlist row shaped for responses.
type WishlistEntryDetail struct {
	ID        uint            `json:"id"`
	ProductID uint            `json:"product_id"`
	Product   *models.Product `json:"product"`
	CreatedAt string          `json:"created_at"`
}

// WishlistService manages per-user saved products.
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

// NewWishlistService creates the wishlist service.
func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// List returns the user's wishlist, oldest first.
func (s *WishlistService) List(userID uint) ([]WishlistEntryDetail, error) {
	entries, err := s.wishlistRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	details := make([]WishlistEntryDetail, 0, len(entries))
	for _, entry := range entries {
		details = append(details, WishlistEntryDetail{
			ID:        entry.ID,
			ProductID: entry.ProductID,
			Product:   entry.Product,
			CreatedAt: entry.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return details, nil
}

// Count returns the number of saved products.
func (s *WishlistService) Count(userID uint) (int64, error) {
	return s.wishlistRepo.CountByUser(userID)
}

// Add saves a product for the user. A product already on the list is a
// duplicate and leaves the list untouched.
func (s *WishlistService) Add(userID, productID uint) error {
	if productID == 0 {
		return ErrProductRequired
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	existing, err := s.wishlistRepo.GetByUserAndProduct(userID, productID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrWishlistDuplicate
	}
	return s.wishlistRepo.Create(&models.Wishlist{
		UserID:    userID,
		ProductID: productID,
	})
}

// Remove deletes a saved product; removing one that is not saved is an
// error so the client can tell the difference.
func (s *WishlistService) Remove(userID, productID uint) error {
	affected, err := s.wishlistRepo.DeleteByUserAndProduct(userID, productID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrWishlistNotFound
	}
	return nil
}
