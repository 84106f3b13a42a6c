package service

import (
	"strings"

	"github.com/aevi-next/internal/models"
	"github.com/aevi-next/internal/repository"

	"gorm.io/gorm"
)

// CartItemDetail is a cart line shaped for responses. LineTotal is
// always quantity times the product's current price.
type CartItemDetail struct {
	ID        uint            `json:"id"`
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Size      *string         `json:"size"`
	UnitPrice models.Money    `json:"unit_price"`
	LineTotal models.Money    `json:"line_total"`
	Product   *models.Product `json:"product"`
}

// CartSummary is the full cart payload.
type CartSummary struct {
	Items []CartItemDetail `json:"items"`
	Count int              `json:"count"`
	Total models.Money     `json:"total"`
}

// AddCartItemInput adds quantity of a product, size-sensitive.
type AddCartItemInput struct {
	Owner     repository.CartOwner
	ProductID uint
	Quantity  int
	Size      *string
}

// CartService owns cart reads and writes for both anonymous sessions
// and signed-in users.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService creates the cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// List returns the owner's cart with line totals priced at the
// product's current price. Lines whose product vanished are dropped
// from storage on the way through.
func (s *CartService) List(owner repository.CartOwner) (*CartSummary, error) {
	summary := &CartSummary{Items: []CartItemDetail{}}
	if owner.IsZero() {
		return summary, nil
	}
	items, err := s.cartRepo.ListByOwner(owner)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		product := item.Product
		if product == nil || product.ID == 0 {
			p, err := s.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, err
			}
			product = p
		}
		if product == nil {
			_ = s.cartRepo.Delete(item.ID)
			continue
		}
		lineTotal := product.Price.Mul(item.Quantity)
		summary.Items = append(summary.Items, CartItemDetail{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Size:      item.Size,
			UnitPrice: product.Price,
			LineTotal: lineTotal,
			Product:   product,
		})
		summary.Count += item.Quantity
		summary.Total = summary.Total.Add(lineTotal)
	}
	return summary, nil
}

// Count returns the number of units in the owner's cart.
func (s *CartService) Count(owner repository.CartOwner) (int, error) {
	if owner.IsZero() {
		return 0, nil
	}
	items, err := s.cartRepo.ListByOwner(owner)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count, nil
}

// Add puts quantity of a product into the cart. A line already holding
// the same (product, size) pair accumulates instead of duplicating;
// size is part of the identity, so 50ml and 100ml of one product are
// separate lines.
func (s *CartService) Add(input AddCartItemInput) error {
	if input.Owner.IsZero() || input.ProductID == 0 {
		return ErrProductRequired
	}
	if input.Quantity <= 0 {
		return ErrQuantityInvalid
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	size := normalizeSize(input.Size)

	existing, err := s.cartRepo.GetLine(input.Owner, input.ProductID, size)
	if err != nil {
		return err
	}
	if existing != nil {
		return s.cartRepo.UpdateQuantity(existing.ID, existing.Quantity+input.Quantity)
	}
	item := &models.CartItem{
		UserID:    input.Owner.UserID,
		SessionID: input.Owner.SessionID,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		Size:      size,
	}
	return s.cartRepo.Create(item)
}

// UpdateQuantity replaces a line's quantity. Removal goes through
// Remove; a quantity below one is rejected here.
func (s *CartService) UpdateQuantity(owner repository.CartOwner, itemID uint, quantity int) error {
	if quantity < 1 {
		return ErrQuantityInvalid
	}
	item, err := s.cartRepo.GetByIDForOwner(itemID, owner)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrCartItemNotFound
	}
	return s.cartRepo.UpdateQuantity(item.ID, quantity)
}

// Remove deletes a line. Lines belonging to another owner read as
// absent.
func (s *CartService) Remove(owner repository.CartOwner, itemID uint) error {
	item, err := s.cartRepo.GetByIDForOwner(itemID, owner)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrCartItemNotFound
	}
	return s.cartRepo.Delete(item.ID)
}

// MergeSession folds an anonymous session's cart into a user's on sign
// in. Rows re-key to the user; a collision on (product, size) sums the
// quantities. The whole merge is one transaction.
func (s *CartService) MergeSession(sessionID string, userID uint) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" || userID == 0 {
		return nil
	}
	return s.cartRepo.Transaction(func(tx *gorm.DB) error {
		txRepo := s.cartRepo.WithTx(tx)
		sessionItems, err := txRepo.ListBySession(sessionID)
		if err != nil {
			return err
		}
		userOwner := repository.UserOwner(userID)
		for _, item := range sessionItems {
			existing, err := txRepo.GetLine(userOwner, item.ProductID, item.Size)
			if err != nil {
				return err
			}
			if existing != nil {
				if err := txRepo.UpdateQuantity(existing.ID, existing.Quantity+item.Quantity); err != nil {
					return err
				}
				if err := txRepo.Delete(item.ID); err != nil {
					return err
				}
				continue
			}
			if err := txRepo.AssignToUser(item.ID, userID); err != nil {
				return err
			}
		}
		return nil
	})
}

// normalizeSize treats blank sizes as unset so "" and NULL are one
// identity.
func normalizeSize(size *string) *string {
	if size == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*size)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
