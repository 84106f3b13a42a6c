package public

import (
	"errors"
	"strconv"

	"github.com/aevi-next/internal/http/response"
	"github.com/aevi-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest adds quantity of a product, size optional.
type AddCartItemRequest struct {
	ProductID uint    `json:"product_id" form:"product_id"`
	Quantity  int     `json:"quantity" form:"quantity"`
	Size      *string `json:"size" form:"size"`
}

// UpdateCartItemRequest replaces a line's quantity.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" form:"quantity" binding:"required"`
}

// GetCart returns the caller's cart with totals.
func (h *Handler) GetCart(c *gin.Context) {
	summary, err := h.CartService.List(h.cartOwner(c))
	if err != nil {
		response.Internal(c, "failed to load cart")
		return
	}
	response.Success(c, summary)
}

// GetCartCount returns the unit count for the header badge.
func (h *Handler) GetCartCount(c *gin.Context) {
	count, err := h.CartService.Count(h.cartOwner(c))
	if err != nil {
		response.Internal(c, "failed to load cart")
		return
	}
	response.Success(c, gin.H{"count": count})
}

// AddCartItem adds or accumulates a line.
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	err := h.CartService.Add(service.AddCartItemInput{
		Owner:     h.cartOwner(c),
		ProductID: req.ProductID,
		Quantity:  quantity,
		Size:      req.Size,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductRequired):
			response.BadRequest(c, "product_id is required")
		case errors.Is(err, service.ErrQuantityInvalid):
			response.BadRequest(c, "quantity must be at least 1")
		case errors.Is(err, service.ErrProductNotFound):
			response.NotFound(c, "product not found")
		default:
			response.Internal(c, "failed to update cart")
		}
		return
	}
	response.Success(c, gin.H{"added": true})
}

// UpdateCartItem sets a line's quantity.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 64)
	if err != nil || itemID == 0 {
		response.NotFound(c, "cart item not found")
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "quantity is required")
		return
	}
	if err := h.CartService.UpdateQuantity(h.cartOwner(c), uint(itemID), req.Quantity); err != nil {
		switch {
		case errors.Is(err, service.ErrQuantityInvalid):
			response.BadRequest(c, "quantity must be at least 1")
		case errors.Is(err, service.ErrCartItemNotFound):
			response.NotFound(c, "cart item not found")
		default:
			response.Internal(c, "failed to update cart")
		}
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// RemoveCartItem deletes a line. A line owned by someone else reads as
// missing.
func (h *Handler) RemoveCartItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 64)
	if err != nil || itemID == 0 {
		response.NotFound(c, "cart item not found")
		return
	}
	if err := h.CartService.Remove(h.cartOwner(c), uint(itemID)); err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			response.NotFound(c, "cart item not found")
			return
		}
		response.Internal(c, "failed to update cart")
		return
	}
	response.Success(c, gin.H{"removed": true})
}
