package public

import (
	"errors"
	"strconv"

	"github.com/aevi-next/internal/http/response"
	"github.com/aevi-next/internal/service"

	"github.com/gin-gonic/gin"
)

// WishlistAddRequest saves one product.
type WishlistAddRequest struct {
	ProductID uint `json:"product_id" form:"product_id"`
}

// GetWishlist lists the signed-in user's saved products.
func (h *Handler) GetWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	entries, err := h.WishlistService.List(uid)
	if err != nil {
		response.Internal(c, "failed to load wishlist")
		return
	}
	response.Success(c, entries)
}

// AddWishlistItem saves a product; duplicates are rejected without
// touching the list.
func (h *Handler) AddWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req WishlistAddRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := h.WishlistService.Add(uid, req.ProductID); err != nil {
		switch {
		case errors.Is(err, service.ErrProductRequired):
			response.BadRequest(c, "product_id is required")
		case errors.Is(err, service.ErrProductNotFound):
			response.NotFound(c, "product not found")
		case errors.Is(err, service.ErrWishlistDuplicate):
			response.BadRequest(c, "product already in wishlist")
		default:
			response.Internal(c, "failed to update wishlist")
		}
		return
	}
	response.Success(c, gin.H{"added": true})
}

// RemoveWishlistItem deletes a saved product by product id.
func (h *Handler) RemoveWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		response.NotFound(c, "wishlist item not found")
		return
	}
	if err := h.WishlistService.Remove(uid, uint(productID)); err != nil {
		if errors.Is(err, service.ErrWishlistNotFound) {
			response.NotFound(c, "wishlist item not found")
			return
		}
		response.Internal(c, "failed to update wishlist")
		return
	}
	response.Success(c, gin.H{"removed": true})
}
