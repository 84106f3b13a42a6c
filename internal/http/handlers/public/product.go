package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/aevi-next/internal/http/response"
	"github.com/aevi-next/internal/repository"
	"github.com/aevi-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProducts returns the whole catalog.
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.CatalogService.ListAll()
	if err != nil {
		response.Internal(c, "failed to load products")
		return
	}
	response.Success(c, products)
}

// ListBestsellers returns flagged bestsellers.
func (h *Handler) ListBestsellers(c *gin.Context) {
	products, err := h.CatalogService.ListBestsellers()
	if err != nil {
		response.Internal(c, "failed to load products")
		return
	}
	response.Success(c, products)
}

// ListNew returns new arrivals.
func (h *Handler) ListNew(c *gin.Context) {
	products, err := h.CatalogService.ListNew()
	if err != nil {
		response.Internal(c, "failed to load products")
		return
	}
	response.Success(c, products)
}

// ListByCategory returns products carrying the exact category label.
func (h *Handler) ListByCategory(c *gin.Context) {
	category := c.Param("category")
	products, err := h.CatalogService.ListByCategory(category)
	if err != nil {
		response.Internal(c, "failed to load products")
		return
	}
	response.Success(c, products)
}

// GetProduct returns one product by id.
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid product id")
		return
	}
	product, err := h.CatalogService.GetProduct(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.NotFound(c, "product not found")
			return
		}
		response.Internal(c, "failed to load product")
		return
	}
	response.Success(c, product)
}

// SearchProducts matches a free-text query, capped result set. A blank
// query yields an empty array.
func (h *Handler) SearchProducts(c *gin.Context) {
	products, err := h.CatalogService.Search(c.Query("q"))
	if err != nil {
		response.Internal(c, "search failed")
		return
	}
	response.Success(c, products)
}

// FilterProducts applies the combined category/price/stock filter with
// a sort order.
func (h *Handler) FilterProducts(c *gin.Context) {
	filter := repository.ProductFilter{
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
	}
	if raw := strings.TrimSpace(c.Query("min_price")); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinPrice = &v
		}
	}
	if raw := strings.TrimSpace(c.Query("max_price")); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = &v
		}
	}
	if raw := strings.TrimSpace(c.Query("in_stock")); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			filter.InStock = &v
		}
	}
	products, err := h.CatalogService.Filter(filter)
	if err != nil {
		response.Internal(c, "filter failed")
		return
	}
	response.Success(c, products)
}
