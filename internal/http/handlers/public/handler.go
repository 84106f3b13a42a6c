package public

import "github.com/aevi-next/internal/provider"

// Handler serves the storefront API and form endpoints.
type Handler struct {
	*provider.Container
}

// New creates the storefront handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
