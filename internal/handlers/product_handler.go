package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/accreation/storefront/internal/catalog"
	"github.com/accreation/storefront/internal/models"
)

// ProductCatalog is the slice of the content gateway the product endpoints
// need.
type ProductCatalog interface {
	AllProducts(ctx context.Context) ([]models.Product, error)
	FeaturedProducts(ctx context.Context, limit int) ([]models.Product, error)
}

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	catalog ProductCatalog
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalog ProductCatalog, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// ListProducts handles GET /api/products.
// Returns the whole catalog, newest first.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.AllProducts(r.Context())
	if err != nil {
		h.logger.Error("failed to list products", "error", err)
		writeText(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, products, h.logger)
}

// FeaturedProducts handles GET /api/products/featured?limit=N.
// A missing or non-numeric limit defaults to 6; the gateway clamps the rest.
func (h *ProductHandler) FeaturedProducts(w http.ResponseWriter, r *http.Request) {
	limit := catalog.DefaultFeaturedLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	products, err := h.catalog.FeaturedProducts(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list featured products", "error", err, "limit", limit)
		writeText(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, products, h.logger)
}
