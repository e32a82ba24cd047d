package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/accreation/storefront/internal/models"
	"github.com/accreation/storefront/internal/service"
)

// CheckoutStarter turns a cart into a hosted payment session redirect URL.
type CheckoutStarter interface {
	Checkout(ctx context.Context, req models.CheckoutRequest, frontendURL string) (string, error)
}

// CheckoutHandler handles POST /api/checkout.
type CheckoutHandler struct {
	service     CheckoutStarter
	frontendURL string
	logger      *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler. frontendURL may be
// empty, in which case the redirect base is derived from each request's
// forwarding headers.
func NewCheckoutHandler(service CheckoutStarter, frontendURL string, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service:     service,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// Create handles POST /api/checkout.
func (h *CheckoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode checkout request", "error", err)
		writeText(w, http.StatusBadRequest, "invalid body")
		return
	}

	frontendURL := h.frontendURL
	if frontendURL == "" {
		frontendURL = requestBaseURL(r)
	}

	url, err := h.service.Checkout(r.Context(), req, frontendURL)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidBody):
			h.logger.Warn("invalid checkout request")
			writeText(w, http.StatusBadRequest, "invalid body")
		case errors.Is(err, service.ErrUnknownProduct):
			h.logger.Warn("checkout referenced unknown product")
			writeText(w, http.StatusBadRequest, "product not found in catalog")
		default:
			h.logger.Error("checkout failed", "error", err)
			writeText(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.logger.Info("checkout session created")
	writeJSON(w, http.StatusOK, models.CheckoutResponse{URL: url}, h.logger)
}
