package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/accreation/storefront/internal/models"
)

// ReceiptFetcher retrieves a completed payment session as a display receipt.
type ReceiptFetcher interface {
	GetReceipt(ctx context.Context, sessionID string) (*models.Receipt, error)
}

// ReceiptHandler handles GET /api/receipt.
type ReceiptHandler struct {
	payments ReceiptFetcher
	logger   *slog.Logger
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(payments ReceiptFetcher, logger *slog.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		payments: payments,
		logger:   logger,
	}
}

// Get handles GET /api/receipt?session_id=ID.
func (h *ReceiptHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		writeText(w, http.StatusBadRequest, "session_id missing")
		return
	}

	receipt, err := h.payments.GetReceipt(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("failed to fetch receipt", "error", err, "session_id", sessionID)
		writeText(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, receipt, h.logger)
}
