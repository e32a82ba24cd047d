package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/accreation/storefront/internal/models"
	"github.com/accreation/storefront/pkg/logger"
)

type stubReceiptFetcher struct {
	receipt *models.Receipt
	err     error
	calls   int
	lastID  string
}

func (s *stubReceiptFetcher) GetReceipt(ctx context.Context, sessionID string) (*models.Receipt, error) {
	s.calls++
	s.lastID = sessionID
	if s.err != nil {
		return nil, s.err
	}
	return s.receipt, nil
}

func TestReceiptHandler_MissingSessionID(t *testing.T) {
	fetcher := &stubReceiptFetcher{}
	handler := NewReceiptHandler(fetcher, logger.New("error"))

	req := httptest.NewRequest(http.MethodGet, "/api/receipt", nil)
	w := httptest.NewRecorder()
	handler.Get(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "session_id missing") {
		t.Errorf("unexpected body %q", w.Body.String())
	}
	if fetcher.calls != 0 {
		t.Errorf("processor must not be contacted without a session id, got %d calls", fetcher.calls)
	}
}

func TestReceiptHandler_Success(t *testing.T) {
	fetcher := &stubReceiptFetcher{receipt: &models.Receipt{
		PaymentStatus: "paid",
		CustomerName:  "Giulia Rossi",
		CustomerEmail: "giulia@example.com",
		Address:       "Via Roma 1, 20121, Milano, MI, IT",
		Items: []models.ReceiptItem{
			{Description: "Silver Ring", Quantity: 2, AmountTotal: 3998},
		},
		AmountTotal: 3998,
		Currency:    "eur",
	}}
	handler := NewReceiptHandler(fetcher, logger.New("error"))

	req := httptest.NewRequest(http.MethodGet, "/api/receipt?session_id=cs_test_1", nil)
	w := httptest.NewRecorder()
	handler.Get(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if fetcher.lastID != "cs_test_1" {
		t.Errorf("expected session id cs_test_1, got %q", fetcher.lastID)
	}

	var receipt models.Receipt
	if err := json.NewDecoder(w.Body).Decode(&receipt); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if receipt.PaymentStatus != "paid" || receipt.AmountTotal != 3998 {
		t.Errorf("unexpected receipt: %+v", receipt)
	}
}

func TestReceiptHandler_ProcessorError(t *testing.T) {
	fetcher := &stubReceiptFetcher{err: errors.New("no such checkout session")}
	handler := NewReceiptHandler(fetcher, logger.New("error"))

	req := httptest.NewRequest(http.MethodGet, "/api/receipt?session_id=cs_gone", nil)
	w := httptest.NewRecorder()
	handler.Get(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "no such checkout session") {
		t.Errorf("expected upstream error text, got %q", w.Body.String())
	}
}
