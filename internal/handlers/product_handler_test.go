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

type stubProductCatalog struct {
	products  []models.Product
	err       error
	lastLimit int
	calls     int
}

func (s *stubProductCatalog) AllProducts(ctx context.Context) ([]models.Product, error) {
	s.calls++
	return s.products, s.err
}

func (s *stubProductCatalog) FeaturedProducts(ctx context.Context, limit int) ([]models.Product, error) {
	s.calls++
	s.lastLimit = limit
	return s.products, s.err
}

func TestProductHandler_ListProducts(t *testing.T) {
	catalog := &stubProductCatalog{products: []models.Product{
		{ID: "p1", Title: "Silver Ring", PriceCents: 1999},
	}}
	handler := NewProductHandler(catalog, logger.New("error"))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()
	handler.ListProducts(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var products []models.Product
	if err := json.NewDecoder(w.Body).Decode(&products); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(products) != 1 || products[0].PriceCents != 1999 {
		t.Errorf("unexpected products: %+v", products)
	}
}

func TestProductHandler_ListProductsUpstreamError(t *testing.T) {
	catalog := &stubProductCatalog{err: errors.New("content store error: boom")}
	handler := NewProductHandler(catalog, logger.New("error"))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()
	handler.ListProducts(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("error body must be plain text, got %s", ct)
	}
	if !strings.Contains(w.Body.String(), "boom") {
		t.Errorf("expected upstream error text, got %q", w.Body.String())
	}
}

func TestProductHandler_FeaturedProductsLimitParsing(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantLimit int
	}{
		{"default when absent", "", 6},
		{"default when non-numeric", "?limit=abc", 6},
		{"numeric passed to gateway", "?limit=12", 12},
		{"zero passed through for clamping", "?limit=0", 0},
		{"large passed through for clamping", "?limit=100", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := &stubProductCatalog{}
			handler := NewProductHandler(catalog, logger.New("error"))

			req := httptest.NewRequest(http.MethodGet, "/api/products/featured"+tt.query, nil)
			w := httptest.NewRecorder()
			handler.FeaturedProducts(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}
			if catalog.lastLimit != tt.wantLimit {
				t.Errorf("expected limit %d, got %d", tt.wantLimit, catalog.lastLimit)
			}
		})
	}
}

func TestHealthHandler(t *testing.T) {
	handler := NewHealthHandler(logger.New("error"))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var body map[string]bool
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !body["ok"] {
		t.Errorf("expected ok=true, got %+v", body)
	}
}

func TestAllowRejectsOtherMethods(t *testing.T) {
	wrapped := Allow(http.MethodPost, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/checkout", nil)
	w := httptest.NewRecorder()
	wrapped(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", w.Code)
	}
	if allow := w.Header().Get("Allow"); allow != http.MethodPost {
		t.Errorf("expected Allow header %q, got %q", http.MethodPost, allow)
	}

	w = httptest.NewRecorder()
	wrapped(w, httptest.NewRequest(http.MethodPost, "/api/checkout", nil))
	if w.Code != http.StatusOK {
		t.Errorf("expected wrapped handler to run for the accepted method, got %d", w.Code)
	}
}
