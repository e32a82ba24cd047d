package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/accreation/storefront/internal/models"
	"github.com/accreation/storefront/internal/payments"
	"github.com/google/uuid"
)

var (
	ErrInvalidBody    = errors.New("invalid body")
	ErrUnknownProduct = errors.New("product not found in catalog")
	ErrInvalidPrice   = errors.New("invalid product price")
)

// MaxQuantityPerLine caps how many units of one product a single checkout
// may request.
const MaxQuantityPerLine = 10

// Catalog resolves the server-trusted product data for checkout. Client
// input never carries prices across this boundary.
type Catalog interface {
	ProductsByIDs(ctx context.Context, ids []string) ([]models.Product, error)
}

// SessionCreator creates hosted checkout sessions.
type SessionCreator interface {
	CreateSession(ctx context.Context, req payments.SessionRequest) (*payments.Session, error)
}

// CheckoutService validates checkout requests, re-resolves authoritative
// prices from the catalog and requests a payment session.
type CheckoutService struct {
	catalog  Catalog
	payments SessionCreator
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(catalog Catalog, payments SessionCreator) *CheckoutService {
	return &CheckoutService{
		catalog:  catalog,
		payments: payments,
	}
}

// Checkout turns a validated cart into a hosted checkout session and returns
// its redirect URL. frontendURL is the public storefront base the success and
// cancel redirects point back to. Each call creates a fresh session; there is
// no idempotency, matching hosted-checkout semantics.
func (s *CheckoutService) Checkout(ctx context.Context, req models.CheckoutRequest, frontendURL string) (string, error) {
	if err := validateRequest(req); err != nil {
		return "", err
	}

	// Fetch each referenced product once, keyed by id.
	ids := make([]string, 0, len(req.Items))
	seen := make(map[string]bool, len(req.Items))
	for _, item := range req.Items {
		if seen[item.ProductID] {
			continue
		}
		seen[item.ProductID] = true
		ids = append(ids, item.ProductID)
	}

	products, err := s.catalog.ProductsByIDs(ctx, ids)
	if err != nil {
		return "", err
	}

	productByID := make(map[string]models.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	// Any unknown reference fails the whole request, not just the line.
	for _, item := range req.Items {
		if _, ok := productByID[item.ProductID]; !ok {
			return "", ErrUnknownProduct
		}
	}

	lineItems := make([]payments.SessionLineItem, 0, len(req.Items))
	for _, item := range req.Items {
		p := productByID[item.ProductID]

		// A non-positive catalog price is a content-authoring defect, not a
		// client error.
		if p.PriceCents <= 0 {
			return "", fmt.Errorf("%w: product %s", ErrInvalidPrice, p.ID)
		}

		lineItems = append(lineItems, payments.SessionLineItem{
			ProductID:       p.ID,
			Quantity:        int64(item.Quantity),
			UnitAmountCents: p.PriceCents,
			Name:            p.Title,
			Description:     p.Description,
			ImageURL:        p.ImageURL,
		})
	}

	session, err := s.payments.CreateSession(ctx, payments.SessionRequest{
		LineItems:       lineItems,
		SuccessURL:      frontendURL + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:       frontendURL + "/cart",
		ClientReference: uuid.NewString(),
	})
	if err != nil {
		return "", err
	}

	return session.URL, nil
}

// validateRequest checks the structural shape of the untrusted payload before
// any external service is contacted.
func validateRequest(req models.CheckoutRequest) error {
	if len(req.Items) == 0 {
		return ErrInvalidBody
	}
	for _, item := range req.Items {
		if item.ProductID == "" {
			return ErrInvalidBody
		}
		if item.Quantity < 1 || item.Quantity > MaxQuantityPerLine {
			return ErrInvalidBody
		}
	}
	return nil
}
