package payments

import (
	"context"
	"strings"

	"github.com/accreation/storefront/internal/config"
	"github.com/accreation/storefront/internal/models"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

// allowedShippingCountries is the fixed set of countries the hosted checkout
// page collects shipping addresses for.
var allowedShippingCountries = []string{"IT"}

// StripeGateway talks to Stripe through the official SDK.
type StripeGateway struct {
	api *client.API
}

// NewStripeGateway creates a gateway for the configured account. A missing
// secret key is tolerated here and reported per request via ErrNotConfigured.
func NewStripeGateway(cfg config.StripeConfig) *StripeGateway {
	g := &StripeGateway{}
	if cfg.SecretKey != "" {
		g.api = &client.API{}
		g.api.Init(cfg.SecretKey, nil)
	}
	return g
}

// CreateSession creates a hosted checkout session in one-time-payment mode
// and returns its redirect URL.
func (g *StripeGateway) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	if g.api == nil {
		return nil, ErrNotConfigured
	}

	params := sessionParams(req)
	params.Context = ctx

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, err
	}
	if s.URL == "" {
		return nil, ErrNoSessionURL
	}

	return &Session{ID: s.ID, URL: s.URL}, nil
}

// GetReceipt retrieves a session and its line items and reshapes them into
// the display receipt.
func (g *StripeGateway) GetReceipt(ctx context.Context, sessionID string) (*models.Receipt, error) {
	if g.api == nil {
		return nil, ErrNotConfigured
	}

	getParams := &stripe.CheckoutSessionParams{}
	getParams.Context = ctx
	s, err := g.api.CheckoutSessions.Get(sessionID, getParams)
	if err != nil {
		return nil, err
	}

	listParams := &stripe.CheckoutSessionListLineItemsParams{
		Session: stripe.String(sessionID),
	}
	listParams.Context = ctx

	var lineItems []*stripe.LineItem
	iter := g.api.CheckoutSessions.ListLineItems(listParams)
	for iter.Next() {
		lineItems = append(lineItems, iter.LineItem())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	return buildReceipt(s, lineItems), nil
}

// sessionParams builds the Stripe request for a session. Kept separate from
// the API call so the mapping is unit-testable.
func sessionParams(req SessionRequest) *stripe.CheckoutSessionParams {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.LineItems))
	for _, li := range req.LineItems {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name:        stripe.String(li.Name),
			Description: stripe.String(li.Description),
			Metadata: map[string]string{
				"catalogProductId": li.ProductID,
			},
		}
		if li.ImageURL != "" {
			productData.Images = stripe.StringSlice([]string{li.ImageURL})
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Quantity: stripe.Int64(li.Quantity),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(Currency),
				UnitAmount:  stripe.Int64(li.UnitAmountCents),
				ProductData: productData,
			},
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice(allowedShippingCountries),
		},
		PhoneNumberCollection: &stripe.CheckoutSessionPhoneNumberCollectionParams{
			Enabled: stripe.Bool(true),
		},
	}
	if req.ClientReference != "" {
		params.ClientReferenceID = stripe.String(req.ClientReference)
	}
	return params
}

// buildReceipt projects a session plus its line items into the receipt shape.
// Shipping details collected on the hosted page win over billing details.
func buildReceipt(s *stripe.CheckoutSession, lineItems []*stripe.LineItem) *models.Receipt {
	var shipping *stripe.CheckoutSessionCollectedInformationShippingDetails
	if s.CollectedInformation != nil {
		shipping = s.CollectedInformation.ShippingDetails
	}

	var name, email string
	if shipping != nil {
		name = shipping.Name
	}
	if s.CustomerDetails != nil {
		if name == "" {
			name = s.CustomerDetails.Name
		}
		email = s.CustomerDetails.Email
	}

	var addr *stripe.Address
	if shipping != nil && shipping.Address != nil {
		addr = shipping.Address
	} else if s.CustomerDetails != nil {
		addr = s.CustomerDetails.Address
	}

	items := make([]models.ReceiptItem, 0, len(lineItems))
	for _, li := range lineItems {
		description := li.Description
		if description == "" {
			description = "Item"
		}
		quantity := li.Quantity
		if quantity == 0 {
			quantity = 1
		}
		items = append(items, models.ReceiptItem{
			Description: description,
			Quantity:    quantity,
			AmountTotal: li.AmountTotal,
		})
	}

	currency := string(s.Currency)
	if currency == "" {
		currency = Currency
	}

	return &models.Receipt{
		PaymentStatus: string(s.PaymentStatus),
		CustomerName:  name,
		CustomerEmail: email,
		Address:       joinAddress(addr),
		Items:         items,
		AmountTotal:   s.AmountTotal,
		Currency:      currency,
	}
}

// joinAddress flattens an address into one display line, skipping empty
// fields so no doubled separators appear.
func joinAddress(a *stripe.Address) string {
	if a == nil {
		return ""
	}
	fields := []string{a.Line1, a.Line2, a.PostalCode, a.City, a.State, a.Country}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, ", ")
}
