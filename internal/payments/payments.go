// Package payments wraps the Stripe hosted-checkout integration: creating
// one-time payment sessions from server-resolved line items, and projecting a
// completed session back into a display receipt. Stripe owns all session
// state; nothing is persisted here.
package payments

import "errors"

var (
	// ErrNotConfigured signals a missing Stripe secret key. Detected lazily
	// at request time, mirroring the catalog gateway.
	ErrNotConfigured = errors.New("server not configured: STRIPE_SECRET_KEY missing")

	// ErrNoSessionURL signals a created session that carries no redirect URL,
	// which leaves the client with nowhere to go.
	ErrNoSessionURL = errors.New("could not create checkout session")
)

// Currency is the single currency this storefront sells in.
const Currency = "eur"

// SessionRequest describes a hosted checkout session to create. Every unit
// amount comes from the catalog, never from the client.
type SessionRequest struct {
	LineItems       []SessionLineItem
	SuccessURL      string
	CancelURL       string
	ClientReference string
}

// SessionLineItem is one purchasable line of a session.
type SessionLineItem struct {
	ProductID       string
	Quantity        int64
	UnitAmountCents int64
	Name            string
	Description     string
	ImageURL        string
}

// Session is the created hosted checkout session. URL is where the client
// gets redirected to pay.
type Session struct {
	ID  string
	URL string
}
