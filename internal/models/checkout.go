package models

// CheckoutRequest is the untrusted client payload for checkout. It carries
// product references and quantities only; prices are always re-resolved
// server-side from the catalog.
type CheckoutRequest struct {
	Items []CheckoutItem `json:"items"`
}

// CheckoutItem is a single requested cart line.
type CheckoutItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CheckoutResponse carries the hosted checkout redirect URL.
type CheckoutResponse struct {
	URL string `json:"url"`
}
