package models

// Product is the API-stable projection of a catalog record sourced from the
// CMS. Prices are integer cents; the CMS itself stores major units.
type Product struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Category    string `json:"category,omitempty"`
}
