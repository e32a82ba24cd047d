// Package catalog is the read-only gateway to the Sanity CMS holding the
// product catalog. Products are queried through the hosted GROQ query API and
// mapped to the API-stable shape (prices in cents, flattened image URL).
// Every call re-fetches; there is no local cache.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/accreation/storefront/internal/config"
	"github.com/accreation/storefront/internal/models"
	"github.com/accreation/storefront/internal/money"
)

// ErrNotConfigured signals a missing CMS project id. Detected lazily at
// request time so the rest of the API stays up on a partial deploy.
var ErrNotConfigured = errors.New("server not configured: SANITY_PROJECT_ID missing")

const (
	// DefaultFeaturedLimit applies when the caller supplies no usable limit.
	DefaultFeaturedLimit = 6
	// MaxFeaturedLimit caps how many featured products one request may ask for.
	MaxFeaturedLimit = 24
)

const productProjection = `{
  "id": _id,
  "title": name,
  description,
  price,
  category,
  "imageUrl": image.asset->url
}`

// Client queries the Sanity HTTP query API.
type Client struct {
	cfg        config.SanityConfig
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (used by tests and self-hosted
// deployments). The default is derived from the project id.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a catalog client for the configured Sanity project.
func NewClient(cfg config.SanityConfig, opts ...Option) *Client {
	c := &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.baseURL == "" && cfg.ProjectID != "" {
		c.baseURL = fmt.Sprintf("https://%s.api.sanity.io", cfg.ProjectID)
	}
	return c
}

// sanityProduct mirrors the projected document shape returned by the query
// API. Price stays in major units here; mapping to cents happens in toProduct.
type sanityProduct struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    string   `json:"imageUrl"`
	Category    string   `json:"category"`
}

// queryResponse is the single expected envelope of the query API.
type queryResponse struct {
	Result []sanityProduct `json:"result"`
}

// AllProducts returns the whole catalog, newest first.
func (c *Client) AllProducts(ctx context.Context) ([]models.Product, error) {
	query := `*[_type=="product"] | order(_createdAt desc) ` + productProjection
	return c.queryProducts(ctx, query, nil)
}

// FeaturedProducts returns the most recent products. The limit is clamped to
// [1, MaxFeaturedLimit].
func (c *Client) FeaturedProducts(ctx context.Context, limit int) ([]models.Product, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > MaxFeaturedLimit {
		limit = MaxFeaturedLimit
	}

	query := `*[_type=="product"] | order(_createdAt desc)[0...$limit] ` + productProjection
	return c.queryProducts(ctx, query, map[string]any{"limit": limit})
}

// ProductsByIDs returns the products matching the given ids. Ids with no
// matching product are silently omitted; callers decide whether that matters.
func (c *Client) ProductsByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	query := `*[_type=="product" && _id in $ids]` + productProjection
	return c.queryProducts(ctx, query, map[string]any{"ids": ids})
}

func (c *Client) queryProducts(ctx context.Context, query string, params map[string]any) ([]models.Product, error) {
	if c.cfg.ProjectID == "" {
		return nil, ErrNotConfigured
	}

	endpoint := fmt.Sprintf("%s/v%s/data/query/%s", c.baseURL, c.cfg.APIVersion, c.cfg.Dataset)

	values := url.Values{}
	values.Set("query", query)
	for k, v := range params {
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode query param %s: %w", k, err)
		}
		values.Set("$"+k, string(encoded))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+values.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.cfg.ReadToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.ReadToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query content store: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if len(body) > 0 {
			return nil, fmt.Errorf("content store error: %s", string(body))
		}
		return nil, fmt.Errorf("content store error: status %d", resp.StatusCode)
	}

	var decoded queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode content store response: %w", err)
	}

	products := make([]models.Product, 0, len(decoded.Result))
	for _, p := range decoded.Result {
		products = append(products, toProduct(p))
	}
	return products, nil
}

func toProduct(p sanityProduct) models.Product {
	var price float64
	if p.Price != nil {
		price = *p.Price
	}
	return models.Product{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		PriceCents:  money.ToCents(price),
		ImageURL:    p.ImageURL,
		Category:    p.Category,
	}
}
