// Package cart is the client-side shopping cart: an ordered aggregate of
// lines keyed by product id, with persistence delegated to an injectable
// hook invoked after every mutation. It holds advisory state only; prices
// are re-resolved server-side at checkout.
package cart

import "sync"

// Item is one cart line. Title, price and image are a snapshot taken when
// the product was added and are not re-validated against the catalog.
type Item struct {
	ProductID  string `json:"productId"`
	Title      string `json:"title"`
	PriceCents int64  `json:"priceCents"`
	ImageURL   string `json:"imageUrl,omitempty"`
	Quantity   int    `json:"quantity"`
}

// Persister saves and restores the full cart contents. Save runs
// synchronously after each mutation.
type Persister interface {
	Save(items []Item) error
	Load() ([]Item, error)
}

// Store is an explicit cart state container. All methods are safe for
// concurrent use.
type Store struct {
	mu      sync.Mutex
	items   []Item
	persist Persister
}

// NewStore creates a cart store, rehydrating from the persister when one is
// given. A nil persister keeps the cart purely in memory.
func NewStore(persist Persister) (*Store, error) {
	s := &Store{persist: persist}
	if persist != nil {
		items, err := persist.Load()
		if err != nil {
			return nil, err
		}
		s.items = items
	}
	return s, nil
}

// AddItem merges the given product into the cart: an existing line for the
// same product id has the quantity added, otherwise a new line is appended.
// Quantity is clamped to at least 1.
func (s *Store) AddItem(item Item, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == item.ProductID {
			s.items[i].Quantity += quantity
			return s.save()
		}
	}

	item.Quantity = quantity
	s.items = append(s.items, item)
	return s.save()
}

// SetQuantity replaces a line's quantity. Zero or below removes the line.
func (s *Store) SetQuantity(productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(productID)
		return s.save()
	}

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			return s.save()
		}
	}
	return s.save()
}

// RemoveItem deletes a line if present; removing an absent id is a no-op.
func (s *Store) RemoveItem(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(productID)
	return s.save()
}

// Clear empties the whole cart. Called once a receipt has been retrieved for
// a completed checkout.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	return s.save()
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// ItemsCount returns the total number of units across all lines.
func (s *Store) ItemsCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// TotalCents returns the cart total, recomputed on demand.
func (s *Store) TotalCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, item := range s.items {
		total += item.PriceCents * int64(item.Quantity)
	}
	return total
}

func (s *Store) removeLocked(productID string) {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

func (s *Store) save() error {
	if s.persist == nil {
		return nil
	}
	items := make([]Item, len(s.items))
	copy(items, s.items)
	return s.persist.Save(items)
}
