package cart

import (
	"encoding/json"
	"fmt"
	"os"
)

// storageVersion is bumped when the serialized cart shape changes. A version
// mismatch on load rehydrates an empty cart instead of failing.
const storageVersion = 1

type envelope struct {
	Version int    `json:"version"`
	Items   []Item `json:"items"`
}

// FilePersister serializes the cart to a JSON file under a versioned
// envelope, the file-system analog of the browser's session storage key.
type FilePersister struct {
	path string
}

// NewFilePersister creates a persister writing to the given path.
func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

// Save writes the full cart contents.
func (p *FilePersister) Save(items []Item) error {
	data, err := json.Marshal(envelope{Version: storageVersion, Items: items})
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

// Load restores the cart. A missing file or a version mismatch yields an
// empty cart.
func (p *FilePersister) Load() ([]Item, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	if env.Version != storageVersion {
		return nil, nil
	}
	return env.Items, nil
}
