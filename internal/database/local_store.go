package database

import (
	"fmt"

	"github.com/cockroachdb/pebble"
)

// OpenLocalStore opens (creating if needed) the pebble key-value store at
// path. opts may be nil.
func OpenLocalStore(path string, opts *pebble.Options) (*pebble.DB, error) {
	if opts == nil {
		opts = &pebble.Options{}
	}
	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	return db, nil
}
