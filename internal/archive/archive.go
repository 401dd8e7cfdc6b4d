// Package archive persists backtest results to cold storage, either
// the local filesystem or an S3-compatible bucket.
package archive

import "context"

// Storage is the backend a run archive writes through.
type Storage interface {
	// Put stores data at the given key.
	Put(ctx context.Context, key string, data []byte) error

	// Get retrieves the data stored at the key.
	Get(ctx context.Context, key string) ([]byte, error)

	// List returns all keys under the prefix.
	List(ctx context.Context, prefix string) ([]string, error)

	// Exists reports whether any data is stored at the key.
	Exists(ctx context.Context, key string) (bool, error)

	// Remove deletes the data at the key.
	Remove(ctx context.Context, key string) error
}
