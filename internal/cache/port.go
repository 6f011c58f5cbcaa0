package cache

import "time"

// CachedResponse is a stored HTTP response keyed by its request key.
type CachedResponse struct {
	URL        string
	StatusCode int
	Headers    map[string]string
	Body       []byte
	FetchedAt  time.Time
}

// Cache is the port the fetch client reads and writes responses through.
// Adapters decide where entries live; an entry stays until Clear is called.
type Cache interface {
	// Get returns the stored response for key. The boolean is false on a miss.
	Get(key string) (CachedResponse, bool, error)

	// Put stores resp under key, overwriting any previous entry.
	Put(key string, resp CachedResponse) error

	// Clear removes every entry.
	Clear() error

	Close() error
}
