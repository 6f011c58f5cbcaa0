package cache

import "sync"

// MemoryCache is an in-memory implementation of the Cache interface.
// Entries live only for the duration of the process.
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string]CachedResponse
}

// NewMemoryCache creates a new in-memory cache instance.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]CachedResponse),
	}
}

func (c *MemoryCache) Get(key string) (CachedResponse, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, exists := c.data[key]
	if !exists {
		return CachedResponse{}, false, nil
	}
	return cloneResponse(value), true, nil
}

// Put stores resp under key, overwriting any previous entry.
// The body and headers are copied so callers may reuse their buffers.
func (c *MemoryCache) Put(key string, resp CachedResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[key] = cloneResponse(resp)
	return nil
}

func (c *MemoryCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = make(map[string]CachedResponse)
	return nil
}

func (c *MemoryCache) Close() error {
	return nil
}

// Size returns the number of entries in the cache.
func (c *MemoryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.data)
}

func cloneResponse(resp CachedResponse) CachedResponse {
	out := resp
	if resp.Body != nil {
		out.Body = append([]byte(nil), resp.Body...)
	}
	if resp.Headers != nil {
		out.Headers = make(map[string]string, len(resp.Headers))
		for k, v := range resp.Headers {
			out.Headers[k] = v
		}
	}
	return out
}
