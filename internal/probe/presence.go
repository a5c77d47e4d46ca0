package probe

import "sync"

// presenceCache memoizes dependency checks per component ID.
// The zero value is ready to use.
type presenceCache struct {
	mu     sync.Mutex
	values map[string]bool
}

// computeIfAbsent returns the stored value for key, calling compute and
// storing its result on first use. compute runs under the lock, so
// concurrent callers for the same key wait for a single computation.
func (c *presenceCache) computeIfAbsent(key string, compute func() bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.values[key]; ok {
		return v
	}
	if c.values == nil {
		c.values = make(map[string]bool)
	}
	v := compute()
	c.values[key] = v
	return v
}
