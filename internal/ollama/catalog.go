package ollama

import "sync"

// catalog holds the cached model list and connection state. Updates
// replace the whole slice, never mutate it in place, so a reader holding
// a copy is never affected by a concurrent refresh.
type catalog struct {
	mu    sync.RWMutex
	names []string
	up    bool
}

func newCatalog() *catalog {
	return &catalog{}
}

func (c *catalog) replace(names []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names = names
	c.up = true
}

func (c *catalog) disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = false
}

func (c *catalog) connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.up
}

func (c *catalog) models() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}
