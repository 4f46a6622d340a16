package store

import (
	"sync"
	"sync/atomic"
)

// cache holds exactly one generation per configuration directory,
// per spec.md §4.A ("the cache holds exactly one generation"). Rebuilds
// run while mu is held, so concurrent rebuilds of one directory are
// serialised; the result is swapped in via an atomic pointer, and a
// reader that finds a generation with current fingerprints returns it
// without taking mu (spec.md §5, "reader-preferring lock").
type cache struct {
	mu      sync.Mutex
	current atomic.Pointer[Generation]
}

var caches sync.Map // dir string -> *cache

func cacheFor(dir string) *cache {
	actual, _ := caches.LoadOrStore(dir, &cache{})
	return actual.(*cache)
}

// getOrBuild returns the cached generation for dir, rebuilding only when
// the source fingerprints changed or refresh is set.
func (c *cache) getOrBuild(dir string, refresh bool) (*Generation, error) {
	if !refresh {
		if gen := c.current.Load(); gen != nil && gen.Fingerprints == fingerprints(dir) {
			return gen, nil
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Re-check after acquiring the lock: another goroutine may have
	// already rebuilt while we were waiting.
	if !refresh {
		if gen := c.current.Load(); gen != nil && gen.Fingerprints == fingerprints(dir) {
			return gen, nil
		}
	}

	gen, err := build(dir)
	if err != nil {
		return nil, err
	}

	c.current.Store(gen)
	return gen, nil
}
