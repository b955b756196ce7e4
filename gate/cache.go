package gate

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"

	"github.com/zeta1999/quantum-optimization/tensor"
)

// DefaultCacheSize bounds the number of matrices a Cache keeps.
const DefaultCacheSize = 256

type cacheKey struct {
	kind  byte // 'z' for star Ising, 'x' for mixer layers
	angle float64
	n     int
}

// Cache memoises the star Ising and mixer matrices of a layer. A network
// with L layers only ever needs a handful of distinct (angle, arity) pairs
// but asks for them once per node. Cached tensors are immutable, so they can
// be shared between goroutines.
type Cache struct {
	entries *lru.Cache[cacheKey, *tensor.Dense]

	// OnLookup, if set, is called on every lookup with the matrix kind
	// ("ising" or "mixer") and whether it was a hit.
	OnLookup func(kind string, hit bool)
}

// NewCache returns a cache holding at most size matrices.
func NewCache(size int) (*Cache, error) {
	entries, err := lru.New[cacheKey, *tensor.Dense](size)
	if err != nil {
		return nil, errors.Wrap(err, "new gate cache")
	}
	return &Cache{entries: entries}, nil
}

// StarIsing returns the cached StarIsing(gamma, arity).
func (c *Cache) StarIsing(gamma float64, arity int) (*tensor.Dense, error) {
	key := cacheKey{kind: 'z', angle: gamma, n: arity}
	if m, ok := c.get("ising", key); ok {
		return m, nil
	}
	m, err := StarIsing(gamma, arity)
	if err != nil {
		return nil, err
	}
	c.entries.Add(key, m)
	return m, nil
}

// MixerLayer returns the cached MixerLayer(beta, n).
func (c *Cache) MixerLayer(beta float64, n int) *tensor.Dense {
	key := cacheKey{kind: 'x', angle: beta, n: n}
	if m, ok := c.get("mixer", key); ok {
		return m
	}
	m := MixerLayer(beta, n)
	c.entries.Add(key, m)
	return m
}

// Len returns the number of cached matrices.
func (c *Cache) Len() int {
	return c.entries.Len()
}

func (c *Cache) get(kind string, key cacheKey) (*tensor.Dense, bool) {
	m, ok := c.entries.Get(key)
	if c.OnLookup != nil {
		c.OnLookup(kind, ok)
	}
	return m, ok
}
