package source

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/richard-senior/leaguestats/internal/logger"
	"github.com/richard-senior/leaguestats/pkg/league"
)

// Cache keeps the last loaded relation and reloads it only when the source's fingerprint
// changes. At most one reload runs at a time and concurrent callers share it.
type Cache struct {
	src   Source
	group singleflight.Group
	loads atomic.Int64

	mu          sync.RWMutex
	fingerprint string
	relation    *league.Relation
	message     string
}

func NewCache(src Source) *Cache {
	return &Cache{src: src}
}

// Source returns the underlying source.
func (c *Cache) Source() Source { return c.src }

// Loads counts how many times the source has actually been read.
func (c *Cache) Loads() int64 { return c.loads.Load() }

type snapshot struct {
	relation *league.Relation
	message  string
}

// Relation returns the current table and, when it could not be loaded, a message explaining
// why. The returned relation is shared and must not be modified.
func (c *Cache) Relation() (*league.Relation, string) {
	fp, err := c.src.Fingerprint()
	if err != nil {
		logger.Warn("Match table unavailable", err)
		return league.Empty(), Describe(err)
	}

	c.mu.RLock()
	if c.relation != nil && c.fingerprint == fp {
		rel, msg := c.relation, c.message
		c.mu.RUnlock()
		return rel, msg
	}
	c.mu.RUnlock()

	// one key: a refresh never overlaps another, so an older load cannot overwrite a newer one
	v, _, _ := c.group.Do("reload", func() (any, error) {
		cur, err := c.src.Fingerprint()
		if err != nil {
			logger.Warn("Match table unavailable", err)
			return snapshot{league.Empty(), Describe(err)}, nil
		}
		c.mu.RLock()
		if c.relation != nil && c.fingerprint == cur {
			s := snapshot{c.relation, c.message}
			c.mu.RUnlock()
			return s, nil
		}
		c.mu.RUnlock()

		c.loads.Add(1)
		rel, msg := LoadOrEmpty(c.src)
		c.mu.Lock()
		c.fingerprint, c.relation, c.message = cur, rel, msg
		c.mu.Unlock()
		return snapshot{rel, msg}, nil
	})
	s := v.(snapshot)
	return s.relation, s.message
}
