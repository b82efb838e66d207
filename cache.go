package smc

import (
	"sync"

	"github.com/zeebo/xxh3"

	"github.com/macsmc/smc/wire"
)

// infoCacheShards spreads the metadata cache over independent locks. The
// controller's key space is tiny; contention, not capacity, sizes this.
const infoCacheShards = 8

// infoCache holds key metadata for the life of a Client. Metadata is
// constant while the controller is up, so entries never expire.
type infoCache struct {
	shards [infoCacheShards]infoCacheShard
}

type infoCacheShard struct {
	mu      sync.RWMutex
	entries map[string]wire.KeyInfo
}

func newInfoCache() *infoCache {
	c := &infoCache{}
	for i := range c.shards {
		c.shards[i].entries = make(map[string]wire.KeyInfo)
	}
	return c
}

func (c *infoCache) shard(key string) *infoCacheShard {
	return &c.shards[xxh3.HashString(key)%infoCacheShards]
}

func (c *infoCache) get(key string) (wire.KeyInfo, bool) {
	s := c.shard(key)
	s.mu.RLock()
	info, ok := s.entries[key]
	s.mu.RUnlock()
	return info, ok
}

func (c *infoCache) put(key string, info wire.KeyInfo) {
	s := c.shard(key)
	s.mu.Lock()
	s.entries[key] = info
	s.mu.Unlock()
}

func (c *infoCache) len() int {
	n := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.RLock()
		n += len(s.entries)
		s.mu.RUnlock()
	}
	return n
}
