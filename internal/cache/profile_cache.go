package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/internfinder/internfinder-client/internal/api"
	"github.com/internfinder/internfinder-client/pkg/metrics"
)

const (
	cacheName   = "profile_snapshot"
	snapshotKey = "snapshot"
)

// ProfileCache keeps the last fetched profile snapshot for a short TTL so
// that screens rendered back to back reuse one fetch. Any write to the
// profile, skills or resume invalidates it.
type ProfileCache struct {
	store *gocache.Cache
}

// NewProfileCache creates a cache with the given TTL.
func NewProfileCache(ttl time.Duration) *ProfileCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &ProfileCache{
		store: gocache.New(ttl, 2*ttl),
	}
}

// Get returns the cached snapshot, or nil on a miss.
func (c *ProfileCache) Get() *api.ProfileSnapshot {
	if v, ok := c.store.Get(snapshotKey); ok {
		metrics.CacheHits.WithLabelValues(cacheName).Inc()
		return v.(*api.ProfileSnapshot)
	}
	metrics.CacheMisses.WithLabelValues(cacheName).Inc()
	return nil
}

// Set stores a fresh snapshot.
func (c *ProfileCache) Set(snap *api.ProfileSnapshot) {
	c.store.Set(snapshotKey, snap, gocache.DefaultExpiration)
}

// Invalidate drops the cached snapshot.
func (c *ProfileCache) Invalidate() {
	c.store.Delete(snapshotKey)
}
