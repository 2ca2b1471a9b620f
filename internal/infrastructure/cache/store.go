package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Topic names a cached query result. Mutations invalidate topics, never
// individual entries, so dependent views always refetch as a unit.
type Topic string

const (
	TopicProducts  Topic = "products"
	TopicSales     Topic = "sales"
	TopicReturns   Topic = "returns"
	TopicDashboard Topic = "dashboard"
)

// String returns the string representation of Topic
func (t Topic) String() string {
	return string(t)
}

// QueryCache is the in-process store for upstream query results, keyed by
// topic. Entries expire on their own TTL; invalidation drops them early.
type QueryCache struct {
	store *gocache.Cache
}

// NewQueryCache creates a query cache with the given default TTL and
// janitor interval
func NewQueryCache(defaultTTL, cleanupInterval time.Duration) *QueryCache {
	return &QueryCache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get returns the cached value for a topic, if present and unexpired
func (c *QueryCache) Get(topic Topic) (any, bool) {
	return c.store.Get(topic.String())
}

// Set stores a value under a topic with the cache's default TTL
func (c *QueryCache) Set(topic Topic, value any) {
	c.store.Set(topic.String(), value, gocache.DefaultExpiration)
}

// SetWithTTL stores a value under a topic with an explicit TTL
func (c *QueryCache) SetWithTTL(topic Topic, value any, ttl time.Duration) {
	c.store.Set(topic.String(), value, ttl)
}

// Drop removes the given topics from the cache
func (c *QueryCache) Drop(topics ...Topic) {
	for _, topic := range topics {
		c.store.Delete(topic.String())
	}
}

// Flush removes every cached entry
func (c *QueryCache) Flush() {
	c.store.Flush()
}
