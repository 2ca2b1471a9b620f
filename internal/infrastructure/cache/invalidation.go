package cache

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Invalidator notifies named topics that their cached results are stale.
// Successful mutations call this instead of patching cached data locally;
// dependent views refetch on their next read.
type Invalidator interface {
	Invalidate(ctx context.Context, topics ...Topic)
}

// RefetchFunc is invoked when a subscribed topic is invalidated, giving
// the subscriber a chance to eagerly repopulate its view.
type RefetchFunc func(ctx context.Context)

// LocalInvalidator drops topics from the in-process query cache and
// notifies registered subscribers synchronously, in registration order.
type LocalInvalidator struct {
	store  *QueryCache
	logger *zap.Logger

	mu          sync.RWMutex
	subscribers map[Topic][]RefetchFunc
}

// NewLocalInvalidator creates an invalidator over the given query cache
func NewLocalInvalidator(store *QueryCache, logger *zap.Logger) *LocalInvalidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalInvalidator{
		store:       store,
		logger:      logger,
		subscribers: make(map[Topic][]RefetchFunc),
	}
}

// Subscribe registers a refetch hook for a topic
func (i *LocalInvalidator) Subscribe(topic Topic, fn RefetchFunc) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.subscribers[topic] = append(i.subscribers[topic], fn)
}

// Invalidate drops the topics from the cache and runs their refetch hooks
func (i *LocalInvalidator) Invalidate(ctx context.Context, topics ...Topic) {
	i.store.Drop(topics...)

	i.mu.RLock()
	var hooks []RefetchFunc
	for _, topic := range topics {
		hooks = append(hooks, i.subscribers[topic]...)
	}
	i.mu.RUnlock()

	for _, fn := range hooks {
		fn(ctx)
	}

	names := make([]string, 0, len(topics))
	for _, topic := range topics {
		names = append(names, topic.String())
	}
	i.logger.Debug("Cache topics invalidated", zap.Strings("topics", names))
}
