package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestRedisInvalidator() (*RedisInvalidator, *LocalInvalidator, *QueryCache) {
	qc := newTestCache()
	local := NewLocalInvalidator(qc, zap.NewNop())
	inv := &RedisInvalidator{
		local:      local,
		instanceID: "instance-a",
		logger:     zap.NewNop(),
	}
	return inv, local, qc
}

func TestRedisInvalidator_HandleMessage(t *testing.T) {
	t.Run("peer message invalidates locally", func(t *testing.T) {
		inv, local, qc := newTestRedisInvalidator()
		qc.Set(TopicProducts, 1)
		refetched := 0
		local.Subscribe(TopicProducts, func(ctx context.Context) { refetched++ })

		inv.handleMessage(context.Background(), "instance-b "+TopicProducts.String())

		_, ok := qc.Get(TopicProducts)
		assert.False(t, ok)
		assert.Equal(t, 1, refetched)
	})

	t.Run("own echo is skipped", func(t *testing.T) {
		inv, local, qc := newTestRedisInvalidator()
		qc.Set(TopicProducts, 1)
		refetched := 0
		local.Subscribe(TopicProducts, func(ctx context.Context) { refetched++ })

		inv.handleMessage(context.Background(), "instance-a "+TopicProducts.String())

		_, ok := qc.Get(TopicProducts)
		assert.True(t, ok)
		assert.Equal(t, 0, refetched)
	})

	t.Run("malformed payload is ignored", func(t *testing.T) {
		inv, _, qc := newTestRedisInvalidator()
		qc.Set(TopicProducts, 1)

		inv.handleMessage(context.Background(), TopicProducts.String())
		inv.handleMessage(context.Background(), "instance-b ")

		_, ok := qc.Get(TopicProducts)
		assert.True(t, ok)
	})
}
