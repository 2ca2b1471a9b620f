package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const invalidationChannel = "posadmin:cache:invalidate"

// RedisInvalidator fans invalidations out to peer instances through Redis
// pub/sub. Each instance applies the invalidation locally first, then
// publishes "<instanceID> <topic>"; the publisher's own subscription sees
// the message too, so consumers drop messages tagged with their own id to
// avoid applying the invalidation twice.
type RedisInvalidator struct {
	local      *LocalInvalidator
	client     *redis.Client
	instanceID string
	logger     *zap.Logger
}

// RedisInvalidatorConfig holds Redis connection configuration
type RedisInvalidatorConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisInvalidator connects to Redis and starts consuming peer
// invalidations until ctx is cancelled.
func NewRedisInvalidator(ctx context.Context, cfg RedisInvalidatorConfig, local *LocalInvalidator, logger *zap.Logger) (*RedisInvalidator, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	inv := &RedisInvalidator{
		local:      local,
		client:     client,
		instanceID: uuid.NewString(),
		logger:     logger,
	}
	go inv.consume(ctx)

	return inv, nil
}

// Invalidate applies the invalidation locally and publishes it to peers
func (i *RedisInvalidator) Invalidate(ctx context.Context, topics ...Topic) {
	i.local.Invalidate(ctx, topics...)

	for _, topic := range topics {
		if err := i.client.Publish(ctx, invalidationChannel, i.instanceID+" "+topic.String()).Err(); err != nil {
			// Peers miss this invalidation but their TTLs still bound staleness
			i.logger.Warn("Failed to publish cache invalidation",
				zap.String("topic", topic.String()),
				zap.Error(err),
			)
		}
	}
}

// consume applies invalidations published by peer instances
func (i *RedisInvalidator) consume(ctx context.Context) {
	sub := i.client.Subscribe(ctx, invalidationChannel)
	defer func() { _ = sub.Close() }()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			i.handleMessage(ctx, msg.Payload)
		}
	}
}

// handleMessage applies one published invalidation, skipping messages this
// instance published itself (it already invalidated locally).
func (i *RedisInvalidator) handleMessage(ctx context.Context, payload string) {
	origin, topic, ok := strings.Cut(payload, " ")
	if !ok || topic == "" {
		i.logger.Warn("Ignoring malformed cache invalidation message", zap.String("payload", payload))
		return
	}
	if origin == i.instanceID {
		return
	}
	i.local.Invalidate(ctx, Topic(topic))
}

// Close releases the Redis connection
func (i *RedisInvalidator) Close() error {
	return i.client.Close()
}
