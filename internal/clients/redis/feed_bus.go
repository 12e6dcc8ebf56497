package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/bookkeeper-backend/internal/pkg/logger"
	"github.com/yungbote/bookkeeper-backend/internal/realtime"
)

// FeedBus is the publish side of the social feed collaborator. The consumer
// (feed fan-out, notifications) lives outside this service.
type FeedBus interface {
	Publish(ctx context.Context, ev realtime.FeedEvent) error
	Close() error
}

type feedBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

func NewFeedBus(log *logger.Logger) (FeedBus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ch := strings.TrimSpace(os.Getenv("REDIS_FEED_CHANNEL"))
	if ch == "" {
		ch = "feed"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &feedBus{
		log:     log.With("service", "RedisFeedBus"),
		rdb:     rdb,
		channel: ch,
	}, nil
}

func (b *feedBus) Publish(ctx context.Context, ev realtime.FeedEvent) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("redis feed bus not initialized")
	}
	raw, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal feed event: %w", err)
	}
	if err := b.rdb.Publish(ctx, b.channel, raw).Err(); err != nil {
		return fmt.Errorf("publish feed event: %w", err)
	}
	return nil
}

func (b *feedBus) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}
