package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/weiawesome/wes-io-live/uid-service/internal/config"
)

type RedisLedger struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisLedger connects to redis and verifies the connection.
func NewRedisLedger(cfg config.RedisConfig, prefix string, ttl time.Duration) (*RedisLedger, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisLedgerWithClient(client, prefix, ttl), nil
}

// NewRedisLedgerWithClient wraps an existing client.
func NewRedisLedgerWithClient(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisLedger {
	return &RedisLedger{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (l *RedisLedger) BuildKey(profile, id string) string {
	return fmt.Sprintf("%s:%s:%s", l.prefix, profile, id)
}

func (l *RedisLedger) Claim(ctx context.Context, profile, id string) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.BuildKey(profile, id), time.Now().UnixMilli(), l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim id in redis: %w", err)
	}
	return ok, nil
}

func (l *RedisLedger) Close() error {
	return l.client.Close()
}
