package store

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Redis はRedisをバックエンドとするストア。
// go-redisのクライアントは内部にコネクションプールを持つため、
// 1つのハンドルを全リクエストで共有する。
type Redis struct {
	client *redis.Client
}

// NewRedis はRedisクライアントを生成する。
// 接続は遅延して確立されるため、ここではネットワークに触れない。
func NewRedis(cfg RedisConfig) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Password:     cfg.Password,
			DB:           cfg.DB,
			DialTimeout:  cfg.DialTimeout,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			// リトライはしない
			MaxRetries: -1,
		}),
	}
}

// Addr は接続先アドレスを返す。
func (r *Redis) Addr() string {
	return r.client.Options().Addr
}

// Get はRedisのGETを実行する。
func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis GET: %w", err)
	}
	return v, nil
}

// Set はRedisのSETを有効期限なしで実行する。
func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis SET: %w", err)
	}
	return nil
}

// Ping はRedisのPINGを実行する。
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis PING: %w", err)
	}
	return nil
}

// Close はコネクションプールを閉じる。
func (r *Redis) Close() error {
	return r.client.Close()
}
