// sessionstore/redis_sessionstore.go

package sessionstore

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisSessionStore は Redis をバックエンドに使うセッションストアです。
// プロセスを跨いでセッションを持ち越せます。
type RedisSessionStore struct {
	client *redis.Client
	prefix string
}

// NewRedisSessionStore は Redis の接続文字列（"hostname:port" 等）を受け取り、ストアインスタンスを返します
func NewRedisSessionStore(redisAddr string) (*RedisSessionStore, error) {
	opts, err := redis.ParseURL(redisAddr)
	if err != nil {
		// もし "redis://..." 形式でない場合は単純に Addr として使う
		opts = &redis.Options{
			Addr:         redisAddr,
			MinIdleConns: 1,
			MaxRetries:   30,
			DialTimeout:  30 * time.Second,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			PoolSize:     10,
			PoolTimeout:  4 * time.Second,
			IdleTimeout:  180 * time.Second,
		}
	}

	return &RedisSessionStore{
		client: redis.NewClient(opts),
		prefix: "session:",
	}, nil
}

// Initialize は Redis 接続確認を行います。接続できるまで指数バックオフで再試行します。
func (r *RedisSessionStore) Initialize(ctx context.Context) error {
	log.Println("RedisSessionStore: initializing connection...")

	for i := 0; i < 30; i++ {
		if r.Ping(ctx) {
			log.Printf("RedisSessionStore: Ping successful on attempt %d", i+1)
			return nil
		}

		backoff := time.Duration(1000*(1<<uint(i))) * time.Millisecond
		if backoff > 30*time.Second {
			backoff = 30 * time.Second
		}
		log.Printf("RedisSessionStore: waiting %v before next attempt", backoff)

		select {
		case <-ctx.Done():
			log.Printf("RedisSessionStore: context cancelled during backoff: %v", ctx.Err())
			return ctx.Err()
		case <-time.After(backoff):
			continue
		}
	}

	return fmt.Errorf("failed to connect to Redis after 30 attempts")
}

// Get はキーの値を返します。存在しなければ空文字列を返します。
func (r *RedisSessionStore) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, r.prefix+key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis GET error: %w", err)
	}
	return val, nil
}

// Set はキーに値を保存します。
func (r *RedisSessionStore) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis SET error: %w", err)
	}
	return nil
}

// Remove はキーを削除します。存在しないキーでもエラーにしません。
func (r *RedisSessionStore) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis DEL error: %w", err)
	}
	return nil
}

// Ping は Redis が生きているかを確認します
func (r *RedisSessionStore) Ping(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.client.Ping(pingCtx).Result(); err != nil {
		log.Printf("RedisSessionStore: Ping failed with error: %v", err)
		return false
	}
	return true
}
