package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	throttleWindow      = 15 * time.Minute
	throttleMaxFailures = 5
)

// LoginThrottle counts failed login attempts per CPF in Redis.
// Key format: login_fail:<cpf>, expiring after throttleWindow.
type LoginThrottle struct {
	client *redis.Client
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
func NewLoginThrottle(client *redis.Client) *LoginThrottle {
	return &LoginThrottle{client: client}
}

// TooMany reports whether the CPF has exhausted its failed attempts.
func (t *LoginThrottle) TooMany(ctx context.Context, cpf string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(cpf)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n >= throttleMaxFailures, nil
}

// RecordFailure counts one failed attempt; the window restarts on the first
// failure and survives until it expires or Reset runs.
func (t *LoginThrottle) RecordFailure(ctx context.Context, cpf string) error {
	key := t.key(cpf)
	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, throttleWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("throttle record: %w", err)
	}
	return nil
}

// Reset clears the failure count after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, cpf string) error {
	return t.client.Del(ctx, t.key(cpf)).Err()
}

func (t *LoginThrottle) key(cpf string) string {
	return "login_fail:" + cpf
}
