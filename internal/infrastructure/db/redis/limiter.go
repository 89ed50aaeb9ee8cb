package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 5
	defaultWindow      = 15 * time.Minute
)

// LoginLimiter counts failed logins per email in Redis.
// Key format: login:fail:<email>, expiring one window after the first failure.
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginLimiter creates a LoginLimiter. Non-positive settings fall back to
// 5 attempts per 15 minutes.
func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginLimiter{client: client, maxAttempts: maxAttempts, window: window}
}

// Allowed reports whether email is still under the failure threshold.
func (l *LoginLimiter) Allowed(ctx context.Context, email string) (bool, error) {
	n, err := l.client.Get(ctx, failureKey(email)).Int()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("login limiter get: %w", err)
	}
	return n < l.maxAttempts, nil
}

// RecordFailure increments the counter. The window starts on the first
// failure; INCR and EXPIRE NX share one MULTI so a counter never exists
// without an expiry. A counter left without one is given a window here.
func (l *LoginLimiter) RecordFailure(ctx context.Context, email string) error {
	key := failureKey(email)
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, l.window)
		return nil
	})
	if err != nil {
		return fmt.Errorf("login limiter record: %w", err)
	}
	return nil
}

// Reset forgets the failures recorded for email.
func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	if err := l.client.Del(ctx, failureKey(email)).Err(); err != nil {
		return fmt.Errorf("login limiter reset: %w", err)
	}
	return nil
}

func failureKey(email string) string {
	return "login:fail:" + email
}
