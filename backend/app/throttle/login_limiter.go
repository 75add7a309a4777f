// Package throttle limits repeated failed logins per username using redis
// counters that expire after a fixed window.
package throttle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrTooManyAttempts = errors.New("too many failed login attempts")

const keyPrefix = "todo-guard:login-fail:"

type LoginLimiter struct {
	rdb    *redis.Client
	max    int
	window time.Duration
}

// NewLoginLimiter returns a limiter backed by rdb. A nil client gives a
// limiter that never blocks.
func NewLoginLimiter(rdb *redis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginLimiter{rdb: rdb, max: maxAttempts, window: window}
}

func (l *LoginLimiter) Enabled() bool { return l != nil && l.rdb != nil }

func key(username string) string { return keyPrefix + strings.ToLower(username) }

// Check returns ErrTooManyAttempts once the username has used up its failures
// for the current window.
func (l *LoginLimiter) Check(ctx context.Context, username string) error {
	if !l.Enabled() {
		return nil
	}
	n, err := l.rdb.Get(ctx, key(username)).Int()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read login counter: %w", err)
	}
	if n >= l.max {
		return ErrTooManyAttempts
	}
	return nil
}

// Fail records one failed attempt. The window starts at the first failure.
func (l *LoginLimiter) Fail(ctx context.Context, username string) error {
	if !l.Enabled() {
		return nil
	}
	k := key(username)
	n, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return fmt.Errorf("record login failure: %w", err)
	}
	if n == 1 {
		if err := l.rdb.Expire(ctx, k, l.window).Err(); err != nil {
			return fmt.Errorf("record login failure: %w", err)
		}
	}
	return nil
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, username string) error {
	if !l.Enabled() {
		return nil
	}
	if err := l.rdb.Del(ctx, key(username)).Err(); err != nil {
		return fmt.Errorf("reset login counter: %w", err)
	}
	return nil
}
