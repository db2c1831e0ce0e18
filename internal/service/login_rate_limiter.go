package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginRateLimiter limita intentos de login por cuenta dentro de una ventana.
type LoginRateLimiter interface {
	Allow(ctx context.Context, key string) bool
}

const redisLoginAllowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

type redisLoginRateLimiter struct {
	client redisEvaler
	window time.Duration
	max    int
	prefix string
}

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

func NewRedisLoginRateLimiter(client *redis.Client, window time.Duration, max int) LoginRateLimiter {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &redisLoginRateLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "login:rl:",
	}
}

// Allow cuenta el intento y decide; si redis falla, deja pasar.
func (l *redisLoginRateLimiter) Allow(ctx context.Context, key string) bool {
	if l == nil || l.client == nil {
		return true
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}
	seconds := int(l.window.Seconds())
	if seconds <= 0 {
		seconds = 60
	}
	res, err := l.client.Eval(ctx, redisLoginAllowScript, []string{l.prefix + key}, seconds).Result()
	if err != nil {
		return true
	}
	current, ok := res.(int64)
	if !ok {
		return true
	}
	return current <= int64(l.max)
}
