package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitMessage = "Too many requests from this IP, please try again later."

// CounterStore counts hits per key within a fixed window and reports
// whether the caller is still under the limit.
type CounterStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimiter applies a per-client-IP fixed window to paths under the
// API prefix. There are no per-user overrides.
type RateLimiter struct {
	store  CounterStore
	limit  int
	window time.Duration
	prefix string
}

func NewRateLimiter(store CounterStore, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		store:  store,
		limit:  limit,
		window: window,
		prefix: "/api/",
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.limit <= 0 || !strings.HasPrefix(r.URL.Path, rl.prefix) {
			next.ServeHTTP(w, r)
			return
		}
		allowed, err := rl.store.Allow(r.Context(), clientIP(r), rl.limit, rl.window)
		if err != nil {
			// A broken limiter store must not take the API down.
			next.ServeHTTP(w, r)
			return
		}
		if !allowed {
			http.Error(w, rateLimitMessage, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// MemoryCounterStore is the in-process fixed-window store used when no
// shared store is configured.
type MemoryCounterStore struct {
	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	count   int
	resetAt time.Time
}

func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{windows: make(map[string]*window)}
}

func (s *MemoryCounterStore) Allow(_ context.Context, key string, limit int, d time.Duration) (bool, error) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok || now.After(w.resetAt) {
		s.pruneLocked(now)
		s.windows[key] = &window{count: 1, resetAt: now.Add(d)}
		return true, nil
	}
	w.count++
	return w.count <= limit, nil
}

func (s *MemoryCounterStore) pruneLocked(now time.Time) {
	for key, w := range s.windows {
		if now.After(w.resetAt) {
			delete(s.windows, key)
		}
	}
}

// RedisCounterStore shares the window counters across instances via
// INCR with a window-length expiry on first hit.
type RedisCounterStore struct {
	client *redis.Client
}

func NewRedisCounterStore(addr, password string) *RedisCounterStore {
	return &RedisCounterStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

func (s *RedisCounterStore) Allow(ctx context.Context, key string, limit int, d time.Duration) (bool, error) {
	key = "tunegen:ratelimit:" + key
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := s.client.Expire(ctx, key, d).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(limit), nil
}
