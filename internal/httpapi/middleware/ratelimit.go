package middleware

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter provides a fixed-window rate limiter backed by Redis.
type RateLimiter struct {
	client    *redis.Client
	namespace string
}

func NewRateLimiter(client *redis.Client, namespace string) *RateLimiter {
	if namespace == "" {
		namespace = "calmora"
	}
	return &RateLimiter{client: client, namespace: namespace}
}

func (l *RateLimiter) key(bucket, id string, window time.Duration) string {
	return fmt.Sprintf("%s:rl:%s:%s:%d", l.namespace, bucket, id, int(window.Seconds()))
}

// Limit applies a fixed-window limit per identifier function.
func (l *RateLimiter) Limit(bucket string, max int, window time.Duration, identify func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if identify == nil || l.client == nil {
				next.ServeHTTP(w, r)
				return
			}
			id := identify(r)
			if id == "" {
				next.ServeHTTP(w, r)
				return
			}
			key := l.key(bucket, id, window)
			count, err := l.client.Incr(r.Context(), key).Result()
			if err == nil && count == 1 {
				_ = l.client.Expire(r.Context(), key, window).Err()
			}
			if err != nil || int(count) > max {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"rate_limited"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ByUser identifies requests by the authenticated subject, falling back to
// the remote address for unauthenticated callers.
func ByUser(r *http.Request) string {
	if claims, ok := ClaimsFromContext(r.Context()); ok {
		return claims.Subject
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
