package revocation

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store tracks revoked access-token IDs (jti) in Redis. Entries expire
// together with the token they revoke, so the set stays bounded.
type Store struct {
	client    *redis.Client
	namespace string
}

func New(client *redis.Client, namespace string) *Store {
	if namespace == "" {
		namespace = "calmora"
	}
	return &Store{client: client, namespace: namespace}
}

func (s *Store) key(jti string) string {
	return fmt.Sprintf("%s:revoked:jti:%s", s.namespace, jti)
}

// Revoke marks a jti as revoked until its token would have expired.
func (s *Store) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Already expired; nothing to revoke.
		return nil
	}
	if err := s.client.Set(ctx, s.key(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke jti: %w", err)
	}
	return nil
}

// IsRevoked reports whether the jti has been revoked.
func (s *Store) IsRevoked(ctx context.Context, jti string) (bool, error) {
	_, err := s.client.Get(ctx, s.key(jti)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check jti: %w", err)
	}
	return true, nil
}
