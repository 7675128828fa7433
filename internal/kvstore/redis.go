package kvstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionTTL joue le rôle de la fermeture d'onglet : une session inactive
// pendant 24h disparaît avec tout son scope.
const SessionTTL = 24 * time.Hour

// RedisStore implémente Store au-dessus de Redis. Le préfixe délimite le
// scope : vide pour le durable, "session:<sid>:" pour une session.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewDurable retourne le scope durable (clés plates, pas d'expiration).
func NewDurable(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// NewSession retourne le scope d'une session donnée. Chaque écriture
// rafraîchit le TTL de la clé.
func NewSession(client *redis.Client, sessionID string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "session:" + sessionID + ":",
		ttl:    SessionTTL,
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.prefix+key, value, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
