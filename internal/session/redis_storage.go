package session

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// RedisStorage keeps the durable session replica in Redis under
// session:<namespace>:<key>. One namespace per client runtime.
type RedisStorage struct {
	client goredis.Cmdable
	prefix string
}

func NewRedisStorage(client goredis.Cmdable, namespace string) *RedisStorage {
	return &RedisStorage{
		client: client,
		prefix: "session:" + namespace + ":",
	}
}

func (r *RedisStorage) key(name string) string {
	return r.prefix + name
}

func (r *RedisStorage) Identity(ctx context.Context) (*Identity, error) {
	val, err := r.client.Get(ctx, r.key(keyIdentity)).Result()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var identity Identity
	if err := json.Unmarshal([]byte(val), &identity); err != nil {
		return nil, fmt.Errorf("session: unmarshal identity: %w", err)
	}
	return &identity, nil
}

func (r *RedisStorage) AccessToken(ctx context.Context) (string, error) {
	return r.getString(ctx, keyAccessToken)
}

func (r *RedisStorage) RefreshToken(ctx context.Context) (string, error) {
	return r.getString(ctx, keyRefreshToken)
}

func (r *RedisStorage) getString(ctx context.Context, name string) (string, error) {
	val, err := r.client.Get(ctx, r.key(name)).Result()
	if err == goredis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *RedisStorage) SaveLogin(ctx context.Context, identity *Identity, accessToken, refreshToken string) error {
	if identity == nil || accessToken == "" {
		return fmt.Errorf("session: missing identity or access token")
	}

	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("session: marshal identity: %w", err)
	}

	// No TTL on the durable copy: token validity is bounded upstream and
	// enforced by verification on reload, not by storage expiry.
	if err := r.client.Set(ctx, r.key(keyIdentity), data, 0).Err(); err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(keyAccessToken), accessToken, 0).Err(); err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(keyRefreshToken), refreshToken, 0).Err()
}

func (r *RedisStorage) SaveProfile(ctx context.Context, identity *Identity, accessToken string) error {
	if identity == nil || accessToken == "" {
		return fmt.Errorf("session: missing identity or access token")
	}

	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("session: marshal identity: %w", err)
	}

	if err := r.client.Set(ctx, r.key(keyIdentity), data, 0).Err(); err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(keyAccessToken), accessToken, 0).Err()
}

func (r *RedisStorage) Clear(ctx context.Context) error {
	return r.client.Del(ctx,
		r.key(keyIdentity),
		r.key(keyAccessToken),
		r.key(keyRefreshToken),
	).Err()
}
