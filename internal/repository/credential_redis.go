package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type redisCredentialRepository struct {
	cmd redis.Cmdable
	key string
}

// NewRedisCredentialRepository stores the slot under prefix+slot with no TTL.
func NewRedisCredentialRepository(cmd redis.Cmdable, prefix, slot string) CredentialRepository {
	return &redisCredentialRepository{cmd: cmd, key: prefix + slot}
}

func (r *redisCredentialRepository) Save(ctx context.Context, credential string) error {
	if err := r.cmd.Set(ctx, r.key, credential, 0).Err(); err != nil {
		return fmt.Errorf("save credential %q: %w", r.key, err)
	}
	return nil
}

func (r *redisCredentialRepository) Load(ctx context.Context) (string, bool, error) {
	credential, err := r.cmd.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load credential %q: %w", r.key, err)
	}
	return credential, true, nil
}

func (r *redisCredentialRepository) Clear(ctx context.Context) error {
	if err := r.cmd.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("clear credential %q: %w", r.key, err)
	}
	return nil
}
