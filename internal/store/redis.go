package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Key pattern: spelldraft:session:{code}
	sessionKeyPrefix = "spelldraft:session:"
	defaultTTL       = 24 * time.Hour
)

type RedisConfig struct {
	Client redis.UniversalClient
	TTL    time.Duration
}

func (c *RedisConfig) Validate() error {
	if c.Client == nil {
		return errors.New("redis client is required")
	}
	return nil
}

type redisRepository struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}
	return &redisRepository{client: cfg.Client, ttl: ttl}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Save(ctx context.Context, rec *Record) error {
	if rec == nil || rec.Code == "" {
		return errors.New("session code cannot be empty")
	}
	rec.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.client.Set(ctx, buildKey(rec.Code), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("store session in redis: %w", err)
	}
	return nil
}

func (r *redisRepository) Load(ctx context.Context, code string) (*Record, error) {
	data, err := r.client.Get(ctx, buildKey(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session from redis: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &rec, nil
}

func (r *redisRepository) Delete(ctx context.Context, code string) error {
	if err := r.client.Del(ctx, buildKey(code)).Err(); err != nil {
		return fmt.Errorf("delete session from redis: %w", err)
	}
	return nil
}

func buildKey(code string) string {
	return sessionKeyPrefix + code
}
