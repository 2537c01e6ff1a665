// cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hausa-platform/config"
	"hausa-platform/models"

	"github.com/redis/go-redis/v9"
)

// versionTTL sayaç anahtarlarının ömrü; bir okuma-yazma aralığından çok uzun olmalı.
const versionTTL = 24 * time.Hour

// Redis UserCache'i go-redis üzerinden JSON olarak tutar.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis bağlantıyı kurar ve ping ile doğrular.
func NewRedis(cfg config.RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis bağlantısı kurulamadı: %w", err)
	}
	return &Redis{client: client, ttl: cfg.UserTTL}, nil
}

func NewRedisWithClient(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) Get(ctx context.Context, id string) (*models.User, error) {
	data, err := r.client.Get(ctx, UserKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, err
	}

	var u models.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("cache: bozuk kayıt %s: %w", id, err)
	}
	return &u, nil
}

func (r *Redis) Version(ctx context.Context, id string) (int64, error) {
	v, err := r.client.Get(ctx, VersionKey(id)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// Set sürüm anahtarını WATCH eder; sayaç değiştiyse ya da yazma sırasında
// değişirse kayıt yazılmaz.
func (r *Redis) Set(ctx context.Context, u *models.User, version int64) error {
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}

	verKey := VersionKey(u.ID)
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, verKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, UserKey(u.ID), data, r.ttl)
			return nil
		})
		return err
	}, verKey)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (r *Redis) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range ids {
			pipe.Incr(ctx, VersionKey(id))
			pipe.Expire(ctx, VersionKey(id), versionTTL)
			pipe.Del(ctx, UserKey(id))
		}
		return nil
	})
	return err
}
