package repositories

import (
	"context"
	"errors"
	"time"

	apperrors "hrm-system/pkg/errors"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type CacheRepositoryInterface interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type RedisCacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisCacheRepository(client *redis.Client, logger *zap.Logger) CacheRepositoryInterface {
	return &RedisCacheRepository{client: client, logger: logger}
}

func (r *RedisCacheRepository) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperrors.ErrNotFound
		}
		r.logger.Error("Ошибка чтения из Redis", zap.String("key", key), zap.Error(err))
		return "", err
	}
	return value, nil
}

func (r *RedisCacheRepository) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Error("Ошибка записи в Redis", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (r *RedisCacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Ошибка удаления из Redis", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}
