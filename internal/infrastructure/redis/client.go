// Package redis implementa la caché de colecciones y el almacén persistente de
// reconocimientos sobre Redis (go-redis v8).
package redis

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/jhoicas/medstock-api/pkg/config"
)

const keyPrefix = "medstock:"

// NewClient crea el cliente y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}
