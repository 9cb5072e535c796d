package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/jhoicas/medstock-api/internal/domain/entity"
	"github.com/jhoicas/medstock-api/internal/domain/repository"
)

var (
	_ repository.InventorySource       = (*CachedSource)(nil)
	_ repository.CollectionInvalidator = (*CachedSource)(nil)
)

// CachedSource decorador read-through: cada colección se guarda como JSON bajo
// "medstock:collection:<nombre>" con TTL. Redis caído = se lee directo del origen.
type CachedSource struct {
	inner repository.InventorySource
	rdb   *redis.Client
	ttl   time.Duration
	log   zerolog.Logger
}

// NewCachedSource envuelve la fuente.
func NewCachedSource(inner repository.InventorySource, rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *CachedSource {
	return &CachedSource{inner: inner, rdb: rdb, ttl: ttl, log: log}
}

// CollectionKey clave Redis de una colección.
func CollectionKey(name string) string {
	return keyPrefix + "collection:" + name
}

func (s *CachedSource) Items(ctx context.Context) ([]entity.Item, error) {
	return readThrough(ctx, s, entity.CollectionItems, s.inner.Items)
}

func (s *CachedSource) Batches(ctx context.Context) ([]entity.Batch, error) {
	return readThrough(ctx, s, entity.CollectionBatches, s.inner.Batches)
}

func (s *CachedSource) StockLines(ctx context.Context) ([]entity.StockLine, error) {
	return readThrough(ctx, s, entity.CollectionStockLines, s.inner.StockLines)
}

func (s *CachedSource) Sites(ctx context.Context) ([]entity.Site, error) {
	return readThrough(ctx, s, entity.CollectionSites, s.inner.Sites)
}

func (s *CachedSource) Locations(ctx context.Context) ([]entity.Location, error) {
	return readThrough(ctx, s, entity.CollectionLocations, s.inner.Locations)
}

func (s *CachedSource) LotInstances(ctx context.Context) ([]entity.LotInstance, error) {
	return readThrough(ctx, s, entity.CollectionLotInstances, s.inner.LotInstances)
}

func (s *CachedSource) Containers(ctx context.Context) ([]entity.Container, error) {
	return readThrough(ctx, s, entity.CollectionContainers, s.inner.Containers)
}

// Invalidate borra las colecciones indicadas de la caché.
func (s *CachedSource) Invalidate(ctx context.Context, collections ...string) error {
	if len(collections) == 0 {
		return nil
	}
	keys := make([]string, 0, len(collections))
	for _, c := range collections {
		keys = append(keys, CollectionKey(c))
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func readThrough[T any](ctx context.Context, s *CachedSource, name string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	key := CollectionKey(name)
	log := s.log.With().Str("collection", name).Logger()

	raw, err := s.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var list []T
		if jerr := json.Unmarshal(raw, &list); jerr == nil && list != nil {
			return list, nil
		}
		log.Warn().Msg("entrada de caché corrupta, se relee del origen")
	case errors.Is(err, redis.Nil):
	default:
		log.Warn().Err(err).Msg("redis no disponible, lectura directa")
	}

	list, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []T{}
	}
	payload, err := json.Marshal(list)
	if err != nil {
		return list, nil
	}
	if err := s.rdb.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("no se pudo escribir la caché")
	}
	return list, nil
}
