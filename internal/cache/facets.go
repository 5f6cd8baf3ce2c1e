package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rx3lixir/event-explorer/internal/opensearch/models"
	"github.com/rx3lixir/event-explorer/pkg/logger"
	"github.com/rx3lixir/event-explorer/pkg/metrics"
)

const facetsKey = "explorer:facets"

// FacetCache - кэш фасетов в Redis. Фасеты считаются по всему корпусу
// без фильтров, поэтому один общий ключ с коротким TTL безопасен.
// Nil-приемник означает выключенный кэш, все методы это учитывают.
type FacetCache struct {
	client *redis.Client
	ttl    time.Duration
	log    logger.Logger
}

func NewFacetCache(addr, password string, db int, ttl time.Duration, log logger.Logger) *FacetCache {
	if addr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &FacetCache{
		client: rdb,
		ttl:    ttl,
		log:    log,
	}
}

// Get возвращает закэшированные фасеты, если они есть и читаемы
func (c *FacetCache) Get(ctx context.Context) (*models.FacetAggregations, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, facetsKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("Facet cache read failed", "error", err)
		}
		metrics.RecordFacetCacheHit(false)
		return nil, false
	}

	var facets models.FacetAggregations
	if err := json.Unmarshal(data, &facets); err != nil {
		c.log.Warn("Facet cache entry corrupted, ignoring", "error", err)
		metrics.RecordFacetCacheHit(false)
		return nil, false
	}

	metrics.RecordFacetCacheHit(true)
	return &facets, true
}

// Set сохраняет фасеты. Ошибки кэша не влияют на ответ клиенту.
func (c *FacetCache) Set(ctx context.Context, facets *models.FacetAggregations) {
	if c == nil || facets == nil {
		return
	}

	data, err := json.Marshal(facets)
	if err != nil {
		c.log.Warn("Failed to marshal facets for cache", "error", err)
		return
	}

	if err := c.client.Set(ctx, facetsKey, data, c.ttl).Err(); err != nil {
		c.log.Warn("Facet cache write failed", "error", err)
	}
}

// Close закрывает соединение с Redis
func (c *FacetCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
