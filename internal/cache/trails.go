// Package cache хранит в Redis готовые списки публичных маршрутов.
//
// Ключ списка содержит номер поколения. Любое изменение маршрутов увеличивает
// поколение, и старые ключи больше не читаются; они истекают сами по TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/thereayou/trail-service/internal/models"
)

const generationKey = "trails:generation"

type TrailCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewTrailCache(rdb *redis.Client, ttl time.Duration) *TrailCache {
	return &TrailCache{rdb: rdb, ttl: ttl}
}

func (c *TrailCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// ListKey фиксирует текущее поколение. Чтение и запись одного списка
// должны идти по одному ключу: запись, опоздавшая после Invalidate, уходит
// в старое поколение и больше никем не читается.
func (c *TrailCache) ListKey(ctx context.Context, term string, difficulty models.Difficulty) (string, error) {
	gen, err := c.rdb.Get(ctx, generationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return "trails:list:" + strconv.FormatInt(gen, 10) + ":" +
		strconv.Quote(strings.ToLower(term)) + ":" + string(difficulty), nil
}

func (c *TrailCache) GetList(ctx context.Context, key string) ([]models.Trail, bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var trails []models.Trail
	if err := json.Unmarshal(raw, &trails); err != nil {
		return nil, false, fmt.Errorf("decode cached trails: %w", err)
	}
	return trails, true, nil
}

func (c *TrailCache) SetList(ctx context.Context, key string, trails []models.Trail) error {
	raw, err := json.Marshal(trails)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, raw, c.ttl).Err()
}

// Invalidate переводит кэш на новое поколение
func (c *TrailCache) Invalidate(ctx context.Context) error {
	return c.rdb.Incr(ctx, generationKey).Err()
}
