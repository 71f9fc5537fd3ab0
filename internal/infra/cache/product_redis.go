package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const versionKey = "products:version"

type listEntry struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
}

// ProductCache はProductRepositoryをcache-asideで包む。
// 書き込みはversionを進めて一覧キャッシュをまとめて無効化する。
type ProductCache struct {
	next    repo.ProductRepository
	client  *redis.Client
	baseTTL time.Duration
	jitter  time.Duration
	log     *zap.Logger
}

// DI
func NewProductCache(next repo.ProductRepository, client *redis.Client, ttl time.Duration, log *zap.Logger) *ProductCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProductCache{
		next:    next,
		client:  client,
		baseTTL: ttl,
		jitter:  time.Minute,
		log:     log,
	}
}

func (c *ProductCache) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	key, err := c.listKey(ctx, q)
	if err == nil {
		var entry listEntry
		if hit := c.get(ctx, key, &entry); hit {
			return entry.Items, entry.Total, nil
		}
	} else {
		c.log.Warn("cache version lookup failed", zap.Error(err))
	}

	items, total, err := c.next.List(ctx, q)
	if err != nil {
		return items, total, err
	}

	if key != "" {
		c.set(ctx, key, listEntry{Items: items, Total: total})
	}
	return items, total, nil
}

func (c *ProductCache) FindByID(ctx context.Context, id string) (model.Product, error) {
	return c.findOne(ctx, "products:id:"+id, func() (model.Product, error) {
		return c.next.FindByID(ctx, id)
	})
}

func (c *ProductCache) FindBySlug(ctx context.Context, slug string) (model.Product, error) {
	key := "products:slug:" + strings.ToLower(strings.TrimSpace(slug))
	return c.findOne(ctx, key, func() (model.Product, error) {
		return c.next.FindBySlug(ctx, slug)
	})
}

func (c *ProductCache) findOne(ctx context.Context, key string, load func() (model.Product, error)) (model.Product, error) {
	var p model.Product
	if hit := c.get(ctx, key, &p); hit {
		return p, nil
	}

	p, err := load()
	if err != nil {
		return p, err
	}
	c.set(ctx, key, p)
	return p, nil
}

func (c *ProductCache) Create(ctx context.Context, p model.Product) (model.Product, error) {
	created, err := c.next.Create(ctx, p)
	if err != nil {
		return created, err
	}
	c.invalidate(ctx)
	return created, nil
}

// ReplaceAll は詳細キャッシュも消す（IDが変わるため）。
func (c *ProductCache) ReplaceAll(ctx context.Context, products []model.Product) (int, error) {
	n, err := c.next.ReplaceAll(ctx, products)
	if err != nil {
		return n, err
	}
	c.invalidate(ctx)
	c.deletePattern(ctx, "products:id:*")
	c.deletePattern(ctx, "products:slug:*")
	return n, nil
}

func (c *ProductCache) listKey(ctx context.Context, q repo.ProductListQuery) (string, error) {
	v, err := c.client.Get(ctx, versionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return fmt.Sprintf("products:list:v%d:%d:%d:%s", v, q.Page, q.Limit, strings.ToLower(strings.TrimSpace(q.Search))), nil
}

func (c *ProductCache) get(ctx context.Context, key string, dst interface{}) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		c.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.log.Warn("cache entry unreadable", zap.String("key", key), zap.Error(err))
		_ = c.client.Del(ctx, key).Err()
		return false
	}
	return true
}

func (c *ProductCache) set(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		c.log.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl()).Err(); err != nil {
		c.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *ProductCache) ttl() time.Duration {
	if c.jitter <= 0 {
		return c.baseTTL
	}
	return c.baseTTL + time.Duration(rand.Int63n(int64(c.jitter)))
}

func (c *ProductCache) invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		c.log.Warn("cache invalidate failed", zap.Error(err))
	}
}

func (c *ProductCache) deletePattern(ctx context.Context, pattern string) {
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn("cache delete failed", zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("cache scan failed", zap.String("pattern", pattern), zap.Error(err))
	}
}
