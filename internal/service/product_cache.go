package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"loyalty_app/internal/domain"
	"loyalty_app/internal/logger"

	redis "github.com/redis/go-redis/v9"
)

const productKeyPrefix = "products:"

// ProductCache is a read-through Redis cache of the product catalog. A nil
// client disables it; Redis errors are logged and treated as misses.
type ProductCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewProductCache(rdb *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{rdb: rdb, ttl: ttl}
}

func listKey(kind domain.TransactionKind) string {
	if kind == "" {
		return productKeyPrefix + "list:all"
	}
	return productKeyPrefix + "list:" + string(kind)
}

func itemKey(id int64) string {
	return productKeyPrefix + "item:" + strconv.FormatInt(id, 10)
}

func (c *ProductCache) enabled() bool {
	return c != nil && c.rdb != nil
}

// List returns the cached listing for kind ("" for all products).
func (c *ProductCache) List(ctx context.Context, kind domain.TransactionKind) ([]*domain.Product, bool) {
	var products []*domain.Product
	if !c.get(ctx, listKey(kind), &products) {
		return nil, false
	}
	return products, true
}

func (c *ProductCache) StoreList(ctx context.Context, kind domain.TransactionKind, products []*domain.Product) {
	c.set(ctx, listKey(kind), products)
}

func (c *ProductCache) Product(ctx context.Context, id int64) (*domain.Product, bool) {
	var p domain.Product
	if !c.get(ctx, itemKey(id), &p) {
		return nil, false
	}
	return &p, true
}

func (c *ProductCache) StoreProduct(ctx context.Context, p *domain.Product) {
	c.set(ctx, itemKey(p.ID), p)
}

// Invalidate drops the product and every listing that may contain it.
func (c *ProductCache) Invalidate(ctx context.Context, id int64) {
	if !c.enabled() {
		return
	}
	keys := []string{
		itemKey(id),
		listKey(""),
		listKey(domain.TransactionPurchase),
		listKey(domain.TransactionDonation),
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.Warn("product cache invalidate failed", "product_id", id, "error", err)
	}
}

func (c *ProductCache) get(ctx context.Context, key string, dst any) bool {
	if !c.enabled() {
		return false
	}
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("product cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		logger.Warn("product cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (c *ProductCache) set(ctx context.Context, key string, v any) {
	if !c.enabled() {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		logger.Warn("product cache write failed", "key", key, "error", err)
	}
}
