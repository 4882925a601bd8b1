package service

import (
	"context"
	"os"
	"testing"
	"time"

	"loyalty_app/internal/domain"

	redis "github.com/redis/go-redis/v9"
)

func TestProductCacheDisabled(t *testing.T) {
	ctx := context.Background()
	for _, c := range []*ProductCache{nil, NewProductCache(nil, time.Minute)} {
		c.StoreProduct(ctx, &domain.Product{ID: 1})
		if _, ok := c.Product(ctx, 1); ok {
			t.Fatalf("disabled cache returned a hit")
		}
		c.Invalidate(ctx, 1)
	}
}

// Runs only if REDIS_ADDR is set.
func TestProductCacheRedis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping integration test")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: os.Getenv("REDIS_PASSWORD")})
	defer rdb.Close()

	ctx := context.Background()
	c := NewProductCache(rdb, 10*time.Second)
	p := &domain.Product{ID: 987654, Name: "jam", Kind: domain.TransactionPurchase, PointCost: 8000, Stock: 50}

	c.StoreProduct(ctx, p)
	c.StoreList(ctx, domain.TransactionPurchase, []*domain.Product{p})

	got, ok := c.Product(ctx, p.ID)
	if !ok || got.Name != "jam" || got.Stock != 50 {
		t.Fatalf("cached product = %+v, %v", got, ok)
	}
	if list, ok := c.List(ctx, domain.TransactionPurchase); !ok || len(list) != 1 {
		t.Fatalf("cached list = %v, %v", list, ok)
	}

	c.Invalidate(ctx, p.ID)
	if _, ok := c.Product(ctx, p.ID); ok {
		t.Fatalf("product still cached after invalidate")
	}
	if _, ok := c.List(ctx, domain.TransactionPurchase); ok {
		t.Fatalf("list still cached after invalidate")
	}
}
