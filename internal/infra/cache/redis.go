// Package cache keeps the rendered product listing in Redis between
// catalog mutations.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"watch-storefront/config"
	"watch-storefront/internal/domain/catalog"

	"github.com/redis/go-redis/v9"
)

const (
	productsKey   = "catalog:products"
	generationKey = "catalog:products:gen"
)

var errStale = errors.New("product listing is stale")

type ProductCache struct {
	client redis.UniversalClient
	key    string
	genKey string
	ttl    time.Duration
}

// New connects to Redis and verifies the connection with a PING.
func New(ctx context.Context, cfg config.RedisConfig) (*ProductCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return NewWithClient(client, cfg.CacheTTL), nil
}

func NewWithClient(client redis.UniversalClient, ttl time.Duration) *ProductCache {
	return &ProductCache{client: client, key: productsKey, genKey: generationKey, ttl: ttl}
}

// GetProducts reports ok=false on a cache miss.
func (c *ProductCache) GetProducts(ctx context.Context) ([]catalog.Product, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get products from redis: %w", err)
	}

	var products []catalog.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal products: %w", err)
	}
	return products, true, nil
}

// Generation returns the current listing generation; a missing counter is 0.
func (c *ProductCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.genKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("failed to get cache generation: %w", err)
	}
	return gen, nil
}

// SetProducts stores the listing loaded at generation gen. It reports false
// without writing when an Invalidate has happened since.
func (c *ProductCache) SetProducts(ctx context.Context, gen int64, products []catalog.Product) (bool, error) {
	data, err := json.Marshal(products)
	if err != nil {
		return false, fmt.Errorf("failed to marshal products: %w", err)
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, c.genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return errStale
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key, data, c.ttl)
			return nil
		})
		return err
	}, c.genKey)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errStale), errors.Is(err, redis.TxFailedErr):
		return false, nil
	default:
		return false, fmt.Errorf("failed to set products in redis: %w", err)
	}
}

// Invalidate advances the generation and drops the stored listing.
func (c *ProductCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.genKey)
		pipe.Del(ctx, c.key)
		return nil
	})
	return err
}

func (c *ProductCache) Close() error {
	return c.client.Close()
}
