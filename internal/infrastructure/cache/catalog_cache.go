package cache

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"mims-console/internal/domain/entity"
)

const (
	catalogKeyPrefix = "catalog:"
	catalogTTL       = 10 * time.Minute
)

// CatalogCache holds the last-known catalog snapshot per business email.
// Snapshots survive a failed refresh: Put is only called with fresh data,
// so a transport error leaves the prior snapshot in place (fail-soft).
//
// When redis is configured the snapshot is shared across console
// instances; the in-process map is always kept as fallback so a redis
// outage degrades to local caching instead of an empty catalog.
type CatalogCache struct {
	rdb   *redis.Client
	mu    sync.RWMutex
	local map[string][]entity.CatalogItem
}

// NewCatalogCache creates a cache. rdb may be nil (redis disabled).
func NewCatalogCache(rdb *redis.Client) *CatalogCache {
	return &CatalogCache{
		rdb:   rdb,
		local: make(map[string][]entity.CatalogItem),
	}
}

// NewRedisClient connects to redis and verifies the connection.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}

// Put stores a fresh snapshot.
func (c *CatalogCache) Put(ctx context.Context, businessEmail string, items []entity.CatalogItem) {
	c.mu.Lock()
	c.local[businessEmail] = items
	c.mu.Unlock()

	if c.rdb == nil {
		return
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, catalogKeyPrefix+businessEmail, payload, catalogTTL).Err(); err != nil {
		log.Printf("catalog cache: redis set failed: %v", err)
	}
}

// Get returns the cached snapshot and whether one exists.
func (c *CatalogCache) Get(ctx context.Context, businessEmail string) ([]entity.CatalogItem, bool) {
	c.mu.RLock()
	items, ok := c.local[businessEmail]
	c.mu.RUnlock()
	if ok {
		return items, true
	}

	if c.rdb == nil {
		return nil, false
	}
	payload, err := c.rdb.Get(ctx, catalogKeyPrefix+businessEmail).Bytes()
	if err != nil {
		return nil, false
	}
	var cached []entity.CatalogItem
	if err := json.Unmarshal(payload, &cached); err != nil {
		return nil, false
	}
	c.mu.Lock()
	c.local[businessEmail] = cached
	c.mu.Unlock()
	return cached, true
}

// Item looks up a single item in the snapshot for a business.
func (c *CatalogCache) Item(ctx context.Context, businessEmail, itemID string) (*entity.CatalogItem, bool) {
	items, ok := c.Get(ctx, businessEmail)
	if !ok {
		return nil, false
	}
	for i := range items {
		if items[i].ID == itemID {
			return &items[i], true
		}
	}
	return nil, false
}
