package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/go-redis/redis/v8"

	"github.com/pulseclub/go-pulse/env"
	"github.com/pulseclub/go-pulse/util"
)

// ErrKeyNotFound is returned when a key is not present in the cache
type ErrKeyNotFound struct {
	Key string
}

func (e ErrKeyNotFound) Error() string {
	return fmt.Sprintf("key %s not found", e.Key)
}

type redisDB int

// Every cache is uniquely defined by its database and key prefix. Display names are
// used for logging.
type CacheConfig struct {
	database    redisDB
	displayName string
	keyPrefix   string
}

const (
	locks      redisDB = 0
	feed       redisDB = 1
	social     redisDB = 2
	challenges redisDB = 3
)

var (
	FeedCache          = CacheConfig{database: feed, keyPrefix: "feed", displayName: "feed"}
	SocialCache        = CacheConfig{database: social, keyPrefix: "social", displayName: "social"}
	ChallengeCache     = CacheConfig{database: challenges, keyPrefix: "challenge", displayName: "challenge"}
	RecommendLockCache = CacheConfig{database: locks, keyPrefix: "recommend", displayName: "recommendLock"}
)

func newClient(db redisDB) *redis.Client {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	client := redis.NewClient(&redis.Options{
		Addr:     env.GetString("REDIS_URL"),
		Password: env.GetString("REDIS_PASS"),
		DB:       int(db),
	})
	if err := client.Ping(ctx).Err(); err != nil {
		panic(err)
	}
	return client
}

// Cache represents an abstraction over a redis client
type Cache struct {
	client    *redis.Client
	keyPrefix string
}

// NewCache creates a new redis cache
func NewCache(config CacheConfig) *Cache {
	return &Cache{
		client:    newClient(config.database),
		keyPrefix: config.keyPrefix,
	}
}

func (c *Cache) Client() *redis.Client {
	return c.client
}

// Set sets a value in the redis cache
func (c *Cache) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	return c.client.Set(ctx, c.getPrefixedKey(key), value, expiration).Err()
}

// SetNX sets a value in the redis cache if it doesn't already exist. Returns true if
// the key did not already exist and was set.
func (c *Cache) SetNX(ctx context.Context, key string, value []byte, expiration time.Duration) (bool, error) {
	cmd := c.client.SetNX(ctx, c.getPrefixedKey(key), value, expiration)
	if err := cmd.Err(); err != nil {
		return false, err
	}
	return cmd.Val(), nil
}

// Get gets a value from the redis cache
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	bs, err := c.client.Get(ctx, c.getPrefixedKey(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrKeyNotFound{Key: key}
		}
		return nil, err
	}
	return bs, nil
}

// Delete removes a key from the redis cache
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.getPrefixedKey(key)).Err()
}

// Close closes the underlying redis client
func (c *Cache) Close() error {
	return c.client.Close()
}

func (c *Cache) getPrefixedKey(key string) string {
	if c.keyPrefix == "" {
		return key
	}
	return c.keyPrefix + ":" + key
}

// NewLockClient returns a distributed lock client backed by the given cache
func NewLockClient(cache *Cache) *redislock.Client {
	return redislock.New(cache.client)
}

// LazyCache implements a lazy loading cache that stores data only when it is requested
type LazyCache struct {
	Cache    *Cache
	CalcFunc func(context.Context) ([]byte, error)
	Key      string
	TTL      time.Duration
}

// Load queries the cache for the given key, and if it is current returns the data.
// It's possible for Load to return stale data; staleness is bounded by the TTL.
func (l LazyCache) Load(ctx context.Context) ([]byte, error) {
	b, err := l.Cache.Get(ctx, l.Key)
	if err == nil {
		return b, nil
	}
	if !util.ErrorAs[ErrKeyNotFound](err) {
		return nil, err
	}
	b, err = l.CalcFunc(ctx)
	if err != nil {
		return nil, err
	}
	err = l.Cache.Set(ctx, l.Key, b, l.TTL)
	return b, err
}
