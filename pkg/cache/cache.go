// Package cache 提供基于Redis的旁路缓存，客户端为nil时缓存关闭，所有读取都回源。
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Cache Redis缓存
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	group  singleflight.Group

	hits   atomic.Uint64
	misses atomic.Uint64
	errs   atomic.Uint64
}

// Stats 缓存统计
type Stats struct {
	Enabled bool   `json:"enabled"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Errors  uint64 `json:"errors"`
}

// New 创建缓存实例
func New(client *redis.Client, prefix string, ttl time.Duration) *Cache {
	return &Cache{client: client, prefix: prefix, ttl: ttl}
}

// Enabled 是否连接了Redis
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// Get 读取缓存并反序列化到dest，返回是否命中
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}

	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.misses.Add(1)
			return false, nil
		}
		c.errs.Add(1)
		return false, fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.errs.Add(1)
		return false, fmt.Errorf("cache unmarshal error: %w", err)
	}

	c.hits.Add(1)
	return true, nil
}

// Set 使用默认TTL写入缓存
func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	if !c.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		c.errs.Add(1)
		return fmt.Errorf("cache marshal error: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		c.errs.Add(1)
		return fmt.Errorf("cache set error: %w", err)
	}
	return nil
}

// Delete 删除指定键
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if !c.Enabled() || len(keys) == 0 {
		return nil
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		c.errs.Add(1)
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}

// DeletePattern 删除匹配模式的所有键
func (c *Cache) DeletePattern(ctx context.Context, pattern string) error {
	if !c.Enabled() {
		return nil
	}

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+pattern, 100).Result()
		if err != nil {
			c.errs.Add(1)
			return fmt.Errorf("cache scan error: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				c.errs.Add(1)
				return fmt.Errorf("cache delete error: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Stats 返回统计快照
func (c *Cache) Stats() Stats {
	return Stats{
		Enabled: c.Enabled(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Errors:  c.errs.Load(),
	}
}

// Fetch 旁路读取：命中直接返回，未命中时同一个键只有一个调用者回源，结果写回缓存。
// 缓存读写失败不影响结果。
func Fetch[T any](ctx context.Context, c *Cache, key string, load func(context.Context) (T, error)) (T, error) {
	var cached T
	if found, err := c.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		val, err := load(ctx)
		if err != nil {
			return nil, err
		}
		_ = c.Set(ctx, key, val)
		return val, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
