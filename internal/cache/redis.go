package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cwaller/notehub/internal/domain/note"
	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Redis backs the Notes cache with a shared redis instance so hits survive
// process restarts and are shared across replicas. Cache errors degrade to
// misses; redis being down must never fail a request.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedis(cfg RedisConfig, ttl time.Duration) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	if ttl <= 0 {
		ttl = 5 * time.Second
	}

	return &Redis{rdb: rdb, ttl: ttl}
}

func (c *Redis) key(id string) string {
	return "note:" + id
}

func (c *Redis) Get(ctx context.Context, id string) (note.Note, bool) {
	raw, err := c.rdb.Get(ctx, c.key(id)).Bytes()

	if err != nil {
		return note.Note{}, false
	}

	var n note.Note

	if err := json.Unmarshal(raw, &n); err != nil {
		return note.Note{}, false
	}

	return n, true
}

func (c *Redis) Set(ctx context.Context, n note.Note) {
	raw, err := json.Marshal(n)

	if err != nil {
		return
	}

	_ = c.rdb.Set(ctx, c.key(n.ID), raw, c.ttl).Err()
}

func (c *Redis) Delete(ctx context.Context, id string) {
	_ = c.rdb.Del(ctx, c.key(id)).Err()
}

// Ping checks redis connectivity for the readiness probe.
func (c *Redis) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close releases the underlying client.
func (c *Redis) Close() error {
	return c.rdb.Close()
}
