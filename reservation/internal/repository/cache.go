package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Astemirdum/hotel-reservation/reservation/internal/model"
)

type RedisConfig struct {
	Addr     string        `yaml:"addr" envconfig:"REDIS_ADDR"`
	Password string        `yaml:"password" envconfig:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" envconfig:"REDIS_DB"`
	TTL      time.Duration `yaml:"ttl" envconfig:"REDIS_TTL"`
}

func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	return client, nil
}

// cachedRepository serves list queries from redis and drops the
// affected keys on every write. Overlap checks always go to the store.
type cachedRepository struct {
	Repository
	client redis.Cmdable
	ttl    time.Duration
	log    *zap.Logger
}

func NewCachedRepository(repo Repository, client redis.Cmdable, ttl time.Duration, log *zap.Logger) Repository {
	return &cachedRepository{
		Repository: repo,
		client:     client,
		ttl:        ttl,
		log:        log.Named("cache"),
	}
}

func nameKey(name string) string { return "reservation:name:" + name }

func roomKey(roomID int) string { return fmt.Sprintf("reservation:room:%d", roomID) }

func (c *cachedRepository) ListByName(ctx context.Context, name string) ([]model.Reservation, error) {
	return c.cached(ctx, nameKey(name), func() ([]model.Reservation, error) {
		return c.Repository.ListByName(ctx, name)
	})
}

func (c *cachedRepository) ListByRoom(ctx context.Context, roomID int) ([]model.Reservation, error) {
	return c.cached(ctx, roomKey(roomID), func() ([]model.Reservation, error) {
		return c.Repository.ListByRoom(ctx, roomID)
	})
}

func (c *cachedRepository) Create(ctx context.Context, rsv model.Reservation) error {
	if err := c.Repository.Create(ctx, rsv); err != nil {
		return err
	}
	c.invalidate(ctx, rsv)
	return nil
}

func (c *cachedRepository) UpdateDates(ctx context.Context, rsv model.Reservation, rng model.DateRange) error {
	if err := c.Repository.UpdateDates(ctx, rsv, rng); err != nil {
		return err
	}
	c.invalidate(ctx, rsv)
	return nil
}

func (c *cachedRepository) Delete(ctx context.Context, rsv model.Reservation) error {
	if err := c.Repository.Delete(ctx, rsv); err != nil {
		return err
	}
	c.invalidate(ctx, rsv)
	return nil
}

func (c *cachedRepository) cached(ctx context.Context, key string, load func() ([]model.Reservation, error)) ([]model.Reservation, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var items []model.Reservation
		if err = json.Unmarshal(data, &items); err == nil {
			return items, nil
		}
		c.log.Warn("decode cached value", zap.String("key", key), zap.Error(err))
	case err != redis.Nil:
		c.log.Warn("redis get", zap.String("key", key), zap.Error(err))
	}

	items, err := load()
	if err != nil {
		return nil, err
	}
	if data, err = json.Marshal(items); err == nil {
		if err = c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.log.Warn("redis set", zap.String("key", key), zap.Error(err))
		}
	}
	return items, nil
}

func (c *cachedRepository) invalidate(ctx context.Context, rsv model.Reservation) {
	if err := c.client.Del(ctx, nameKey(rsv.Name), roomKey(rsv.RoomID)).Err(); err != nil {
		c.log.Warn("redis del", zap.String("name", rsv.Name), zap.Int("room_id", rsv.RoomID), zap.Error(err))
	}
}
