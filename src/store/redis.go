package store

import (
	"context"
	"encoding/json"
	"errors"
	"savanablu/src/lib"
	"savanablu/src/models"

	"github.com/redis/go-redis/v9"
)

// RedisBackend holds the full collection as a RedisJSON document under a
// single key, mirroring the file layout so either backend can seed the other.
type RedisBackend struct {
	Key string
}

func NewRedisBackend(key string) *RedisBackend {
	return &RedisBackend{Key: key}
}

func (r *RedisBackend) ReadAll() ([]models.Booking, error) {
	rd := lib.GetRedisClient()
	if rd == nil {
		return nil, errors.New("redis client unavailable")
	}
	val, err := rd.JSONGet(context.Background(), r.Key).Result()
	if err == redis.Nil || val == "" {
		return []models.Booking{}, nil
	}
	if err != nil {
		return nil, err
	}
	var bookings []models.Booking
	if err := json.Unmarshal([]byte(val), &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *RedisBackend) WriteAll(bookings []models.Booking) error {
	rd := lib.GetRedisClient()
	if rd == nil {
		return errors.New("redis client unavailable")
	}
	if _, err := rd.JSONSet(context.Background(), r.Key, "$", &bookings).Result(); err != nil {
		return err
	}
	return nil
}
