package lib

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestCheckRedisReportsMissingClient(t *testing.T) {
	prev := redisClient
	defer NewRedisClient(prev)
	redisClient = nil
	os.Unsetenv("REDIS_HOST")

	err := CheckRedis(context.Background())
	assert.NotNil(t, err)
	assert.Equal(t, "redis client unavailable", err.Error())
}

func TestCheckRedisReportsUnreachableServer(t *testing.T) {
	prev := redisClient
	defer NewRedisClient(prev)
	NewRedisClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}))

	assert.NotNil(t, CheckRedis(context.Background()))
}
