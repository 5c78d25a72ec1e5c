package utils

import (
	"context"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

func TestCollectHealthReportsEachStoreByName(t *testing.T) {
	healthy := newTestClient(t)
	unreachable := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})

	status := collectHealth(context.Background(), map[string]*redis.Client{
		"auth": healthy,
		"otp":  unreachable,
	}, nil)

	assert.True(t, status.Redis["auth"])
	assert.False(t, status.Redis["otp"])
	assert.False(t, status.Mongo, "no Mongo client means unhealthy, not a panic")
	assert.False(t, status.CheckedAt.IsZero())
}
