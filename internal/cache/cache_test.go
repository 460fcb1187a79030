package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNilClient_IsAlwaysMiss(t *testing.T) {
	var c *Client
	ctx := context.Background()

	c.Set(ctx, "k", []byte("v"), time.Minute)
	c.SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute)

	assert.Nil(t, c.Get(ctx, "k"))
	var dst map[string]int
	assert.False(t, c.GetJSON(ctx, "k", &dst))
	assert.Error(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}

func TestUnreachableRedis_FailsSafe(t *testing.T) {
	// Port 1 refuses connections, so every command errors.
	c := New("127.0.0.1:1", "", 0, nil)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	c.SetJSON(ctx, "tmdb:search:ja-JP:alien", []string{"x"}, time.Minute)

	var dst []string
	assert.False(t, c.GetJSON(ctx, "tmdb:search:ja-JP:alien", &dst))
	assert.Nil(t, dst)
	assert.Error(t, c.Ping(ctx))
}
