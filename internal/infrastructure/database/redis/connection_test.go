package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/your-org/storefront/internal/config"
)

func TestOptions(t *testing.T) {
	cfg := &config.Config{}
	cfg.Redis.Host = "cache"
	cfg.Redis.Port = "6380"
	cfg.Redis.Password = "secret"
	cfg.Redis.DB = 2
	cfg.Redis.PoolSize = 20
	cfg.Redis.MinIdleConns = 4

	opts := Options(cfg)

	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 20, opts.PoolSize)
	assert.Equal(t, 4, opts.MinIdleConns)
	assert.Equal(t, 5*time.Second, opts.DialTimeout)
	assert.Equal(t, 4*time.Second, opts.PoolTimeout)
}
