package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "http://localhost:8000", cfg.ProductsAPIBase)
	assert.Equal(t, "http://localhost:8001", cfg.OrdersAPIBase)
	assert.Equal(t, "716", cfg.OrdersBranchID)
	assert.Equal(t, "456", cfg.OrdersFacilityID)
	assert.Equal(t, LocalStoreSQLite, cfg.LocalStore)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LOCAL_STORE", "redis")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REFRESH_INTERVAL_SEC", "0")
	t.Setenv("HTTP_TIMEOUT_SEC", "10")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, LocalStoreRedis, cfg.LocalStore)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, time.Duration(0), cfg.RefreshInterval, "0 表示关闭自动刷新")
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("unknown local store", func(t *testing.T) {
		t.Setenv("LOCAL_STORE", "dynamodb")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("non-integer timeout", func(t *testing.T) {
		t.Setenv("HTTP_TIMEOUT_SEC", "fast")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("negative refresh interval", func(t *testing.T) {
		t.Setenv("REFRESH_INTERVAL_SEC", "-5")
		_, err := Load()
		assert.Error(t, err)
	})
}
