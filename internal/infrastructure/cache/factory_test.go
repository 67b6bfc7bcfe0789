package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/backend/internal/infrastructure/config"
)

func TestLockerFactory_CreateLocker(t *testing.T) {
	t.Run("redis disabled uses in-memory locker", func(t *testing.T) {
		locker, err := NewLockerFactory(config.RedisConfig{}).CreateLocker()
		require.NoError(t, err)
		defer locker.Close()
		assert.IsType(t, &InMemoryLocker{}, locker)
	})

	t.Run("unreachable redis falls back", func(t *testing.T) {
		cfg := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}
		locker, err := NewLockerFactory(cfg).CreateLocker()
		require.NoError(t, err)
		defer locker.Close()
		assert.IsType(t, &InMemoryLocker{}, locker)
	})

	t.Run("unreachable redis without fallback fails", func(t *testing.T) {
		cfg := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}
		_, err := NewLockerFactory(cfg, WithInMemoryFallback(false)).CreateLocker()
		assert.Error(t, err)
	})
}
