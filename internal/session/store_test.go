package session

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sidifa/portal/config"
	"sidifa/portal/internal/api"
	"sidifa/portal/packages/database"
)

// runStoreTests 两种实现共用的行为测试
func runStoreTests(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("初始状态为空", func(t *testing.T) {
		store := newStore(t)

		authenticated, err := store.AuthStatus(ctx)
		require.NoError(t, err)
		assert.False(t, authenticated)

		profile, err := store.UserProfile(ctx)
		require.NoError(t, err)
		assert.Nil(t, profile)
	})

	t.Run("写入后可读取", func(t *testing.T) {
		store := newStore(t)
		want := api.Profile{ID: "1", Name: "Dewi", Email: "dewi@example.com", Role: "psikolog", Verification: "verified"}

		require.NoError(t, store.SetAuthStatus(ctx, true))
		require.NoError(t, store.SetUserProfile(ctx, want))

		authenticated, err := store.AuthStatus(ctx)
		require.NoError(t, err)
		assert.True(t, authenticated)

		got, err := store.UserProfile(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, want, *got)
	})

	t.Run("ClearAllAuthData 清除全部", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.SetAuthStatus(ctx, true))
		require.NoError(t, store.SetUserProfile(ctx, api.Profile{Role: "kader"}))

		require.NoError(t, store.ClearAllAuthData(ctx))

		authenticated, err := store.AuthStatus(ctx)
		require.NoError(t, err)
		assert.False(t, authenticated)

		profile, err := store.UserProfile(ctx)
		require.NoError(t, err)
		assert.Nil(t, profile)
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreTests(t, func(t *testing.T) Store {
		return NewMemoryStore()
	})
}

func TestMemoryStore_ProfileIsCopied(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.SetUserProfile(ctx, api.Profile{Role: "admin"}))

	got, err := store.UserProfile(ctx)
	require.NoError(t, err)
	got.Role = "changed"

	again, err := store.UserProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin", again.Role)
}

// 需要 Redis 实例，连接失败时跳过
func TestRedisStore(t *testing.T) {
	port, _ := strconv.Atoi(getEnvOrDefault("REDIS_PORT", "6380"))
	client, err := database.NewRedisClient(context.Background(), "portal-session-test", database.RedisConfig{
		Host:        getEnvOrDefault("REDIS_HOST", "localhost"),
		Port:        port,
		DialTimeout: time.Second,
	})
	if err != nil {
		t.Skipf("Redis 不可用，跳过: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	runStoreTests(t, func(t *testing.T) Store {
		store := NewRedisStore(client, "test-"+uuid.NewString(), time.Minute)
		t.Cleanup(func() { store.ClearAllAuthData(context.Background()) })
		return store
	})
}

func TestNew(t *testing.T) {
	conf := config.Default()

	store, err := New(conf)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	conf.Session.Driver = "sqlite"
	_, err = New(conf)
	assert.Error(t, err)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
