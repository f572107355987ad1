package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisConfigWithDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   RedisConfig
		want RedisConfig
	}{
		{
			name: "空配置",
			in:   RedisConfig{},
			want: RedisConfig{Host: "localhost", Port: 6379, PoolSize: 10, DialTimeout: 5 * time.Second},
		},
		{
			name: "保留显式配置",
			in:   RedisConfig{Host: "redis", Port: 6380, Password: "secret", DB: 2, PoolSize: 3, DialTimeout: time.Second},
			want: RedisConfig{Host: "redis", Port: 6380, Password: "secret", DB: 2, PoolSize: 3, DialTimeout: time.Second},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.WithDefaults())
		})
	}
}

func TestRedisConfigAddr(t *testing.T) {
	assert.Equal(t, "localhost:6379", RedisConfig{}.Addr())
	assert.Equal(t, "redis:6380", RedisConfig{Host: "redis", Port: 6380}.Addr())
	assert.Equal(t, "[::1]:6379", RedisConfig{Host: "::1"}.Addr())
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	client, err := NewRedisClient(context.Background(), "test", RedisConfig{
		Host:        "127.0.0.1",
		Port:        1,
		DialTimeout: 200 * time.Millisecond,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
	assert.Nil(t, client)
}
