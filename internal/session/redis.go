package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"sidifa/portal/internal/api"
	"sidifa/portal/packages/database"
)

const (
	// 登录状态 Redis key 前缀
	AuthKeyPrefix = "portal:auth:"

	fieldAuthStatus = "auth_status"
	fieldProfile    = "profile"
)

// RedisStore 以 hash 保存登录状态，多个终端可通过 namespace 区分
type RedisStore struct {
	redis *database.RedisClient
	key   string
	ttl   time.Duration
}

func NewRedisStore(client *database.RedisClient, namespace string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		redis: client,
		key:   AuthKeyPrefix + namespace,
		ttl:   ttl,
	}
}

func (s *RedisStore) SetAuthStatus(ctx context.Context, authenticated bool) error {
	value := "0"
	if authenticated {
		value = "1"
	}
	if err := s.redis.HSet(ctx, s.key, fieldAuthStatus, value).Err(); err != nil {
		return fmt.Errorf("存储登录状态失败: %w", err)
	}
	return s.touch(ctx)
}

func (s *RedisStore) AuthStatus(ctx context.Context) (bool, error) {
	value, err := s.redis.HGet(ctx, s.key, fieldAuthStatus).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("读取登录状态失败: %w", err)
	}
	return value == "1", nil
}

func (s *RedisStore) SetUserProfile(ctx context.Context, profile api.Profile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("序列化用户信息失败: %w", err)
	}
	if err := s.redis.HSet(ctx, s.key, fieldProfile, raw).Err(); err != nil {
		return fmt.Errorf("存储用户信息失败: %w", err)
	}
	return s.touch(ctx)
}

func (s *RedisStore) UserProfile(ctx context.Context) (*api.Profile, error) {
	raw, err := s.redis.HGet(ctx, s.key, fieldProfile).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取用户信息失败: %w", err)
	}

	var profile api.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("解析用户信息失败: %w", err)
	}
	return &profile, nil
}

func (s *RedisStore) ClearAllAuthData(ctx context.Context) error {
	if err := s.redis.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("清除登录状态失败: %w", err)
	}
	return nil
}

// touch 每次写入后续期
func (s *RedisStore) touch(ctx context.Context) error {
	if s.ttl <= 0 {
		return nil
	}
	if err := s.redis.Expire(ctx, s.key, s.ttl).Err(); err != nil {
		return fmt.Errorf("设置过期时间失败: %w", err)
	}
	return nil
}
