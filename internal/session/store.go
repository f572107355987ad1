package session

import (
	"context"
	"fmt"
	"log"
	"os"

	"sidifa/portal/config"
	"sidifa/portal/internal/api"
	"sidifa/portal/packages/database"
)

var logger = log.New(os.Stderr, "[session] ", log.LstdFlags)

// Store 本地登录状态：是否已登录 + 缓存的用户信息
type Store interface {
	SetAuthStatus(ctx context.Context, authenticated bool) error
	AuthStatus(ctx context.Context) (bool, error)
	SetUserProfile(ctx context.Context, profile api.Profile) error
	// UserProfile 没有缓存时返回 nil, nil
	UserProfile(ctx context.Context) (*api.Profile, error)
	ClearAllAuthData(ctx context.Context) error
}

// New 根据 session.driver 创建存储
func New(conf *config.AppConfig) (Store, error) {
	switch conf.Session.Driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "redis":
		client, err := database.NewRedisClient(context.Background(), "portal-session", conf.Redis)
		if err != nil {
			return nil, err
		}
		logger.Printf("使用 redis 存储登录状态, namespace=%s", conf.Session.Namespace)
		return NewRedisStore(client, conf.Session.Namespace, conf.Session.TTL), nil
	default:
		return nil, fmt.Errorf("不支持的 session driver: %s", conf.Session.Driver)
	}
}
