package database

import (
	"context"
	"fmt"
	"log"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisHost        = "localhost"
	defaultRedisPort        = 6379
	defaultRedisPoolSize    = 10
	defaultRedisDialTimeout = 5 * time.Second
)

// RedisConfig 登录状态缓存使用的 Redis 连接配置，直接挂在 AppConfig.Redis 下
type RedisConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	Password    string        `koanf:"password"`
	DB          int           `koanf:"db"`
	PoolSize    int           `koanf:"pool_size"`
	DialTimeout time.Duration `koanf:"dial_timeout"` // 建连和首次 PING 共用
}

// WithDefaults 返回补齐默认值后的副本
func (c RedisConfig) WithDefaults() RedisConfig {
	if c.Host == "" {
		c.Host = defaultRedisHost
	}
	if c.Port == 0 {
		c.Port = defaultRedisPort
	}
	if c.PoolSize == 0 {
		c.PoolSize = defaultRedisPoolSize
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = defaultRedisDialTimeout
	}
	return c
}

// Addr host:port
func (c RedisConfig) Addr() string {
	c = c.WithDefaults()
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// RedisClient Redis 客户端封装
type RedisClient struct {
	*redis.Client
}

// NewRedisClient 连接 Redis 并 PING 一次，失败时关闭连接池。name 只出现在日志里
func NewRedisClient(ctx context.Context, name string, conf RedisConfig) (*RedisClient, error) {
	conf = conf.WithDefaults()

	client := redis.NewClient(&redis.Options{
		Addr:        conf.Addr(),
		Password:    conf.Password,
		DB:          conf.DB,
		PoolSize:    conf.PoolSize,
		DialTimeout: conf.DialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, conf.DialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("连接 Redis %s 失败: %w", conf.Addr(), err)
	}

	log.Printf("[%s] 已连接 Redis %s db=%d", name, conf.Addr(), conf.DB)
	return &RedisClient{Client: client}, nil
}
