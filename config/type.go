package config

import (
	"time"

	"sidifa/portal/packages/database"
	"sidifa/portal/packages/email"
)

// AppConfig 应用配置结构
type AppConfig struct {
	API     APIConfig            `koanf:"api"`
	Session SessionConfig        `koanf:"session"`
	Redis   database.RedisConfig `koanf:"redis"`
	Mock    MockConfig           `koanf:"mock"`
}

// APIConfig 后端接口客户端配置
type APIConfig struct {
	URL            string        `koanf:"url"`              // 接口基础地址，可由 PUBLIC_API_URL 覆盖
	Timeout        time.Duration `koanf:"timeout"`          // 单次请求超时
	CSRFCookieName string        `koanf:"csrf_cookie_name"` // 后端下发的 CSRF cookie 名
	CSRFHeaderName string        `koanf:"csrf_header_name"` // 回传 CSRF token 的请求头
	Debug          bool          `koanf:"debug"`            // 是否打印请求/响应调试日志
}

// SessionConfig 本地登录状态存储
type SessionConfig struct {
	Driver    string        `koanf:"driver"`    // memory, redis
	Namespace string        `koanf:"namespace"` // 区分不同终端/用户的 key
	TTL       time.Duration `koanf:"ttl"`
}

// MockConfig 本地 mock 后端配置
type MockConfig struct {
	Host                  string       `koanf:"host"`
	Port                  int          `koanf:"port"`
	Mode                  string       `koanf:"mode"` // debug, release
	JWTSecret             string       `koanf:"jwt_secret"`
	ExpireTime            int          `koanf:"expire_time"` // 小时
	AutoVerify            bool         `koanf:"auto_verify"`
	RejectUnverifiedLogin bool         `koanf:"reject_unverified_login"`
	AllowedOrigins        []string     `koanf:"allowed_origins"`
	SeedUsers             []SeedUser   `koanf:"seed_users"`
	SMTP                  email.Config `koanf:"smtp"` // 未配置 host 时重置令牌只写日志
}

// SeedUser 启动时预置的账号
type SeedUser struct {
	Name         string `koanf:"name"`
	Email        string `koanf:"email"`
	Password     string `koanf:"password"`
	Role         string `koanf:"role"`
	Verification string `koanf:"verification"`
}
