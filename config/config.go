// config/config.go - 配置管理文件
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	DefaultAPIURL         = "http://localhost:3000/api/v1"
	DefaultTimeout        = 10 * time.Second
	DefaultCSRFCookieName = "_csrf"
	DefaultCSRFHeaderName = "X-CSRF-TOKEN"
)

var (
	Conf *AppConfig
	once sync.Once
)

// Load 加载配置文件
func Load(configPath string) error {
	var err error
	once.Do(func() {
		// 首先加载 .env 文件到环境变量
		if err = godotenv.Load(); err != nil {
			log.Printf("警告: 无法加载 .env 文件: %v", err)
		}

		k := koanf.New(".")
		if err = loadInto(k, configPath); err != nil {
			return
		}

		Conf = &AppConfig{}
		if err = k.Unmarshal("", Conf); err != nil {
			err = fmt.Errorf("解析配置失败: %w", err)
			return
		}
		setDefaults(Conf)
	})

	return err
}

// MustLoad 加载配置，失败则退出
func MustLoad(configPath string) {
	if err := Load(configPath); err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}
}

// loadInto 按 文件 -> 环境变量 的顺序加载，后者覆盖前者
func loadInto(k *koanf.Koanf, configPath string) error {
	// 客户端场景下配置文件可选
	if configPath != "" {
		if _, statErr := os.Stat(configPath); statErr == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return fmt.Errorf("加载配置文件失败: %w", err)
			}
		} else if !errors.Is(statErr, fs.ErrNotExist) {
			return fmt.Errorf("读取配置文件失败: %w", statErr)
		}
	}

	// PUBLIC_API_URL -> api.url
	if err := k.Load(env.Provider("PUBLIC_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "PUBLIC_")), "_", ".", 1)
	}), nil); err != nil {
		log.Printf("加载环境变量失败: %v", err)
	}

	// PORTAL_MOCK_JWT_SECRET -> mock.jwt_secret
	if err := k.Load(env.Provider("PORTAL_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "PORTAL_")), "_", ".", 1)
	}), nil); err != nil {
		log.Printf("加载环境变量失败: %v", err)
	}

	return nil
}

// setDefaults 设置默认值
func setDefaults(c *AppConfig) {
	if c.API.URL == "" {
		c.API.URL = DefaultAPIURL
	}
	c.API.URL = strings.TrimRight(c.API.URL, "/")
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultTimeout
	}
	if c.API.CSRFCookieName == "" {
		c.API.CSRFCookieName = DefaultCSRFCookieName
	}
	if c.API.CSRFHeaderName == "" {
		c.API.CSRFHeaderName = DefaultCSRFHeaderName
	}
	if c.Session.Driver == "" {
		c.Session.Driver = "memory"
	}
	if c.Session.Namespace == "" {
		c.Session.Namespace = "default"
	}
	if c.Session.TTL == 0 {
		c.Session.TTL = 7 * 24 * time.Hour
	}
	c.Redis = c.Redis.WithDefaults()
	if c.Mock.Port == 0 {
		c.Mock.Port = 3000
	}
	if c.Mock.ExpireTime == 0 {
		c.Mock.ExpireTime = 24
	}
	if c.Mock.Mode == "" {
		c.Mock.Mode = "debug"
	}
}

// Default 返回只包含默认值的配置，测试与未调用 Load 的场景使用
func Default() *AppConfig {
	c := &AppConfig{}
	setDefaults(c)
	return c
}
