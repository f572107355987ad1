package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadForTest(t *testing.T, configPath string) *AppConfig {
	t.Helper()

	kk := koanf.New(".")
	require.NoError(t, loadInto(kk, configPath))

	conf := &AppConfig{}
	require.NoError(t, kk.Unmarshal("", conf))
	setDefaults(conf)
	return conf
}

func TestDefault(t *testing.T) {
	conf := Default()

	assert.Equal(t, "http://localhost:3000/api/v1", conf.API.URL)
	assert.Equal(t, 10*time.Second, conf.API.Timeout)
	assert.Equal(t, "_csrf", conf.API.CSRFCookieName)
	assert.Equal(t, "X-CSRF-TOKEN", conf.API.CSRFHeaderName)
	assert.Equal(t, "memory", conf.Session.Driver)
	assert.Equal(t, 3000, conf.Mock.Port)
	assert.Equal(t, "localhost:6379", conf.Redis.Addr())
	assert.Equal(t, 5*time.Second, conf.Redis.DialTimeout)
}

func TestLoadInto_MissingFileUsesDefaults(t *testing.T) {
	conf := loadForTest(t, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, DefaultAPIURL, conf.API.URL)
}

func TestLoadInto_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
api:
  url: https://apisd.example.id/api/v1/
  timeout: 5s
  debug: true
session:
  driver: redis
redis:
  host: cache.internal
  port: 6380
  dial_timeout: 2s
mock:
  auto_verify: true
  seed_users:
    - name: Admin
      email: admin@sidifa.id
      password: Admins1234
      role: admin
      verification: verified
  smtp:
    host: smtp.example.id
    port: 2525
    tls: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Run("配置文件生效", func(t *testing.T) {
		conf := loadForTest(t, path)
		assert.Equal(t, "https://apisd.example.id/api/v1", conf.API.URL)
		assert.Equal(t, 5*time.Second, conf.API.Timeout)
		assert.True(t, conf.API.Debug)
		assert.Equal(t, "redis", conf.Session.Driver)
		assert.Equal(t, "cache.internal:6380", conf.Redis.Addr())
		assert.Equal(t, 2*time.Second, conf.Redis.DialTimeout)
		assert.Equal(t, 10, conf.Redis.PoolSize)
		assert.True(t, conf.Mock.AutoVerify)
		require.Len(t, conf.Mock.SeedUsers, 1)
		assert.Equal(t, "admin", conf.Mock.SeedUsers[0].Role)
		assert.True(t, conf.Mock.SMTP.Enabled())
		assert.Equal(t, 2525, conf.Mock.SMTP.Port)
		assert.True(t, conf.Mock.SMTP.UseTLS)
	})

	t.Run("PUBLIC_API_URL 覆盖配置文件", func(t *testing.T) {
		t.Setenv("PUBLIC_API_URL", "http://127.0.0.1:9999/api/v1")
		conf := loadForTest(t, path)
		assert.Equal(t, "http://127.0.0.1:9999/api/v1", conf.API.URL)
	})

	t.Run("PORTAL_ 前缀覆盖嵌套字段", func(t *testing.T) {
		t.Setenv("PORTAL_MOCK_JWT_SECRET", "from-env")
		t.Setenv("PORTAL_SESSION_DRIVER", "memory")
		conf := loadForTest(t, path)
		assert.Equal(t, "from-env", conf.Mock.JWTSecret)
		assert.Equal(t, "memory", conf.Session.Driver)
	})
}
