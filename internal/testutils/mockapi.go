package testutils

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"sidifa/portal/config"
	"sidifa/portal/internal/mockapi"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const DefaultPassword = "password123"

// MockAPI 运行中的 mock 后端
type MockAPI struct {
	Server *mockapi.Server
	HTTP   *httptest.Server
	// URL 已包含 /api/v1 前缀，可直接作为客户端的 base URL
	URL string
}

// MockOption configures the mock backend
type MockOption func(*mockapi.Options)

// WithAutoVerify 注册后直接通过审核
func WithAutoVerify() MockOption {
	return func(o *mockapi.Options) {
		o.AutoVerify = true
	}
}

// WithRejectUnverifiedLogin 未审核账号登录返回 403
func WithRejectUnverifiedLogin() MockOption {
	return func(o *mockapi.Options) {
		o.RejectUnverifiedLogin = true
	}
}

// WithMailer 替换重置密码邮件发送
func WithMailer(m mockapi.ResetMailer) MockOption {
	return func(o *mockapi.Options) {
		o.Mailer = m
	}
}

// WithSeedUser 预置账号，密码为 DefaultPassword
func WithSeedUser(email, role, verification string) MockOption {
	return func(o *mockapi.Options) {
		o.SeedUsers = append(o.SeedUsers, config.SeedUser{
			Name:         "Seed " + role,
			Email:        email,
			Password:     DefaultPassword,
			Role:         role,
			Verification: verification,
		})
	}
}

// NewMockAPI starts an in-process mock backend that is closed on test cleanup
func NewMockAPI(t *testing.T, opts ...MockOption) *MockAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	o := mockapi.Options{
		JWTSecret:  "test-secret-key",
		BcryptCost: bcrypt.MinCost,
	}
	for _, opt := range opts {
		opt(&o)
	}

	srv, err := mockapi.New(o)
	if err != nil {
		t.Fatalf("Failed to create mock api: %v", err)
	}

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return &MockAPI{
		Server: srv,
		HTTP:   ts,
		URL:    ts.URL + "/api/v1",
	}
}

// UniqueEmail 生成不重复的测试邮箱
func UniqueEmail() string {
	return fmt.Sprintf("test_%s@example.com", uuid.NewString())
}
