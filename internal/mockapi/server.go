// Package mockapi 是门户后端的本地替身：CSRF 下发、心理师注册、登录、
// 刷新、登出、当前用户以及重置密码。数据只保存在内存中。
package mockapi

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"sidifa/portal/config"
	"sidifa/portal/internal/pkg"
	"sidifa/portal/packages/email"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultJWTSecret = "portal-mock-secret"
	resetTokenTTL    = 30 * time.Minute
)

// Options mock 后端参数
type Options struct {
	JWTSecret             string
	TokenTTL              time.Duration
	AutoVerify            bool // 注册后直接标记为 verified
	RejectUnverifiedLogin bool // 未审核/被拒绝的账号登录返回 403
	AllowedOrigins        []string
	CSRFCookieName        string
	CSRFHeaderName        string
	SeedUsers             []config.SeedUser
	BcryptCost            int
	Mailer                ResetMailer // 为空时重置令牌只写日志
}

// ResetMailer 发送重置密码邮件
type ResetMailer interface {
	SendResetPassword(to, token string, expireMinutes int) error
}

// OptionsFromConfig 从应用配置生成 mock 参数
func OptionsFromConfig(conf *config.AppConfig) Options {
	var mailer ResetMailer
	if conf.Mock.SMTP.Enabled() {
		mailer = email.NewClient(conf.Mock.SMTP)
	}
	return Options{
		JWTSecret:             conf.Mock.JWTSecret,
		TokenTTL:              time.Duration(conf.Mock.ExpireTime) * time.Hour,
		AutoVerify:            conf.Mock.AutoVerify,
		RejectUnverifiedLogin: conf.Mock.RejectUnverifiedLogin,
		AllowedOrigins:        conf.Mock.AllowedOrigins,
		CSRFCookieName:        conf.API.CSRFCookieName,
		CSRFHeaderName:        conf.API.CSRFHeaderName,
		SeedUsers:             conf.Mock.SeedUsers,
		Mailer:                mailer,
	}
}

func (o *Options) setDefaults() {
	if o.JWTSecret == "" {
		o.JWTSecret = defaultJWTSecret
	}
	if o.TokenTTL == 0 {
		o.TokenTTL = 24 * time.Hour
	}
	if o.CSRFCookieName == "" {
		o.CSRFCookieName = config.DefaultCSRFCookieName
	}
	if o.CSRFHeaderName == "" {
		o.CSRFHeaderName = config.DefaultCSRFHeaderName
	}
	if o.BcryptCost == 0 {
		o.BcryptCost = bcrypt.DefaultCost
	}
}

var logger = log.New(os.Stderr, "[mockapi] ", log.LstdFlags)

type Server struct {
	opts     Options
	engine   *gin.Engine
	users    *UserStore
	refresh  *RefreshTokenRepository
	issuer   *pkg.TokenIssuer
	csrfHits atomic.Int64
}

// New 创建 mock 后端并写入预置账号
func New(opts Options) (*Server, error) {
	opts.setDefaults()

	s := &Server{
		opts:    opts,
		users:   NewUserStore(),
		refresh: NewRefreshTokenRepository(),
		issuer:  pkg.NewTokenIssuer(opts.JWTSecret, opts.TokenTTL),
	}

	for _, seed := range opts.SeedUsers {
		if err := s.seed(seed); err != nil {
			return nil, fmt.Errorf("预置账号 %s 失败: %w", seed.Email, err)
		}
	}

	s.engine = s.setupRouter()
	return s, nil
}

func (s *Server) seed(seed config.SeedUser) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), s.opts.BcryptCost)
	if err != nil {
		return err
	}

	role := seed.Role
	if role == "" {
		role = RolePsikolog
	}
	verification := seed.Verification
	if verification == "" {
		verification = VerificationVerified
	}

	_, err = s.users.Create(User{
		Name:         seed.Name,
		Email:        seed.Email,
		PasswordHash: string(hash),
		Role:         role,
		Verification: verification,
	})
	return err
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// CSRFTokenRequests 返回 GET /csrf/token 被调用的次数
func (s *Server) CSRFTokenRequests() int64 {
	return s.csrfHits.Load()
}

// SetVerification 模拟管理员审核
func (s *Server) SetVerification(email, status string) error {
	return s.users.SetVerification(email, status)
}

// IssueResetToken 为已存在的账号签发重置密码令牌
func (s *Server) IssueResetToken(email string) (string, error) {
	u, ok := s.users.FindByEmail(email)
	if !ok {
		return "", ErrUserNotFound
	}
	return s.issuer.GenerateResetToken(u.Email, resetTokenTTL)
}

// User 按邮箱查询账号，测试使用
func (s *Server) User(email string) (User, bool) {
	return s.users.FindByEmail(email)
}

// ActiveSessions 返回账号当前有效的 refresh token 数量
func (s *Server) ActiveSessions(email string) int {
	u, ok := s.users.FindByEmail(email)
	if !ok {
		return 0
	}
	return s.refresh.CountActiveSessionsByUserID(u.ID)
}

// Run 在 addr 上启动 HTTP 服务
func (s *Server) Run(addr string) error {
	logger.Printf("mock 后端启动于 %s", addr)
	return s.engine.Run(addr)
}
