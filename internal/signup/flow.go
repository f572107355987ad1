// Package signup 编排心理师注册：注册 -> 自动登录 -> 审核状态判定 -> 拉取用户信息 -> 按角色跳转。
package signup

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strings"

	"sidifa/portal/internal/api"
	"sidifa/portal/internal/session"
	"sidifa/portal/packages/response"
)

const (
	PasswordMismatchMessage = "Password dan konfirmasi password tidak sama"
	SuccessMessage          = "Pendaftaran berhasil! Anda akan diarahkan..."
)

// Payload 注册表单
type Payload = api.SignupPsikologRequest

// VerificationStatus 账号审核状态，空值表示无需提示
type VerificationStatus string

const (
	VerificationNone       VerificationStatus = ""
	VerificationUnverified VerificationStatus = "unverified"
	VerificationDeclined   VerificationStatus = "declined"
)

type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateError
	StateSuccess
	StateVerificationUnverified
	StateVerificationDeclined
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateError:
		return "error"
	case StateSuccess:
		return "success"
	case StateVerificationUnverified:
		return "verification_unverified"
	case StateVerificationDeclined:
		return "verification_declined"
	}
	return "unknown"
}

// Result 一次提交的最终结果，State 总是终态
type Result struct {
	State        State
	Error        string
	Success      string
	Verification VerificationStatus
	RedirectTo   string
}

// AuthAPI 注册与登录接口
type AuthAPI interface {
	SignupPsikolog(ctx context.Context, req api.SignupPsikologRequest) (json.RawMessage, error)
	Login(ctx context.Context, req api.LoginRequest) (json.RawMessage, error)
}

type ProfileFetcher interface {
	GetProfile(ctx context.Context) (*api.Profile, error)
}

// Navigator 注册成功后调用一次，由调用方决定"跳转"的含义
type Navigator interface {
	Navigate(ctx context.Context, target string) error
}

type NavigatorFunc func(ctx context.Context, target string) error

func (f NavigatorFunc) Navigate(ctx context.Context, target string) error {
	return f(ctx, target)
}

type Flow struct {
	auth      AuthAPI
	profiles  ProfileFetcher
	store     session.Store
	navigator Navigator
	observer  func(State)
	logger    *log.Logger
}

type Option func(*Flow)

func WithNavigator(n Navigator) Option {
	return func(f *Flow) {
		f.navigator = n
	}
}

// WithStateObserver 每次状态变化时回调，用于界面展示 loading 等
func WithStateObserver(fn func(State)) Option {
	return func(f *Flow) {
		f.observer = fn
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(f *Flow) {
		f.logger = logger
	}
}

func NewFlow(auth AuthAPI, profiles ProfileFetcher, store session.Store, opts ...Option) *Flow {
	f := &Flow{
		auth:     auth,
		profiles: profiles,
		store:    store,
		logger:   log.New(os.Stderr, "[signup] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Submit 执行一次完整的注册流程
func (f *Flow) Submit(ctx context.Context, payload Payload) Result {
	f.transition(StateSubmitting)

	if payload.Password != payload.ConfirmPassword {
		return f.fail(PasswordMismatchMessage)
	}

	if _, err := f.auth.SignupPsikolog(ctx, payload); err != nil {
		return f.fail(response.Message(err))
	}

	_, err := f.auth.Login(ctx, api.LoginRequest{Email: payload.Email, Password: payload.Password})
	if err != nil {
		msg := response.Message(err)
		switch classify(msg) {
		case VerificationUnverified:
			return f.verification(VerificationUnverified)
		case VerificationDeclined:
			return f.verification(VerificationDeclined)
		}
		return f.fail(msg)
	}

	if err := f.store.SetAuthStatus(ctx, true); err != nil {
		f.logger.Printf("保存登录状态失败: %v", err)
	}

	profile, err := f.profiles.GetProfile(ctx)
	if err != nil {
		return f.fail(response.Message(err))
	}
	if profile == nil {
		profile = &api.Profile{}
	}

	if profile.Verification != "" && profile.Verification != "verified" {
		status := VerificationDeclined
		if profile.Verification == string(VerificationUnverified) {
			status = VerificationUnverified
		}
		if err := f.store.ClearAllAuthData(ctx); err != nil {
			f.logger.Printf("清除登录状态失败: %v", err)
		}
		return f.verification(status)
	}

	target := "/dashboard"
	if profile.Role != "" {
		if err := f.store.SetUserProfile(ctx, *profile); err != nil {
			f.logger.Printf("保存用户信息失败: %v", err)
		}
		target = RedirectPath(profile.Role)
	}

	result := Result{State: StateSuccess, Success: SuccessMessage, RedirectTo: target}
	f.transition(StateSuccess)

	if f.navigator != nil {
		if err := f.navigator.Navigate(ctx, target); err != nil {
			f.logger.Printf("跳转到 %s 失败: %v", target, err)
		}
	}
	return result
}

// RedirectPath 按角色决定跳转页面
func RedirectPath(role string) string {
	switch role {
	case "admin":
		return "/admin"
	case "psikolog":
		return "/psikolog"
	case "kader", "posyandu":
		return "/kader"
	}
	return "/dashboard"
}

// classify 根据登录失败信息判断是否为审核状态，unverified 优先
func classify(msg string) VerificationStatus {
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "unverified") {
		return VerificationUnverified
	}
	if strings.Contains(lower, "declined") || strings.Contains(lower, "ditolak") {
		return VerificationDeclined
	}
	return VerificationNone
}

func (f *Flow) fail(msg string) Result {
	f.transition(StateError)
	return Result{State: StateError, Error: msg}
}

func (f *Flow) verification(status VerificationStatus) Result {
	state := StateVerificationUnverified
	if status == VerificationDeclined {
		state = StateVerificationDeclined
	}
	f.transition(state)
	return Result{State: state, Verification: status}
}

func (f *Flow) transition(s State) {
	if f.observer != nil {
		f.observer(s)
	}
}
