package api

import (
	"context"
	"encoding/json"
)

// AuthService 认证相关接口，CSRF token 由中间件自动处理
type AuthService struct {
	client *Client
}

func NewAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

// Login 登录，返回后端响应体原文
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (json.RawMessage, error) {
	resp, err := s.client.Post(ctx, "/auth/login", req)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Logout 先重置 CSRF 引导状态再请求退出，下次登录会重新拉取 token
func (s *AuthService) Logout(ctx context.Context) (json.RawMessage, error) {
	s.client.CSRF().Reset()

	resp, err := s.client.Post(ctx, "/auth/logout", nil)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Refresh 刷新访问令牌
func (s *AuthService) Refresh(ctx context.Context) (json.RawMessage, error) {
	resp, err := s.client.Post(ctx, "/auth/refresh", nil)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// ResetPassword 使用邮件中的重置令牌设置新密码
func (s *AuthService) ResetPassword(ctx context.Context, req ResetPasswordRequest) (json.RawMessage, error) {
	resp, err := s.client.Post(ctx, "/auth/reset-password", req)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// SignupPsikolog 心理师注册
func (s *AuthService) SignupPsikolog(ctx context.Context, req SignupPsikologRequest) (json.RawMessage, error) {
	resp, err := s.client.Post(ctx, "/auth/signup/psikolog", req)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}
