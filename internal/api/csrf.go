package api

import (
	"context"
	"sync"
)

// CSRFSession 保存本进程生命周期内的 CSRF 引导状态。
//
// token 只会在 fetched 为 true 时非空，Reset 同时清空两者。
// mu 只保护字段读写，拉取 token 期间不持锁：并发的首批写请求可能各自触发一次拉取，
// 这与浏览器端的行为一致。
type CSRFSession struct {
	mu      sync.Mutex
	fetched bool
	token   string
	fetch   func(ctx context.Context) (CSRFTokenResponse, error)
}

func NewCSRFSession(fetch func(ctx context.Context) (CSRFTokenResponse, error)) *CSRFSession {
	return &CSRFSession{fetch: fetch}
}

// EnsureToken 未引导过时拉取一次 token 并缓存，已引导则直接返回缓存值
func (s *CSRFSession) EnsureToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	fetched, token := s.fetched, s.token
	s.mu.Unlock()
	if fetched {
		return token, nil
	}

	resp, err := s.fetch(ctx)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.token = resp.CSRFToken
	s.fetched = true
	s.mu.Unlock()

	return resp.CSRFToken, nil
}

// Reset 回到初始状态，下一次写请求会重新拉取 token
func (s *CSRFSession) Reset() {
	s.mu.Lock()
	s.fetched = false
	s.token = ""
	s.mu.Unlock()
}

// Token 当前缓存的 token，未引导时为空
func (s *CSRFSession) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Fetched 是否已完成引导
func (s *CSRFSession) Fetched() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetched
}
