package mockapi

import (
	"errors"
	"sync"
	"time"
)

// RefreshToken 有效期：7天
const RefreshTokenExpiration = 7 * 24 * time.Hour

var ErrRefreshTokenNotFound = errors.New("refresh token not found or expired")

// TokenData 令牌数据结构
type TokenData struct {
	UserID string
	Email  string
	Role   string
}

type refreshEntry struct {
	data      TokenData
	expiresAt time.Time
}

// RefreshTokenRepository 刷新令牌存储（内存版）
type RefreshTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]refreshEntry
	byUser map[string]map[string]struct{}
	now    func() time.Time
}

func NewRefreshTokenRepository() *RefreshTokenRepository {
	return &RefreshTokenRepository{
		tokens: make(map[string]refreshEntry),
		byUser: make(map[string]map[string]struct{}),
		now:    time.Now,
	}
}

// Create 存储刷新令牌，并加入用户的 token 集合
func (r *RefreshTokenRepository) Create(token string, data TokenData) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens[token] = refreshEntry{data: data, expiresAt: r.now().Add(RefreshTokenExpiration)}
	if r.byUser[data.UserID] == nil {
		r.byUser[data.UserID] = make(map[string]struct{})
	}
	r.byUser[data.UserID][token] = struct{}{}
}

// Get 获取刷新令牌信息，过期的令牌视为不存在
func (r *RefreshTokenRepository) Get(token string) (*TokenData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.tokens[token]
	if !ok {
		return nil, ErrRefreshTokenNotFound
	}
	if r.now().After(entry.expiresAt) {
		r.deleteLocked(token)
		return nil, ErrRefreshTokenNotFound
	}
	data := entry.data
	return &data, nil
}

// Delete 删除刷新令牌（用户登出）
func (r *RefreshTokenRepository) Delete(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleteLocked(token)
}

// DeleteAllByUserID 删除用户的所有刷新令牌（修改密码等场景）
func (r *RefreshTokenRepository) DeleteAllByUserID(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for token := range r.byUser[userID] {
		delete(r.tokens, token)
	}
	delete(r.byUser, userID)
}

// CountActiveSessionsByUserID 获取用户的活跃 session 数量
func (r *RefreshTokenRepository) CountActiveSessionsByUserID(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byUser[userID])
}

func (r *RefreshTokenRepository) deleteLocked(token string) {
	entry, ok := r.tokens[token]
	if !ok {
		return
	}
	delete(r.tokens, token)
	if set := r.byUser[entry.data.UserID]; set != nil {
		delete(set, token)
		if len(set) == 0 {
			delete(r.byUser, entry.data.UserID)
		}
	}
}
