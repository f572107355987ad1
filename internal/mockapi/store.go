package mockapi

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	RolePsikolog = "psikolog"

	VerificationVerified   = "verified"
	VerificationUnverified = "unverified"
	VerificationDeclined   = "declined"
)

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")
)

// User mock 后端的账号，仅保存在内存中
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Verification string
	NoTelp       string
	Spesialis    string
	Lokasi       string
	CreatedAt    time.Time
}

func (u User) Profile() ProfileResponse {
	return ProfileResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		Verification: u.Verification,
		NoTelp:       u.NoTelp,
		Spesialis:    u.Spesialis,
		Lokasi:       u.Lokasi,
	}
}

// UserStore 以邮箱（小写）为唯一键
type UserStore struct {
	mu      sync.RWMutex
	byID    map[string]*User
	byEmail map[string]string
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[string]*User),
		byEmail: make(map[string]string),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create 保存新用户并分配 ID
func (s *UserStore) Create(u User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := normalizeEmail(u.Email)
	if _, exists := s.byEmail[email]; exists {
		return User{}, ErrEmailTaken
	}

	u.ID = uuid.NewString()
	u.Email = email
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}

	s.byID[u.ID] = &u
	s.byEmail[email] = u.ID
	return u, nil
}

func (s *UserStore) FindByEmail(email string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return User{}, false
	}
	return *s.byID[id], true
}

func (s *UserStore) FindByID(id string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return User{}, false
	}
	return *u, true
}

func (s *UserStore) UpdatePasswordHash(email, hash string) error {
	return s.update(email, func(u *User) { u.PasswordHash = hash })
}

func (s *UserStore) SetVerification(email, status string) error {
	return s.update(email, func(u *User) { u.Verification = status })
}

func (s *UserStore) update(email string, fn func(u *User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return ErrUserNotFound
	}
	fn(s.byID[id])
	return nil
}
