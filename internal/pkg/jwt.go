package pkg

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims 访问令牌自定义声明
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// 区分重置令牌与访问令牌，两者使用同一密钥
const resetSubject = "password_reset"

// ResetClaims 重置密码令牌，只携带邮箱
type ResetClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenIssuer 使用同一个 HMAC 密钥签发/校验令牌
type TokenIssuer struct {
	secret []byte
	expire time.Duration
}

func NewTokenIssuer(secret string, expire time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), expire: expire}
}

// GenerateAccessToken 生成访问令牌（短期有效，用于 API 访问）
func (i *TokenIssuer) GenerateAccessToken(userID, email, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expire)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// ParseAccessToken 解析并验证访问令牌
func (i *TokenIssuer) ParseAccessToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if err := i.parse(tokenString, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// GenerateResetToken 生成重置密码令牌
func (i *TokenIssuer) GenerateResetToken(email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &ResetClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   resetSubject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// ParseResetToken 解析重置密码令牌
func (i *TokenIssuer) ParseResetToken(tokenString string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	if err := i.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.Email == "" || claims.Subject != resetSubject {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (i *TokenIssuer) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrExpiredToken
		}
		return ErrInvalidToken
	}

	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
