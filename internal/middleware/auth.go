package middleware

import (
	"errors"
	"strings"

	"sidifa/portal/internal/dto"
	"sidifa/portal/internal/pkg"
	"sidifa/portal/packages/response"

	"github.com/gin-gonic/gin"
)

// parseToken 从 cookie 或 Authorization header 中解析 token
func parseToken(c *gin.Context, issuer *pkg.TokenIssuer) (*pkg.Claims, error) {
	// 优先从 cookie 中获取 access_token
	tokenString, err := c.Cookie("access_token")
	if err != nil || tokenString == "" {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			return nil, errors.New("Token tidak ditemukan")
		}

		// 验证格式: Bearer <token>
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return nil, errors.New("Format token tidak valid")
		}
		tokenString = strings.TrimPrefix(authHeader, "Bearer ")
	}

	claims, err := issuer.ParseAccessToken(tokenString)
	if err != nil {
		if errors.Is(err, pkg.ErrExpiredToken) {
			return nil, errors.New("Token kedaluwarsa")
		}
		return nil, errors.New("Token tidak valid")
	}
	return claims, nil
}

// JWTAuth JWT 认证中间件（必需认证）
func JWTAuth(issuer *pkg.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseToken(c, issuer)
		if err != nil {
			dto.AbortWithError(c, response.NewBusinessError(
				response.WithErrorCode(response.Unauthorized),
				response.WithErrorMessage(err.Error()),
			))
			return
		}

		// 将用户信息存入上下文
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}
