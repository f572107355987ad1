package mockapi

import (
	"sidifa/portal/internal/dto"
	"sidifa/portal/packages/response"

	"github.com/gin-gonic/gin"
)

// refreshToken 使用 cookie 中的 refresh token 轮换出新的令牌对
func (s *Server) refreshToken(c *gin.Context) {
	token, err := c.Cookie(refreshTokenCookie)
	if err != nil || token == "" {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Unauthorized),
			response.WithErrorMessage("Refresh token tidak ditemukan"),
		))
		return
	}

	data, err := s.refresh.Get(token)
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Unauthorized),
			response.WithErrorMessage("Refresh token tidak valid atau kedaluwarsa"),
			response.WithError(err),
		))
		return
	}

	u, ok := s.users.FindByID(data.UserID)
	if !ok {
		s.refresh.Delete(token)
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Unauthorized),
			response.WithErrorMessage("Pengguna tidak ditemukan"),
		))
		return
	}

	// 旧令牌只能使用一次
	s.refresh.Delete(token)
	if bizErr := s.issueSession(c, u); bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	dto.SuccessResponse(c, gin.H{"refreshed": true})
}

// logout 撤销 refresh token 并清除 cookie，未登录时同样返回成功
func (s *Server) logout(c *gin.Context) {
	if token, err := c.Cookie(refreshTokenCookie); err == nil && token != "" {
		s.refresh.Delete(token)
	}
	clearSessionCookies(c)

	dto.SuccessResponse(c, gin.H{"logged_out": true})
}

// me 返回当前登录用户，user_id 由 JWTAuth 写入
func (s *Server) me(c *gin.Context) {
	userID := c.GetString("user_id")
	u, ok := s.users.FindByID(userID)
	if !ok {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("Pengguna tidak ditemukan"),
		))
		return
	}

	dto.SuccessResponse(c, u.Profile())
}
