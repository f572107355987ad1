package mockapi

import (
	"sidifa/portal/internal/dto"
	"sidifa/portal/internal/pkg"
	"sidifa/portal/packages/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenCookie  = "access_token"
	refreshTokenCookie = "refresh_token"
)

// login 邮箱密码登录，成功后通过 cookie 下发 access_token 与 refresh_token
func (s *Server) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	u, ok := s.users.FindByEmail(req.Email)
	if !ok || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Unauthorized),
			response.WithErrorMessage("Email atau password salah"),
		))
		return
	}

	if s.opts.RejectUnverifiedLogin {
		switch u.Verification {
		case VerificationUnverified:
			dto.ErrorResponse(c, response.NewBusinessError(
				response.WithErrorCode(response.Forbidden),
				response.WithErrorMessage("Account unverified"),
			))
			return
		case VerificationDeclined:
			dto.ErrorResponse(c, response.NewBusinessError(
				response.WithErrorCode(response.Forbidden),
				response.WithErrorMessage("Permintaan ditolak"),
			))
			return
		}
	}

	if bizErr := s.issueSession(c, u); bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	dto.SuccessResponse(c, LoginResponse{User: u.Profile()})
}

// issueSession 签发一对新令牌并写入 cookie
func (s *Server) issueSession(c *gin.Context, u User) *response.BusinessError {
	accessToken, err := s.issuer.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("Gagal membuat token"),
			response.WithError(err),
		)
	}

	refreshToken, err := pkg.GenerateRandomToken()
	if err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("Gagal membuat token"),
			response.WithError(err),
		)
	}
	s.refresh.Create(refreshToken, TokenData{UserID: u.ID, Email: u.Email, Role: u.Role})

	c.SetCookie(accessTokenCookie, accessToken, int(s.opts.TokenTTL.Seconds()), "/", "", false, true)
	c.SetCookie(refreshTokenCookie, refreshToken, int(RefreshTokenExpiration.Seconds()), "/", "", false, true)
	return nil
}

func clearSessionCookies(c *gin.Context) {
	c.SetCookie(accessTokenCookie, "", -1, "/", "", false, true)
	c.SetCookie(refreshTokenCookie, "", -1, "/", "", false, true)
}
