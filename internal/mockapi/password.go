package mockapi

import (
	"errors"

	"sidifa/portal/internal/dto"
	"sidifa/portal/internal/pkg"
	"sidifa/portal/packages/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// forgotPassword 发送重置密码邮件，未配置 SMTP 时令牌写入日志。
// 无论邮箱是否存在都返回成功，避免泄露账号是否注册。
func (s *Server) forgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	token, err := s.IssueResetToken(req.Email)
	if err != nil {
		dto.SuccessResponse(c, gin.H{"sent": true})
		return
	}

	if s.opts.Mailer == nil {
		logger.Printf("reset token untuk %s: %s", req.Email, token)
	} else if err := s.opts.Mailer.SendResetPassword(req.Email, token, int(resetTokenTTL.Minutes())); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("Gagal mengirim email reset password"),
			response.WithError(err),
		))
		return
	}

	dto.SuccessResponse(c, gin.H{"sent": true})
}

// resetPassword 校验重置令牌后更新密码，并让该用户所有会话失效
func (s *Server) resetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	claims, err := s.issuer.ParseResetToken(req.Token)
	if err != nil {
		msg := "Token reset tidak valid"
		if errors.Is(err, pkg.ErrExpiredToken) {
			msg = "Token reset sudah kedaluwarsa"
		}
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage(msg),
			response.WithError(err),
		))
		return
	}

	u, ok := s.users.FindByEmail(claims.Email)
	if !ok {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("Pengguna tidak ditemukan"),
		))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.opts.BcryptCost)
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("Gagal memproses password"),
			response.WithError(err),
		))
		return
	}
	if err := s.users.UpdatePasswordHash(u.Email, string(hash)); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("Gagal menyimpan password"),
			response.WithError(err),
		))
		return
	}
	s.refresh.DeleteAllByUserID(u.ID)

	dto.SuccessResponse(c, gin.H{"reset": true})
}
