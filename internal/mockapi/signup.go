package mockapi

import (
	"errors"

	"sidifa/portal/internal/dto"
	"sidifa/portal/packages/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// signupPsikolog 心理师注册，新账号默认等待管理员审核
func (s *Server) signupPsikolog(c *gin.Context) {
	var req SignupPsikologRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	if req.Password != req.ConfirmPassword {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("Password dan konfirmasi password tidak sama"),
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

	verification := VerificationUnverified
	if s.opts.AutoVerify {
		verification = VerificationVerified
	}

	u, err := s.users.Create(User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         RolePsikolog,
		Verification: verification,
		NoTelp:       req.NoTelp,
		Spesialis:    req.Spesialis,
		Lokasi:       req.Lokasi,
	})
	if errors.Is(err, ErrEmailTaken) {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Conflict),
			response.WithErrorMessage("Email sudah terdaftar"),
		))
		return
	}
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("Gagal membuat akun"),
			response.WithError(err),
		))
		return
	}

	logger.Printf("akun psikolog baru: %s (%s)", u.Email, u.Verification)
	dto.CreatedResponse(c, u.Profile())
}
