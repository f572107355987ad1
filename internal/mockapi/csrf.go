package mockapi

import (
	"net/http"

	"sidifa/portal/internal/dto"
	"sidifa/portal/internal/pkg"
	"sidifa/portal/packages/response"

	"github.com/gin-gonic/gin"
)

// csrfToken 下发 CSRF token：写入 cookie，同时在响应体顶层返回
func (s *Server) csrfToken(c *gin.Context) {
	s.csrfHits.Add(1)

	token, err := pkg.GenerateRandomToken()
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("Gagal membuat CSRF token"),
			response.WithError(err),
		))
		return
	}

	// cookie 需要可被前端读取，用于双重提交
	c.SetCookie(s.opts.CSRFCookieName, token, 0, "/", "", false, false)
	c.JSON(http.StatusOK, CSRFTokenResponse{CSRFToken: token})
}
