package middleware

import (
	"crypto/subtle"

	"sidifa/portal/internal/dto"
	"sidifa/portal/packages/response"

	"github.com/gin-gonic/gin"
)

// CSRFProtect 双重提交校验：写请求的请求头必须与 cookie 中的 token 一致
func CSRFProtect(cookieName, headerName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case "GET", "HEAD", "OPTIONS":
			c.Next()
			return
		}

		cookie, err := c.Cookie(cookieName)
		header := c.GetHeader(headerName)
		if err != nil || cookie == "" || header == "" ||
			subtle.ConstantTimeCompare([]byte(cookie), []byte(header)) != 1 {
			dto.AbortWithError(c, response.NewBusinessError(
				response.WithErrorCode(response.Forbidden),
				response.WithErrorMessage("invalid csrf token"),
			))
			return
		}
		c.Next()
	}
}
