package mockapi

import (
	"sidifa/portal/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) initRoute(r *gin.Engine) {
	apiV1 := r.Group("/api/v1")
	{
		apiV1.GET("/csrf/token", s.csrfToken)

		authGroup := apiV1.Group("/auth")
		authGroup.Use(middleware.CSRFProtect(s.opts.CSRFCookieName, s.opts.CSRFHeaderName))
		authGroup.POST("/signup/psikolog", s.signupPsikolog)
		authGroup.POST("/login", s.login)
		authGroup.POST("/refresh", s.refreshToken)
		authGroup.POST("/logout", s.logout)
		authGroup.POST("/forgot-password", s.forgotPassword)
		authGroup.POST("/reset-password", s.resetPassword)
		authGroup.GET("/me", middleware.JWTAuth(s.issuer), s.me)
	}
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	if gin.Mode() != gin.TestMode {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	// 允许多个前端端口
	allowedOrigins := []string{
		"http://localhost:4321",
		"http://localhost:5173",
	}
	allowedOrigins = append(allowedOrigins, s.opts.AllowedOrigins...)

	// 设置跨域请求，前端需要携带 cookie 和 CSRF 请求头
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", s.opts.CSRFHeaderName},
		AllowCredentials: true,
	}))

	s.initRoute(r)

	return r
}
