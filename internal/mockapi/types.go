package mockapi

// SignupPsikologRequest 心理师注册请求
type SignupPsikologRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
	NoTelp          string `json:"no_telp" binding:"required"`
	Spesialis       string `json:"spesialis" binding:"required"`
	Lokasi          string `json:"lokasi" binding:"required"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// ForgotPasswordRequest 申请重置密码
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// CSRFTokenResponse GET /csrf/token 响应
type CSRFTokenResponse struct {
	CSRFToken string `json:"csrfToken"`
}

// ProfileResponse 用户信息响应
type ProfileResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Verification string `json:"verification"`
	NoTelp       string `json:"no_telp,omitempty"`
	Spesialis    string `json:"spesialis,omitempty"`
	Lokasi       string `json:"lokasi,omitempty"`
}

// LoginResponse 登录成功返回的数据
type LoginResponse struct {
	User ProfileResponse `json:"user"`
}

// RefreshTokenResponse 刷新令牌响应
type RefreshTokenResponse struct {
	AccessToken string `json:"access_token"`
}
