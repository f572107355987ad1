package api

import (
	"encoding/json"
	"net/http"
)

// Request 出站请求。中间件按注册顺序依次修改它，最后才转换为 *http.Request
type Request struct {
	Method string
	Path   string
	URL    string
	Header http.Header
	Body   []byte
}

// Response 入站响应，Body 为原始字节
type Response struct {
	StatusCode int
	Header     http.Header
	Body       json.RawMessage
	Request    *Request
}

// CSRFTokenResponse GET /csrf/token 的返回
type CSRFTokenResponse struct {
	CSRFToken string `json:"csrfToken"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResetPasswordRequest 重置密码请求，token 来自重置邮件
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// SignupPsikologRequest 心理师注册表单，字段名与后端保持一致
type SignupPsikologRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	NoTelp          string `json:"no_telp"`
	Spesialis       string `json:"spesialis"`
	Lokasi          string `json:"lokasi"`
}

// Profile GET /auth/me 返回的当前用户
type Profile struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	Role         string `json:"role,omitempty"`
	Verification string `json:"verification,omitempty"`
}

func (p Profile) empty() bool {
	return p == Profile{}
}
