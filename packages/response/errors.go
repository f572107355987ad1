package response

import "errors"

// 业务错误码
const (
	// 失败
	Fail ResponseCode = 0
	// 参数解析错误
	ParseError ResponseCode = 1
	// 参数错误
	InvalidParameter ResponseCode = 2
	// 未登录或令牌无效
	Unauthorized ResponseCode = 401
	// 权限不足 / CSRF 校验失败
	Forbidden ResponseCode = 403
	// 资源不存在
	NotFound ResponseCode = 404
	// 资源冲突（如邮箱已注册）
	Conflict ResponseCode = 409
)

// BusinessError 业务错误。客户端侧 Code 存放 HTTP 状态码，Msg 为后端返回的 message 原文
type BusinessError struct {
	Code ResponseCode
	Msg  string
	Err  error
}

func (e *BusinessError) Error() string {
	return e.Msg
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

type ErrorOption func(*BusinessError)

func WithErrorCode(code ResponseCode) ErrorOption {
	return func(be *BusinessError) {
		be.Code = code
	}
}

func WithErrorMessage(msg string) ErrorOption {
	return func(be *BusinessError) {
		be.Msg = msg
	}
}

func WithError(err error) ErrorOption {
	return func(be *BusinessError) {
		be.Err = err
	}
}

func NewBusinessError(opts ...ErrorOption) *BusinessError {
	err := &BusinessError{
		Code: Fail,
		Msg:  "business error",
		Err:  nil,
	}
	for _, opt := range opts {
		opt(err)
	}
	return err
}

// Message 取出可展示的消息：链上有 BusinessError 时用其 Msg，否则为 err.Error()
func Message(err error) string {
	if err == nil {
		return ""
	}
	var bizErr *BusinessError
	if errors.As(err, &bizErr) {
		return bizErr.Msg
	}
	return err.Error()
}
