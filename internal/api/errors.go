package api

import (
	"encoding/json"
	"errors"
	"fmt"

	"sidifa/portal/packages/response"
)

const (
	// NetworkErrorMessage 超时、DNS、连接被拒等没有服务端响应的情况
	NetworkErrorMessage = "Tidak dapat terhubung ke server"
	// DefaultErrorMessage 服务端返回了错误状态但没有 message 字段
	DefaultErrorMessage = "Terjadi kesalahan, silakan coba lagi"
	// RequestErrorMessage 请求还没发出就失败：请求体无法序列化或请求中间件中止
	RequestErrorMessage = "Permintaan tidak dapat diproses"
)

// RequestError 请求发出前的本地错误，与连接失败区分开
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return "request not sent: " + e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// StatusError 非 2xx 响应，只在中间件链内部流转，最终被 NormalizeErrorMiddleware 替换
type StatusError struct {
	Response *Response
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status code %d", e.Response.StatusCode)
}

// serverMessage 读取响应体中的 message 字段
func serverMessage(body []byte) (string, bool) {
	var payload struct {
		Message *string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Message == nil {
		return "", false
	}
	return *payload.Message, true
}

// normalizeError 把任意传输层错误转换为 *response.BusinessError，调用方只依赖 Msg
func normalizeError(err error) error {
	if err == nil {
		return nil
	}

	var bizErr *response.BusinessError
	if errors.As(err, &bizErr) {
		return bizErr
	}

	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage(RequestErrorMessage),
			response.WithError(err),
		)
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		msg, ok := serverMessage(statusErr.Response.Body)
		if !ok {
			msg = DefaultErrorMessage
		}
		return response.NewBusinessError(
			response.WithErrorCode(response.ResponseCode(statusErr.Response.StatusCode)),
			response.WithErrorMessage(msg),
			response.WithError(err),
		)
	}

	return response.NewBusinessError(
		response.WithErrorCode(response.Fail),
		response.WithErrorMessage(NetworkErrorMessage),
		response.WithError(err),
	)
}

// StatusCode 返回规范化错误携带的 HTTP 状态码，网络错误返回 0
func StatusCode(err error) int {
	var bizErr *response.BusinessError
	if errors.As(err, &bizErr) {
		return int(bizErr.Code)
	}
	return 0
}
