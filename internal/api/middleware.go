package api

import (
	"context"
	"log"
	"net/http"
	"strings"
)

// RequestMiddleware 出站中间件，按 Client.requestChain 的顺序执行。
// 返回错误会中止请求，错误仍经过响应中间件链规范化。
type RequestMiddleware func(ctx context.Context, req *Request) error

// ResponseMiddleware 入站中间件，resp 与 err 至少一个非空
type ResponseMiddleware func(ctx context.Context, resp *Response, err error) (*Response, error)

func isMutating(method string) bool {
	switch strings.ToUpper(method) {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// CSRFMiddleware 写请求前确保 CSRF token 已引导，并附加到请求头。
// 拉取失败只记录日志，请求照常发出（不带 token）。
func CSRFMiddleware(session *CSRFSession, headerName string, logger *log.Logger) RequestMiddleware {
	return func(ctx context.Context, req *Request) error {
		if !isMutating(req.Method) {
			return nil
		}

		if _, err := session.EnsureToken(ctx); err != nil {
			logger.Printf("Failed to fetch CSRF token: %v", err)
		}

		if token := session.Token(); token != "" {
			req.Header.Set(headerName, token)
		}
		return nil
	}
}

// LoggingMiddleware 打印请求详情，必须排在 CSRFMiddleware 之后
func LoggingMiddleware(logger *log.Logger, cookieName, headerName string) RequestMiddleware {
	return func(ctx context.Context, req *Request) error {
		logger.Printf("REQUEST method=%s url=%s body=%s headers=%v",
			strings.ToUpper(req.Method), req.URL, string(req.Body), req.Header)

		if isMutating(req.Method) {
			logger.Printf("CSRF debug cookie=%s header=%s value=%q",
				cookieName, headerName, req.Header.Get(headerName))
		}
		return nil
	}
}

// ResponseLoggingMiddleware 打印响应，不改变结果
func ResponseLoggingMiddleware(logger *log.Logger) ResponseMiddleware {
	return func(ctx context.Context, resp *Response, err error) (*Response, error) {
		if err == nil {
			logger.Printf("RESPONSE status=%d url=%s body=%s", resp.StatusCode, resp.Request.URL, string(resp.Body))
			return resp, nil
		}

		if resp != nil {
			logger.Printf("ERROR status=%d url=%s body=%s", resp.StatusCode, resp.Request.URL, string(resp.Body))
		} else {
			logger.Printf("ERROR message=%v", err)
		}
		return resp, err
	}
}

// NormalizeErrorMiddleware 必须位于链尾：错误只保留后端 message
func NormalizeErrorMiddleware() ResponseMiddleware {
	return func(ctx context.Context, resp *Response, err error) (*Response, error) {
		if err != nil {
			return nil, normalizeError(err)
		}
		return resp, nil
	}
}
