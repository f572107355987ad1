// CSRF 保护流程
//
// 所有 POST/PUT/PATCH/DELETE 请求在发出前，如果本进程尚未拉取过 CSRF token，
// 会先请求 /csrf/token（同时由 cookie jar 保存后端下发的 _csrf cookie），
// 之后每个写请求都带上 X-CSRF-TOKEN 头。token 每个进程生命周期只拉取一次，
// 退出登录时重置，下次写请求重新拉取。
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"

	"sidifa/portal/config"
)

const csrfTokenPath = "/csrf/token"

// Client 所有后端接口调用的统一入口
type Client struct {
	conf       config.APIConfig
	baseURL    string
	headers    http.Header
	httpClient *http.Client
	logger     *log.Logger
	csrf       *CSRFSession

	extraRequest  []RequestMiddleware
	requestChain  []RequestMiddleware
	responseChain []ResponseMiddleware
}

type Option func(*Client)

// WithHTTPClient 替换底层 http.Client；未设置 Jar 时会补上一个，保证携带 cookie
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRequestMiddleware 追加到内置中间件之后
func WithRequestMiddleware(mw ...RequestMiddleware) Option {
	return func(c *Client) {
		c.extraRequest = append(c.extraRequest, mw...)
	}
}

// NewClient 根据配置创建客户端
func NewClient(conf config.APIConfig, opts ...Option) (*Client, error) {
	c := &Client{
		conf:    conf,
		baseURL: strings.TrimRight(conf.URL, "/"),
		headers: http.Header{
			"Content-Type": {"application/json"},
			"Accept":       {"application/json"},
		},
		httpClient: &http.Client{Timeout: conf.Timeout},
		logger:     log.New(os.Stderr, "[portal-api] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("创建 cookie jar 失败: %w", err)
		}
		c.httpClient.Jar = jar
	}

	c.csrf = NewCSRFSession(c.FetchCSRFToken)

	// 顺序即契约：CSRF 先于日志，日志才能看到附加的请求头
	c.requestChain = []RequestMiddleware{CSRFMiddleware(c.csrf, conf.CSRFHeaderName, c.logger)}
	if conf.Debug {
		c.requestChain = append(c.requestChain, LoggingMiddleware(c.logger, conf.CSRFCookieName, conf.CSRFHeaderName))
	}
	c.requestChain = append(c.requestChain, c.extraRequest...)

	if conf.Debug {
		c.responseChain = append(c.responseChain, ResponseLoggingMiddleware(c.logger))
	}
	c.responseChain = append(c.responseChain, NormalizeErrorMiddleware())

	return c, nil
}

// CSRF 返回本客户端的 CSRF 引导状态
func (c *Client) CSRF() *CSRFSession {
	return c.csrf
}

// BaseURL 接口基础地址
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Cookie 读取 jar 中保存的 cookie 值，不存在返回空字符串
func (c *Client) Cookie(name string) string {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return ""
	}
	for _, cookie := range c.httpClient.Jar.Cookies(u) {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

// FetchCSRFToken 直接请求 /csrf/token，不经过中间件链，传输错误原样返回给调用方
func (c *Client) FetchCSRFToken(ctx context.Context) (CSRFTokenResponse, error) {
	req := &Request{
		Method: http.MethodGet,
		Path:   csrfTokenPath,
		URL:    c.baseURL + csrfTokenPath,
		Header: http.Header{"Accept": {"application/json"}},
	}

	resp, err := c.send(ctx, req)
	if err != nil {
		return CSRFTokenResponse{}, normalizeError(err)
	}

	var out CSRFTokenResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return CSRFTokenResponse{}, fmt.Errorf("解析 CSRF token 失败: %w", err)
	}
	return out, nil
}

// Do 发送请求：请求中间件 -> HTTP -> 响应中间件
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	req, err := c.newRequest(method, path, body)
	if err != nil {
		return c.handleResponse(ctx, nil, &RequestError{Err: err})
	}

	for _, mw := range c.requestChain {
		if err := mw(ctx, req); err != nil {
			return c.handleResponse(ctx, nil, &RequestError{Err: err})
		}
	}

	resp, err := c.send(ctx, req)
	return c.handleResponse(ctx, resp, err)
}

func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, body)
}

func (c *Client) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil)
}

func (c *Client) newRequest(method, path string, body any) (*Request, error) {
	target := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		target = c.baseURL + "/" + strings.TrimLeft(path, "/")
	}

	req := &Request{
		Method: strings.ToUpper(method),
		Path:   path,
		URL:    target,
		Header: c.headers.Clone(),
	}

	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("序列化请求体失败: %w", err)
		}
		req.Body = raw
	}
	return req, nil
}

// send 执行 HTTP 请求；非 2xx 返回 *StatusError 并附带响应
func (c *Client) send(ctx context.Context, req *Request) (*Response, error) {
	var reader io.Reader
	if req.Body != nil {
		reader = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, reader)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	httpReq.Header = req.Header.Clone()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       raw,
		Request:    req,
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, &StatusError{Response: resp}
	}
	return resp, nil
}

func (c *Client) handleResponse(ctx context.Context, resp *Response, err error) (*Response, error) {
	for _, mw := range c.responseChain {
		resp, err = mw(ctx, resp, err)
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}
