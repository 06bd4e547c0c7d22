// Package reading 封装远端塔罗解读服务的 HTTP 调用
package reading

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"tarott/pkg/logger"
)

// ErrServiceFailure 网络错误、非 2xx 状态或响应格式不正确
var ErrServiceFailure = errors.New("reading service failure")

// Client 远端解读服务客户端。
// 每次提交只发一次请求，失败不自动重试，由用户决定是否重新提交。
type Client struct {
	client  *resty.Client
	baseURL string
	path    string
	metrics metrics
}

// NewClient 创建客户端
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil || strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("reading: base url is required")
	}

	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return &Client{
		client:  client,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		path:    "/" + strings.TrimLeft(path, "/"),
	}, nil
}

// URL 完整的接口地址
func (c *Client) URL() string {
	return c.baseURL + c.path
}

// Stats 返回请求统计
func (c *Client) Stats() Stats {
	return c.metrics.snapshot()
}

// RequestReading 提交一次解读请求并返回解读文本
func (c *Client) RequestReading(ctx context.Context, req *Request) (string, error) {
	start := time.Now()
	text, err := c.requestReading(ctx, req, start)
	c.metrics.record(time.Since(start), err)
	return text, err
}

func (c *Client) requestReading(ctx context.Context, req *Request, start time.Time) (string, error) {

	logger.Info("Reading",
		zap.String("event", "request"),
		zap.String("url", shortenURL(c.URL())),
		zap.String("type", string(req.Type)),
		zap.Ints("cards", req.SelectedCards),
		zap.Bools("orientations", req.CardOrientations),
	)

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post(c.URL())
	if err != nil {
		logger.ErrorString("Reading", "Error", fmt.Sprintf("请求失败 实例:%s 错误:%v", shortenURL(c.URL()), err))
		return "", fmt.Errorf("%w: %v", ErrServiceFailure, err)
	}

	logger.Info("Reading",
		zap.String("event", "response"),
		zap.Int("status", resp.StatusCode()),
		zap.Int("bytes", len(resp.Body())),
		zap.Duration("elapsed", time.Since(start)),
	)

	if !resp.IsSuccess() {
		logger.ErrorString("Reading", "Response", fmt.Sprintf("非 2xx 状态:%d 响应:%s", resp.StatusCode(), truncate(resp.String(), 200)))
		return "", fmt.Errorf("%w: status %d", ErrServiceFailure, resp.StatusCode())
	}

	var body Response
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrServiceFailure, err)
	}

	text := body.Text()
	if text == "" {
		if body.Error != "" {
			logger.ErrorString("Reading", "Response", "远端返回错误: "+truncate(body.Error, 200))
			return "", fmt.Errorf("%w: remote error: %s", ErrServiceFailure, body.Error)
		}
		return "", fmt.Errorf("%w: response has neither reading nor message", ErrServiceFailure)
	}

	return text, nil
}

// shortenURL 缩短 URL 用于日志显示
func shortenURL(url string) string {
	if len(url) > 40 {
		return url[:20] + "..." + url[len(url)-17:]
	}
	return url
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
