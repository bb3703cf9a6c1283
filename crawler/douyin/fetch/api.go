package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"douyin-downloader-go/crawler/douyin/model"
	"douyin-downloader-go/logger"
)

// 上游成功码
const CodeOK = 200

// ErrRequest 网络请求失败或响应不是合法 JSON
var ErrRequest = errors.New("upstream request failed")

// APIError 上游返回了非 200 的业务码，或缺少必要字段
type APIError struct {
	Code    int64
	Message string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "未知错误"
	}
	return "API返回错误：" + msg
}

// APIClient 上游解析服务客户端
type APIClient struct {
	HTTPClient *resty.Client
	BaseURL    string
}

// NewAPIClient 创建客户端，timeout 为 0 表示不设超时
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	client := resty.New().
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	return &APIClient{
		HTTPClient: client,
		BaseURL:    baseURL,
	}
}

// get 发起 GET 请求并返回合法的 JSON 响应体，不检查 HTTP 状态码
func (c *APIClient) get(ctx context.Context, path, param, value string) ([]byte, error) {
	resp, err := c.HTTPClient.R().
		SetContext(ctx).
		SetQueryParam(param, value).
		Get(c.BaseURL + path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequest, err)
	}

	body := resp.Body()
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid JSON from %s (status %d)", ErrRequest, path, resp.StatusCode())
	}
	return body, nil
}

// GetAwemeID 把分享链接解析为 aweme_id
func (c *APIClient) GetAwemeID(ctx context.Context, shareURL string) (string, error) {
	log := logger.WithComponent("upstream")
	log.Debugf("请求 get_aweme_id: url=%s", shareURL)

	body, err := c.get(ctx, "/get_aweme_id", "url", shareURL)
	if err != nil {
		log.Errorf("get_aweme_id 请求失败: %v", err)
		return "", err
	}

	if code := gjson.GetBytes(body, "code").Int(); code != CodeOK {
		apiErr := &APIError{Code: code, Message: gjson.GetBytes(body, "message").String()}
		log.Warnf("get_aweme_id 返回错误码: %d, 消息: %s", code, apiErr.Message)
		return "", apiErr
	}

	// data 可能是字符串或数字
	id := gjson.GetBytes(body, "data").String()
	log.Debugf("get_aweme_id 成功: aweme_id=%s", id)
	return id, nil
}

// FetchOneVideoRaw 返回上游 fetch_one_video 的原始 JSON
func (c *APIClient) FetchOneVideoRaw(ctx context.Context, awemeID string) ([]byte, error) {
	return c.get(ctx, "/fetch_one_video", "aweme_id", awemeID)
}

// FetchOneVideo 获取视频详情（data.aweme_detail）
func (c *APIClient) FetchOneVideo(ctx context.Context, awemeID string) (*model.VideoData, error) {
	log := logger.WithComponent("upstream")
	log.Debugf("请求 fetch_one_video: aweme_id=%s", awemeID)

	body, err := c.FetchOneVideoRaw(ctx, awemeID)
	if err != nil {
		log.Errorf("fetch_one_video 请求失败: %v", err)
		return nil, err
	}

	code := gjson.GetBytes(body, "code").Int()
	detail := gjson.GetBytes(body, "data.aweme_detail")
	if code != CodeOK || !detail.IsObject() {
		apiErr := &APIError{Code: code, Message: gjson.GetBytes(body, "message").String()}
		log.Warnf("fetch_one_video 返回错误: code=%d, 消息: %s", code, apiErr.Message)
		return nil, apiErr
	}

	var video model.VideoData
	if err := json.Unmarshal([]byte(detail.Raw), &video); err != nil {
		return nil, fmt.Errorf("%w: 解析 aweme_detail 失败: %v", ErrRequest, err)
	}
	log.Infof("获取视频信息成功: aweme_id=%s", awemeID)
	return &video, nil
}
