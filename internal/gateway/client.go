// Package gateway 封装两个远端 REST 协作方（商品服务与订单服务）的类型化客户端。
// 职责：线上报文归一化（pk -> id）、固定请求头、把任何失败转成结构化的 apperr.APIError。
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"inventory_console/internal/apperr"
)

// client 两个网关共用的 HTTP 底座。
type client struct {
	hc      *http.Client
	baseURL string
	headers map[string]string
}

// do 发送一次 JSON 请求并返回原始响应体。
// 约定：任何网络错误、非 2xx 响应都转成 *apperr.APIError，永不返回裸错误。
func (c *client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, &apperr.APIError{Status: 0, Message: "encode request: " + err.Error()}
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, &apperr.APIError{Status: 0, Message: "build request: " + err.Error()}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &apperr.APIError{Status: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperr.APIError{Status: resp.StatusCode, Message: "read response: " + err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apperr.APIError{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, raw)}
	}
	return raw, nil
}

// errorMessage 优先取响应体里的 message 字段，取不到则退化为 "HTTP <status>"。
func errorMessage(status int, raw []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return "HTTP " + strconv.Itoa(status)
}

// isJSONArray 判断响应体是否为 JSON 数组（订单 list 接口可能返回非数组）。
func isJSONArray(raw []byte) bool {
	s := strings.TrimSpace(string(raw))
	return strings.HasPrefix(s, "[")
}
