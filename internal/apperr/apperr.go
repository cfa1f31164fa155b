// Package apperr 统一错误分类：
//   - ValidationError：前置校验失败（商品不存在、库存不足、数量非法），不发起网络调用；
//   - APIError：远端网关失败（网络错误、非 2xx、响应非法），Status=0 表示网络层错误;
//   - 状态类冲突（如对非 completed 订单退款）以 false/no-op 结果表达，不作为 error。
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError 下单前置校验失败。
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validationf 构造一个带格式化消息的校验错误。
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation 判断 err 是否为前置校验失败。
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// APIError 远端服务返回的结构化失败，对应原始响应的状态码与消息。
type APIError struct {
	Status  int    // 0 表示请求未到达服务端（网络错误）
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("network error: %s", e.Message)
	}
	return fmt.Sprintf("http %d: %s", e.Status, e.Message)
}

// IsAPI 判断 err 是否为远端网关失败。
func IsAPI(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}

// HTTPStatus 将内部错误映射为 console 接口的 HTTP 状态码。
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	case IsValidation(err):
		return http.StatusBadRequest

	case IsAPI(err):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}
