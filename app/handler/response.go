package handler

import (
	"net/http"

	"dubflow/app/service"
)

// ApiResponse 统一的API响应格式
type ApiResponse struct {
	Code    int    `json:"code"`    // 状态码，0表示成功
	Message string `json:"message"` // 响应消息
	Data    any    `json:"data"`    // 响应数据
}

// statusForWorkflowError 把工作流错误类别映射为HTTP状态码和业务码。
// 非工作流错误一律按服务器内部错误处理
func statusForWorkflowError(err error) (int, int) {
	switch service.KindOf(err) {
	case service.ErrKindNotFound:
		return http.StatusNotFound, 404
	case service.ErrKindInvalidState:
		return http.StatusUnprocessableEntity, 422
	case service.ErrKindConflict:
		return http.StatusConflict, 409
	}
	return http.StatusInternalServerError, 500
}
