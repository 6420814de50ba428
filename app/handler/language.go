package handler

import (
	"dubflow/app/model"
	"net/http"

	"github.com/gin-gonic/gin"
)

// LanguageHandler 语言列表处理器
type LanguageHandler struct{}

// NewLanguageHandler 创建语言列表处理器
func NewLanguageHandler() *LanguageHandler {
	return &LanguageHandler{}
}

// GetLanguages 获取支持的翻译语言列表
func (h *LanguageHandler) GetLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, ApiResponse{
		Code:    0,
		Message: "获取语言列表成功",
		Data:    model.SupportedLanguages(),
	})
}
