package handler

import (
	"dubflow/app/service"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// WorkflowHandler 工作流状态处理器
type WorkflowHandler struct {
	workflow *service.WorkflowService
}

// NewWorkflowHandler 创建工作流状态处理器
func NewWorkflowHandler(workflow *service.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{workflow: workflow}
}

// GetWorkflowStatus 获取视频的整体工作流状态
func (h *WorkflowHandler) GetWorkflowStatus(c *gin.Context) {
	videoID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ApiResponse{
			Code:    400,
			Message: "无效的视频ID",
			Data:    nil,
		})
		return
	}

	status, err := h.workflow.GetWorkflowStatus(uint(videoID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, ApiResponse{
			Code:    500,
			Message: "获取工作流状态失败",
			Data:    nil,
		})
		return
	}

	c.JSON(http.StatusOK, ApiResponse{
		Code:    0,
		Message: "获取工作流状态成功",
		Data:    status,
	})
}
