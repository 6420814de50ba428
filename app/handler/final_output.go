package handler

import (
	"dubflow/app/database"
	"dubflow/app/model"
	"dubflow/app/service"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// FinalOutputHandler 最终成片处理器
type FinalOutputHandler struct {
	workflow *service.WorkflowService
}

// NewFinalOutputHandler 创建最终成片处理器
func NewFinalOutputHandler(workflow *service.WorkflowService) *FinalOutputHandler {
	return &FinalOutputHandler{workflow: workflow}
}

// 创建成功响应
func (h *FinalOutputHandler) success(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, ApiResponse{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// 创建错误响应
func (h *FinalOutputHandler) error(c *gin.Context, statusCode int, errorCode int, message string) {
	c.JSON(statusCode, ApiResponse{
		Code:    errorCode,
		Message: message,
		Data:    nil,
	})
}

// CreateFinalOutputRequest 创建最终成片请求结构
type CreateFinalOutputRequest struct {
	VideoID              uint   `json:"video_id" binding:"required"`
	TranslationJobID     uint   `json:"translation_job_id" binding:"required"`
	AudioGenerationJobID uint   `json:"audio_generation_job_id" binding:"required"`
	FinalVideoPath       string `json:"final_video_path" binding:"required"`
}

// CreateFinalOutput 创建最终成片记录（合成服务完成混流后回调）
func (h *FinalOutputHandler) CreateFinalOutput(c *gin.Context) {
	var req CreateFinalOutputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.error(c, http.StatusBadRequest, 400, "请求参数错误: "+err.Error())
		return
	}

	output, err := h.workflow.CreateFinalOutput(req.VideoID, req.TranslationJobID, req.AudioGenerationJobID, req.FinalVideoPath)
	if err != nil {
		statusCode, errorCode := statusForWorkflowError(err)
		h.error(c, statusCode, errorCode, err.Error())
		return
	}

	h.success(c, output, "创建最终成片成功")
}

// ListFinalOutputs 获取视频的所有最终成片
func (h *FinalOutputHandler) ListFinalOutputs(c *gin.Context) {
	videoID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.error(c, http.StatusBadRequest, 400, "无效的视频ID")
		return
	}

	var outputs []model.FinalOutput
	if err := database.DB.Where("video_id = ?", videoID).
		Order("created_at DESC, id DESC").
		Find(&outputs).Error; err != nil {
		h.error(c, http.StatusInternalServerError, 500, "获取成片列表失败")
		return
	}

	h.success(c, outputs, "获取成片列表成功")
}
