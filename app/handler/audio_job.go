package handler

import (
	"dubflow/app/database"
	"dubflow/app/model"
	"dubflow/app/service"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AudioJobHandler 音频生成任务处理器
type AudioJobHandler struct {
	workflow *service.WorkflowService
}

// NewAudioJobHandler 创建音频生成任务处理器
func NewAudioJobHandler(workflow *service.WorkflowService) *AudioJobHandler {
	return &AudioJobHandler{workflow: workflow}
}

// 创建成功响应
func (h *AudioJobHandler) success(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, ApiResponse{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// 创建错误响应
func (h *AudioJobHandler) error(c *gin.Context, statusCode int, errorCode int, message string) {
	c.JSON(statusCode, ApiResponse{
		Code:    errorCode,
		Message: message,
		Data:    nil,
	})
}

// CreateAudioJobRequest 创建音频生成任务请求结构
type CreateAudioJobRequest struct {
	VoiceCloned *bool `json:"voice_cloned"` // 省略时默认克隆原声
}

// CreateAudioJob 为翻译任务创建音频生成任务
func (h *AudioJobHandler) CreateAudioJob(c *gin.Context) {
	jobID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.error(c, http.StatusBadRequest, 400, "无效的翻译任务ID")
		return
	}

	var req CreateAudioJobRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.error(c, http.StatusBadRequest, 400, "请求参数错误: "+err.Error())
		return
	}

	audioJob, err := h.workflow.CreateAudioGenerationJob(uint(jobID), req.VoiceCloned)
	if err != nil {
		statusCode, errorCode := statusForWorkflowError(err)
		h.error(c, statusCode, errorCode, err.Error())
		return
	}

	h.success(c, audioJob, "创建音频生成任务成功")
}

// ListAudioJobs 获取翻译任务的音频生成任务列表
func (h *AudioJobHandler) ListAudioJobs(c *gin.Context) {
	jobID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.error(c, http.StatusBadRequest, 400, "无效的翻译任务ID")
		return
	}

	var jobs []model.AudioGenerationJob
	query := database.DB.Where("translation_job_id = ?", jobID)

	// 分页参数
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	offset := (page - 1) * pageSize

	// 状态过滤
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Model(&model.AudioGenerationJob{}).Count(&total)

	if err := query.Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&jobs).Error; err != nil {
		h.error(c, http.StatusInternalServerError, 500, "获取音频任务列表失败")
		return
	}

	h.success(c, gin.H{
		"list":     jobs,
		"total":    total,
		"current":  page,
		"pageSize": pageSize,
	}, "获取音频任务列表成功")
}

// GetAudioJob 获取单个音频生成任务
func (h *AudioJobHandler) GetAudioJob(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.error(c, http.StatusBadRequest, 400, "无效的ID")
		return
	}

	var job model.AudioGenerationJob
	if err := database.DB.First(&job, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			h.error(c, http.StatusNotFound, 404, "音频生成任务不存在")
			return
		}
		h.error(c, http.StatusInternalServerError, 500, "获取音频生成任务失败")
		return
	}

	h.success(c, job, "获取音频生成任务成功")
}

// UpdateAudioJobRequest 更新音频生成任务请求结构
type UpdateAudioJobRequest struct {
	Status             *model.AudioStatus `json:"status"`
	GeneratedAudioPath *string            `json:"generated_audio_path"`
	ErrorMessage       *string            `json:"error_message"`
}

// UpdateAudioJob 更新音频生成任务（语音克隆协作方上报进度）
func (h *AudioJobHandler) UpdateAudioJob(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.error(c, http.StatusBadRequest, 400, "无效的ID")
		return
	}

	var req UpdateAudioJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.error(c, http.StatusBadRequest, 400, "请求参数错误: "+err.Error())
		return
	}

	job, err := h.workflow.UpdateAudioGenerationJob(uint(id), service.AudioJobPatch{
		Status:             req.Status,
		GeneratedAudioPath: req.GeneratedAudioPath,
		ErrorMessage:       req.ErrorMessage,
	})
	if err != nil {
		statusCode, errorCode := statusForWorkflowError(err)
		h.error(c, statusCode, errorCode, err.Error())
		return
	}

	h.success(c, job, "更新音频生成任务成功")
}
