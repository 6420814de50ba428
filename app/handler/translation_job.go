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

// TranslationJobHandler 翻译任务处理器
type TranslationJobHandler struct {
	workflow *service.WorkflowService
}

// NewTranslationJobHandler 创建翻译任务处理器
func NewTranslationJobHandler(workflow *service.WorkflowService) *TranslationJobHandler {
	return &TranslationJobHandler{workflow: workflow}
}

// 创建成功响应
func (h *TranslationJobHandler) success(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, ApiResponse{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// 创建错误响应
func (h *TranslationJobHandler) error(c *gin.Context, statusCode int, errorCode int, message string) {
	c.JSON(statusCode, ApiResponse{
		Code:    errorCode,
		Message: message,
		Data:    nil,
	})
}

// CreateTranslationJobRequest 创建翻译任务请求结构
type CreateTranslationJobRequest struct {
	SourceLanguage string `json:"source_language" binding:"required"`
	TargetLanguage string `json:"target_language" binding:"required"`
}

// CreateTranslationJob 为视频创建翻译任务
func (h *TranslationJobHandler) CreateTranslationJob(c *gin.Context) {
	videoID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.error(c, http.StatusBadRequest, 400, "无效的视频ID")
		return
	}

	var req CreateTranslationJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.error(c, http.StatusBadRequest, 400, "请求参数错误: "+err.Error())
		return
	}

	job, err := h.workflow.CreateTranslationJob(uint(videoID), req.SourceLanguage, req.TargetLanguage)
	if err != nil {
		statusCode, errorCode := statusForWorkflowError(err)
		h.error(c, statusCode, errorCode, err.Error())
		return
	}

	h.success(c, job, "创建翻译任务成功")
}

// ListTranslationJobs 获取视频的翻译任务列表
func (h *TranslationJobHandler) ListTranslationJobs(c *gin.Context) {
	videoID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.error(c, http.StatusBadRequest, 400, "无效的视频ID")
		return
	}

	var jobs []model.TranslationJob
	query := database.DB.Where("video_id = ?", videoID)

	// 分页参数
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	offset := (page - 1) * pageSize

	// 状态过滤
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Model(&model.TranslationJob{}).Count(&total)

	if err := query.Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&jobs).Error; err != nil {
		h.error(c, http.StatusInternalServerError, 500, "获取翻译任务列表失败")
		return
	}

	h.success(c, gin.H{
		"list":     jobs,
		"total":    total,
		"current":  page,
		"pageSize": pageSize,
	}, "获取翻译任务列表成功")
}

// GetTranslationJob 获取单个翻译任务
func (h *TranslationJobHandler) GetTranslationJob(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.error(c, http.StatusBadRequest, 400, "无效的ID")
		return
	}

	var job model.TranslationJob
	if err := database.DB.First(&job, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			h.error(c, http.StatusNotFound, 404, "翻译任务不存在")
			return
		}
		h.error(c, http.StatusInternalServerError, 500, "获取翻译任务失败")
		return
	}

	h.success(c, job, "获取翻译任务成功")
}

// UpdateTranslationJobRequest 更新翻译任务请求结构
type UpdateTranslationJobRequest struct {
	Status            *model.TranslationStatus `json:"status"`
	OriginalAudioPath *string                  `json:"original_audio_path"`
	TranslatedText    *string                  `json:"translated_text"`
	ErrorMessage      *string                  `json:"error_message"`
}

// UpdateTranslationJob 更新翻译任务（翻译协作方上报进度）
func (h *TranslationJobHandler) UpdateTranslationJob(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.error(c, http.StatusBadRequest, 400, "无效的ID")
		return
	}

	var req UpdateTranslationJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.error(c, http.StatusBadRequest, 400, "请求参数错误: "+err.Error())
		return
	}

	job, err := h.workflow.UpdateTranslationJob(uint(id), service.TranslationJobPatch{
		Status:            req.Status,
		OriginalAudioPath: req.OriginalAudioPath,
		TranslatedText:    req.TranslatedText,
		ErrorMessage:      req.ErrorMessage,
	})
	if err != nil {
		statusCode, errorCode := statusForWorkflowError(err)
		h.error(c, statusCode, errorCode, err.Error())
		return
	}

	h.success(c, job, "更新翻译任务成功")
}
