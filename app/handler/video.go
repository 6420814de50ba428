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

// VideoHandler 视频处理器
type VideoHandler struct {
	workflow *service.WorkflowService
}

// NewVideoHandler 创建视频处理器
func NewVideoHandler(workflow *service.WorkflowService) *VideoHandler {
	return &VideoHandler{workflow: workflow}
}

// 创建成功响应
func (h *VideoHandler) success(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, ApiResponse{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// 创建错误响应
func (h *VideoHandler) error(c *gin.Context, statusCode int, errorCode int, message string) {
	c.JSON(statusCode, ApiResponse{
		Code:    errorCode,
		Message: message,
		Data:    nil,
	})
}

// CreateVideoRequest 登记视频请求结构
type CreateVideoRequest struct {
	Title    string `json:"title" binding:"required,max=255"`
	Filename string `json:"filename" binding:"required,max=255"`
}

// CreateVideo 登记待上传的视频
func (h *VideoHandler) CreateVideo(c *gin.Context) {
	var req CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.error(c, http.StatusBadRequest, 400, "请求参数错误: "+err.Error())
		return
	}

	video, uploadName, err := h.workflow.CreateVideo(req.Title, req.Filename)
	if err != nil {
		h.error(c, http.StatusInternalServerError, 500, "登记视频失败: "+err.Error())
		return
	}

	h.success(c, gin.H{
		"video":           video,
		"upload_filename": uploadName,
	}, "登记视频成功")
}

// GetVideos 获取视频列表
func (h *VideoHandler) GetVideos(c *gin.Context) {
	var videos []model.Video
	query := database.DB

	// 分页参数
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	offset := (page - 1) * pageSize

	// 状态过滤
	if status := c.Query("upload_status"); status != "" {
		query = query.Where("upload_status = ?", status)
	}

	var total int64
	query.Model(&model.Video{}).Count(&total)

	if err := query.Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&videos).Error; err != nil {
		h.error(c, http.StatusInternalServerError, 500, "获取视频列表失败")
		return
	}

	h.success(c, gin.H{
		"list":     videos,
		"total":    total,
		"current":  page,
		"pageSize": pageSize,
	}, "获取视频列表成功")
}

// GetVideo 获取单个视频
func (h *VideoHandler) GetVideo(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.error(c, http.StatusBadRequest, 400, "无效的ID")
		return
	}

	var video model.Video
	if err := database.DB.First(&video, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			h.error(c, http.StatusNotFound, 404, "视频不存在")
			return
		}
		h.error(c, http.StatusInternalServerError, 500, "获取视频失败")
		return
	}

	h.success(c, video, "获取视频成功")
}

// UpdateVideoStatusRequest 更新视频状态请求结构
type UpdateVideoStatusRequest struct {
	UploadStatus model.UploadStatus `json:"upload_status" binding:"required"`
}

// UpdateVideoStatus 更新视频上传状态（上传协作方回调）
func (h *VideoHandler) UpdateVideoStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.error(c, http.StatusBadRequest, 400, "无效的ID")
		return
	}

	var req UpdateVideoStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.error(c, http.StatusBadRequest, 400, "请求参数错误: "+err.Error())
		return
	}

	video, err := h.workflow.UpdateVideoStatus(uint(id), req.UploadStatus)
	if err != nil {
		statusCode, errorCode := statusForWorkflowError(err)
		h.error(c, statusCode, errorCode, err.Error())
		return
	}

	h.success(c, video, "更新视频状态成功")
}
