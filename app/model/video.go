package model

import (
	"time"
)

// UploadStatus 视频上传状态
type UploadStatus string

const (
	UploadStatusPending    UploadStatus = "pending"    // 等待上传
	UploadStatusUploaded   UploadStatus = "uploaded"   // 上传完成
	UploadStatusProcessing UploadStatus = "processing" // 上传处理中
	UploadStatusFailed     UploadStatus = "failed"     // 上传失败
)

// Video 视频模型
type Video struct {
	ID               uint         `json:"id" gorm:"primarykey"`
	Title            string       `json:"title" gorm:"size:255;not null;comment:视频标题"`
	OriginalFilename string       `json:"original_filename" gorm:"size:255;comment:原始文件名"`
	StoragePath      string       `json:"storage_path" gorm:"size:500;comment:存储路径"`
	CoverPath        string       `json:"cover_path" gorm:"size:500;comment:封面图路径"`
	UploadStatus     UploadStatus `json:"upload_status" gorm:"size:20;default:'pending';index;comment:上传状态"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// TableName 指定表名
func (Video) TableName() string {
	return "videos"
}

// IsValidUploadStatus 检查上传状态是否有效
func IsValidUploadStatus(s UploadStatus) bool {
	switch s {
	case UploadStatusPending, UploadStatusUploaded, UploadStatusProcessing, UploadStatusFailed:
		return true
	}
	return false
}
