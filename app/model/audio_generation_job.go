package model

import (
	"time"
)

// AudioStatus 音频生成任务状态
type AudioStatus string

const (
	AudioStatusPending    AudioStatus = "pending"    // 等待处理
	AudioStatusGenerating AudioStatus = "generating" // 生成中
	AudioStatusCompleted  AudioStatus = "completed"  // 已完成
	AudioStatusFailed     AudioStatus = "failed"     // 失败
)

// AudioGenerationJob 音频生成任务模型，同一翻译任务允许多条记录
type AudioGenerationJob struct {
	ID                 uint        `json:"id" gorm:"primarykey"`
	TranslationJobID   uint        `json:"translation_job_id" gorm:"not null;index;comment:所属翻译任务ID"`
	Status             AudioStatus `json:"status" gorm:"size:20;default:'pending';index;comment:任务状态"`
	VoiceCloned        bool        `json:"voice_cloned" gorm:"default:true;comment:是否克隆原声"`
	GeneratedAudioPath *string     `json:"generated_audio_path" gorm:"size:500;comment:生成音频路径"`
	ErrorMessage       *string     `json:"error_message" gorm:"type:text;comment:错误信息"`
	StartedAt          *time.Time  `json:"started_at"`
	CompletedAt        *time.Time  `json:"completed_at"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`

	// 关联关系
	TranslationJob *TranslationJob `json:"translation_job,omitempty" gorm:"foreignKey:TranslationJobID"`
}

// TableName 指定表名
func (AudioGenerationJob) TableName() string {
	return "audio_generation_jobs"
}

// IsValidAudioStatus 检查音频任务状态是否有效
func IsValidAudioStatus(s AudioStatus) bool {
	switch s {
	case AudioStatusPending, AudioStatusGenerating, AudioStatusCompleted, AudioStatusFailed:
		return true
	}
	return false
}
