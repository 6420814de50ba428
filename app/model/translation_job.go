package model

import (
	"time"
)

// TranslationStatus 翻译任务状态
type TranslationStatus string

const (
	TranslationStatusPending         TranslationStatus = "pending"          // 等待处理
	TranslationStatusExtractingAudio TranslationStatus = "extracting_audio" // 提取音频中
	TranslationStatusTranslating     TranslationStatus = "translating"      // 翻译中
	TranslationStatusCompleted       TranslationStatus = "completed"        // 已完成
	TranslationStatusFailed          TranslationStatus = "failed"           // 失败
)

// TranslationJob 翻译任务模型，同一视频允许多条记录（重试或多语言），
// 以创建时间最新的一条作为当前任务
type TranslationJob struct {
	ID                uint              `json:"id" gorm:"primarykey"`
	VideoID           uint              `json:"video_id" gorm:"not null;index;comment:所属视频ID"`
	SourceLanguage    string            `json:"source_language" gorm:"size:10;not null;comment:源语言代码"`
	TargetLanguage    string            `json:"target_language" gorm:"size:10;not null;comment:目标语言代码"`
	Status            TranslationStatus `json:"status" gorm:"size:20;default:'pending';index;comment:任务状态"`
	OriginalAudioPath *string           `json:"original_audio_path" gorm:"size:500;comment:原始音频路径"`
	TranslatedText    *string           `json:"translated_text" gorm:"type:text;comment:翻译文本"`
	ErrorMessage      *string           `json:"error_message" gorm:"type:text;comment:错误信息"`
	StartedAt         *time.Time        `json:"started_at"`
	CompletedAt       *time.Time        `json:"completed_at"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`

	// 关联关系
	Video *Video `json:"video,omitempty" gorm:"foreignKey:VideoID"`
}

// TableName 指定表名
func (TranslationJob) TableName() string {
	return "translation_jobs"
}

// IsValidTranslationStatus 检查翻译任务状态是否有效
func IsValidTranslationStatus(s TranslationStatus) bool {
	switch s {
	case TranslationStatusPending, TranslationStatusExtractingAudio,
		TranslationStatusTranslating, TranslationStatusCompleted, TranslationStatusFailed:
		return true
	}
	return false
}

// IsTerminal 任务是否处于终态
func (j *TranslationJob) IsTerminal() bool {
	return j.Status == TranslationStatusCompleted || j.Status == TranslationStatusFailed
}
