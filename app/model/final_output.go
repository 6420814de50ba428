package model

import (
	"time"
)

// FinalOutput 成品输出模型，关联一条完整的翻译配音流水线。
// (video_id, translation_job_id, audio_generation_job_id) 三元组唯一，
// 同一视频的不同语言流水线可以各自产出成品
type FinalOutput struct {
	ID                   uint      `json:"id" gorm:"primarykey"`
	VideoID              uint      `json:"video_id" gorm:"not null;uniqueIndex:idx_output_triple;comment:所属视频ID"`
	TranslationJobID     uint      `json:"translation_job_id" gorm:"not null;uniqueIndex:idx_output_triple;comment:翻译任务ID"`
	AudioGenerationJobID uint      `json:"audio_generation_job_id" gorm:"not null;uniqueIndex:idx_output_triple;comment:音频任务ID"`
	FinalVideoPath       string    `json:"final_video_path" gorm:"size:500;not null;comment:成品视频路径"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`

	// 关联关系
	Video              *Video              `json:"video,omitempty" gorm:"foreignKey:VideoID"`
	TranslationJob     *TranslationJob     `json:"translation_job,omitempty" gorm:"foreignKey:TranslationJobID"`
	AudioGenerationJob *AudioGenerationJob `json:"audio_generation_job,omitempty" gorm:"foreignKey:AudioGenerationJobID"`
}

// TableName 指定表名
func (FinalOutput) TableName() string {
	return "final_outputs"
}
