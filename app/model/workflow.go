package model

// OverallStatus 工作流整体状态
type OverallStatus string

const (
	OverallStatusNotStarted      OverallStatus = "not_started"      // 未开始
	OverallStatusUploading       OverallStatus = "uploading"        // 上传中
	OverallStatusTranslating     OverallStatus = "translating"      // 翻译中
	OverallStatusGeneratingAudio OverallStatus = "generating_audio" // 生成音频中
	OverallStatusCompleted       OverallStatus = "completed"        // 已完成
	OverallStatusFailed          OverallStatus = "failed"           // 失败
)

// WorkflowStatus 工作流状态汇总，对外的单一查询视图。
// 四个实体字段取各自最新的一条记录，可能为 nil
type WorkflowStatus struct {
	Video              *Video              `json:"video"`
	TranslationJob     *TranslationJob     `json:"translation_job"`
	AudioGenerationJob *AudioGenerationJob `json:"audio_generation_job"`
	FinalOutput        *FinalOutput        `json:"final_output"`
	OverallStatus      OverallStatus       `json:"overall_status"`
	Progress           int                 `json:"progress"` // 0-100 的整数百分比
}
