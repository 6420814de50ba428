package service

import (
	"dubflow/app/model"
)

// statusRule 状态推导规则，按顺序求值，命中即停
type statusRule struct {
	name     string
	match    func(in statusInput) bool
	status   model.OverallStatus
	progress int
}

// statusInput 状态推导输入，除 Video 外均可能为 nil
type statusInput struct {
	Video       *model.Video
	Translation *model.TranslationJob
	Audio       *model.AudioGenerationJob
	Output      *model.FinalOutput
}

// statusRules 有序决策表。规则两两互斥依赖于求值顺序，调整顺序会改变语义。
// 成品存在时优先级最高：即使中间任务曾失败（之后被重试记录取代），
// 对外仍报告已完成，这是沿用已有行为的既定取舍
var statusRules = []statusRule{
	{
		name: "output_present",
		match: func(in statusInput) bool {
			return in.Output != nil
		},
		status:   model.OverallStatusCompleted,
		progress: 100,
	},
	{
		name: "upload_failed",
		match: func(in statusInput) bool {
			return in.Video != nil && in.Video.UploadStatus == model.UploadStatusFailed
		},
		status:   model.OverallStatusFailed,
		progress: 0,
	},
	{
		name: "translation_failed",
		match: func(in statusInput) bool {
			return in.Translation != nil && in.Translation.Status == model.TranslationStatusFailed
		},
		status:   model.OverallStatusFailed,
		progress: 25,
	},
	{
		name: "audio_failed",
		match: func(in statusInput) bool {
			return in.Audio != nil && in.Audio.Status == model.AudioStatusFailed
		},
		status:   model.OverallStatusFailed,
		progress: 75,
	},
	{
		name: "uploading",
		match: func(in statusInput) bool {
			if in.Video == nil {
				return false
			}
			return in.Video.UploadStatus == model.UploadStatusPending ||
				in.Video.UploadStatus == model.UploadStatusProcessing
		},
		status:   model.OverallStatusUploading,
		progress: 10,
	},
	{
		name: "uploaded_no_translation",
		match: func(in statusInput) bool {
			return in.Video != nil && in.Video.UploadStatus == model.UploadStatusUploaded &&
				in.Translation == nil
		},
		status:   model.OverallStatusNotStarted,
		progress: 25,
	},
	{
		name: "translating",
		match: func(in statusInput) bool {
			if in.Translation == nil {
				return false
			}
			switch in.Translation.Status {
			case model.TranslationStatusPending, model.TranslationStatusExtractingAudio, model.TranslationStatusTranslating:
				return true
			}
			return false
		},
		status:   model.OverallStatusTranslating,
		progress: 50,
	},
	{
		name: "translated_no_audio",
		match: func(in statusInput) bool {
			return in.Translation != nil && in.Translation.Status == model.TranslationStatusCompleted &&
				in.Audio == nil
		},
		status:   model.OverallStatusTranslating,
		progress: 75,
	},
	{
		name: "generating_audio",
		match: func(in statusInput) bool {
			if in.Audio == nil {
				return false
			}
			return in.Audio.Status == model.AudioStatusPending || in.Audio.Status == model.AudioStatusGenerating
		},
		status:   model.OverallStatusGeneratingAudio,
		progress: 85,
	},
	{
		// 成品存在的情况已被第一条规则拦截
		name: "audio_done_no_output",
		match: func(in statusInput) bool {
			return in.Audio != nil && in.Audio.Status == model.AudioStatusCompleted
		},
		status:   model.OverallStatusGeneratingAudio,
		progress: 95,
	},
}

// DeriveStatus 根据四个实体的状态推导整体状态和进度百分比。
// 纯函数，对所有输入组合均有结果，未命中任何规则时兜底返回 (not_started, 0)
func DeriveStatus(video *model.Video, translation *model.TranslationJob, audio *model.AudioGenerationJob, output *model.FinalOutput) (model.OverallStatus, int) {
	in := statusInput{
		Video:       video,
		Translation: translation,
		Audio:       audio,
		Output:      output,
	}

	for _, rule := range statusRules {
		if rule.match(in) {
			return rule.status, rule.progress
		}
	}

	// 兜底
	return model.OverallStatusNotStarted, 0
}
