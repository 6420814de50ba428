package service

import (
	"dubflow/app/model"
)

// 实体校验器：对已经取出的父实体做纯谓词检查，不做任何 I/O。
// 调用方负责先取记录再校验，未找到时传入 nil

// ValidateTranslationJobCreation 校验能否为视频创建翻译任务：
// 视频必须存在且上传状态为 uploaded
func ValidateTranslationJobCreation(videoID uint, video *model.Video) error {
	if video == nil {
		return notFoundf("视频 %d 不存在", videoID)
	}
	if video.UploadStatus != model.UploadStatusUploaded {
		return invalidStatef("视频 %d 当前上传状态为 %s，需要为 %s 才能创建翻译任务",
			video.ID, video.UploadStatus, model.UploadStatusUploaded)
	}
	return nil
}

// ValidateAudioJobCreation 校验能否为翻译任务创建音频生成任务：
// 翻译任务必须存在且状态为 completed
func ValidateAudioJobCreation(jobID uint, job *model.TranslationJob) error {
	if job == nil {
		return notFoundf("翻译任务 %d 不存在", jobID)
	}
	if job.Status != model.TranslationStatusCompleted {
		return invalidStatef("翻译任务 %d 当前状态为 %s，需要为 %s 才能创建音频生成任务",
			job.ID, job.Status, model.TranslationStatusCompleted)
	}
	return nil
}

// ValidateVideoUploadedForOutput 校验能否为视频生成成品：
// 视频必须存在且上传状态为 uploaded
func ValidateVideoUploadedForOutput(videoID uint, video *model.Video) error {
	if video == nil {
		return notFoundf("视频 %d 不存在", videoID)
	}
	if video.UploadStatus != model.UploadStatusUploaded {
		return invalidStatef("视频 %d 当前上传状态为 %s，需要为 %s 才能生成成品",
			video.ID, video.UploadStatus, model.UploadStatusUploaded)
	}
	return nil
}

// ValidateOwnedTranslationJobCompleted 校验按视频取出的翻译任务。
// 任务不存在与不属于该视频返回同一种错误，外部无法区分两种情况
func ValidateOwnedTranslationJobCompleted(jobID, videoID uint, job *model.TranslationJob) error {
	if job == nil {
		return notFoundf("视频 %d 下不存在翻译任务 %d", videoID, jobID)
	}
	if job.Status != model.TranslationStatusCompleted {
		return invalidStatef("翻译任务 %d 当前状态为 %s，需要为 %s 才能生成成品",
			job.ID, job.Status, model.TranslationStatusCompleted)
	}
	return nil
}

// ValidateOwnedAudioJobCompleted 校验按翻译任务取出的音频生成任务，
// 不存在与归属不符同样不可区分
func ValidateOwnedAudioJobCompleted(audioJobID, jobID uint, audioJob *model.AudioGenerationJob) error {
	if audioJob == nil {
		return notFoundf("翻译任务 %d 下不存在音频生成任务 %d", jobID, audioJobID)
	}
	if audioJob.Status != model.AudioStatusCompleted {
		return invalidStatef("音频生成任务 %d 当前状态为 %s，需要为 %s 才能生成成品",
			audioJob.ID, audioJob.Status, model.AudioStatusCompleted)
	}
	return nil
}

// ValidateFinalOutputUnique 校验 (视频, 翻译任务, 音频任务) 三元组尚未生成过成品
func ValidateFinalOutputUnique(videoID, jobID, audioJobID uint, existing *model.FinalOutput) error {
	if existing != nil {
		return conflictf("视频 %d 的翻译任务 %d 与音频任务 %d 已存在成品记录 %d",
			videoID, jobID, audioJobID, existing.ID)
	}
	return nil
}
