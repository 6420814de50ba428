package service

import (
	"dubflow/app/model"
)

// WorkflowStore 工作流存储接口。查询未命中时返回 (nil, nil)，
// "最新" 指按 (created_at, id) 降序排列的第一条记录
type WorkflowStore interface {
	FindVideoByID(id uint) (*model.Video, error)
	FindTranslationJobByID(id uint) (*model.TranslationJob, error)
	FindAudioJobByID(id uint) (*model.AudioGenerationJob, error)
	FindLatestTranslationJobByVideoID(videoID uint) (*model.TranslationJob, error)
	FindLatestAudioJobByTranslationJobID(jobID uint) (*model.AudioGenerationJob, error)
	FindLatestFinalOutputByVideoID(videoID uint) (*model.FinalOutput, error)
	FindTranslationJobByIDAndVideoID(id, videoID uint) (*model.TranslationJob, error)
	FindAudioJobByIDAndTranslationJobID(id, jobID uint) (*model.AudioGenerationJob, error)
	FindFinalOutputByTriple(videoID, jobID, audioJobID uint) (*model.FinalOutput, error)

	InsertVideo(v *model.Video) error
	InsertTranslationJob(j *model.TranslationJob) error
	InsertAudioGenerationJob(j *model.AudioGenerationJob) error
	InsertFinalOutput(o *model.FinalOutput) error

	UpdateVideo(id uint, patch map[string]interface{}) error
	UpdateTranslationJob(id uint, patch map[string]interface{}) error
	UpdateAudioGenerationJob(id uint, patch map[string]interface{}) error
}
