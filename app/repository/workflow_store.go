package repository

import (
	"errors"

	"dubflow/app/model"

	"gorm.io/gorm"
)

// GormWorkflowStore 基于 gorm 的工作流存储实现。
// "最新" 统一按 (created_at, id) 降序取第一条：创建时间在高频写入下
// 可能精度碰撞，用自增ID兜底保证顺序稳定
type GormWorkflowStore struct {
	db *gorm.DB
}

// NewGormWorkflowStore 创建 gorm 工作流存储
func NewGormWorkflowStore(db *gorm.DB) *GormWorkflowStore {
	return &GormWorkflowStore{db: db}
}

// latestOrder 最新记录的排序规则
const latestOrder = "created_at DESC, id DESC"

// FindVideoByID 按ID查询视频，未命中返回 (nil, nil)
func (s *GormWorkflowStore) FindVideoByID(id uint) (*model.Video, error) {
	var video model.Video
	if err := s.db.First(&video, id).Error; err != nil {
		return nil, ignoreNotFound(err)
	}
	return &video, nil
}

// FindTranslationJobByID 按ID查询翻译任务
func (s *GormWorkflowStore) FindTranslationJobByID(id uint) (*model.TranslationJob, error) {
	var job model.TranslationJob
	if err := s.db.First(&job, id).Error; err != nil {
		return nil, ignoreNotFound(err)
	}
	return &job, nil
}

// FindAudioJobByID 按ID查询音频生成任务
func (s *GormWorkflowStore) FindAudioJobByID(id uint) (*model.AudioGenerationJob, error) {
	var job model.AudioGenerationJob
	if err := s.db.First(&job, id).Error; err != nil {
		return nil, ignoreNotFound(err)
	}
	return &job, nil
}

// FindLatestTranslationJobByVideoID 查询视频最新的翻译任务
func (s *GormWorkflowStore) FindLatestTranslationJobByVideoID(videoID uint) (*model.TranslationJob, error) {
	var job model.TranslationJob
	err := s.db.Where("video_id = ?", videoID).Order(latestOrder).First(&job).Error
	if err != nil {
		return nil, ignoreNotFound(err)
	}
	return &job, nil
}

// FindLatestAudioJobByTranslationJobID 查询翻译任务最新的音频生成任务
func (s *GormWorkflowStore) FindLatestAudioJobByTranslationJobID(jobID uint) (*model.AudioGenerationJob, error) {
	var job model.AudioGenerationJob
	err := s.db.Where("translation_job_id = ?", jobID).Order(latestOrder).First(&job).Error
	if err != nil {
		return nil, ignoreNotFound(err)
	}
	return &job, nil
}

// FindLatestFinalOutputByVideoID 查询视频最新的成品
func (s *GormWorkflowStore) FindLatestFinalOutputByVideoID(videoID uint) (*model.FinalOutput, error) {
	var output model.FinalOutput
	err := s.db.Where("video_id = ?", videoID).Order(latestOrder).First(&output).Error
	if err != nil {
		return nil, ignoreNotFound(err)
	}
	return &output, nil
}

// FindTranslationJobByIDAndVideoID 按ID和所属视频查询翻译任务，
// 归属不符同样返回未命中
func (s *GormWorkflowStore) FindTranslationJobByIDAndVideoID(id, videoID uint) (*model.TranslationJob, error) {
	var job model.TranslationJob
	err := s.db.Where("id = ? AND video_id = ?", id, videoID).First(&job).Error
	if err != nil {
		return nil, ignoreNotFound(err)
	}
	return &job, nil
}

// FindAudioJobByIDAndTranslationJobID 按ID和所属翻译任务查询音频生成任务
func (s *GormWorkflowStore) FindAudioJobByIDAndTranslationJobID(id, jobID uint) (*model.AudioGenerationJob, error) {
	var job model.AudioGenerationJob
	err := s.db.Where("id = ? AND translation_job_id = ?", id, jobID).First(&job).Error
	if err != nil {
		return nil, ignoreNotFound(err)
	}
	return &job, nil
}

// FindFinalOutputByTriple 按三元组查询成品
func (s *GormWorkflowStore) FindFinalOutputByTriple(videoID, jobID, audioJobID uint) (*model.FinalOutput, error) {
	var output model.FinalOutput
	err := s.db.Where("video_id = ? AND translation_job_id = ? AND audio_generation_job_id = ?",
		videoID, jobID, audioJobID).First(&output).Error
	if err != nil {
		return nil, ignoreNotFound(err)
	}
	return &output, nil
}

// InsertVideo 插入视频记录
func (s *GormWorkflowStore) InsertVideo(v *model.Video) error {
	return s.db.Create(v).Error
}

// InsertTranslationJob 插入翻译任务记录
func (s *GormWorkflowStore) InsertTranslationJob(j *model.TranslationJob) error {
	return s.db.Create(j).Error
}

// InsertAudioGenerationJob 插入音频生成任务记录
func (s *GormWorkflowStore) InsertAudioGenerationJob(j *model.AudioGenerationJob) error {
	return s.db.Create(j).Error
}

// InsertFinalOutput 插入成品记录，三元组唯一索引冲突时返回底层错误
func (s *GormWorkflowStore) InsertFinalOutput(o *model.FinalOutput) error {
	return s.db.Create(o).Error
}

// UpdateVideo 按ID更新视频字段
func (s *GormWorkflowStore) UpdateVideo(id uint, patch map[string]interface{}) error {
	return s.db.Model(&model.Video{}).Where("id = ?", id).Updates(patch).Error
}

// UpdateTranslationJob 按ID更新翻译任务字段
func (s *GormWorkflowStore) UpdateTranslationJob(id uint, patch map[string]interface{}) error {
	return s.db.Model(&model.TranslationJob{}).Where("id = ?", id).Updates(patch).Error
}

// UpdateAudioGenerationJob 按ID更新音频生成任务字段
func (s *GormWorkflowStore) UpdateAudioGenerationJob(id uint, patch map[string]interface{}) error {
	return s.db.Model(&model.AudioGenerationJob{}).Where("id = ?", id).Updates(patch).Error
}

// ignoreNotFound 把 gorm 的未命中错误转换为 nil
func ignoreNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
