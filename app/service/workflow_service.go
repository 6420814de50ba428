package service

import (
	"fmt"
	"path/filepath"
	"time"

	"dubflow/app/config"
	"dubflow/app/logger"
	"dubflow/app/model"
	"dubflow/app/utils/cover"

	"github.com/google/uuid"
)

// WorkflowService 工作流服务：状态查询编排与各实体的创建、更新入口。
// 所有读取即时回源存储，不做缓存
type WorkflowService struct {
	store      WorkflowStore
	cfg        *config.Config
	log        *logger.Logger
	dispatcher *DispatchService // 可为 nil
	tracker    *UploadTracker
}

// NewWorkflowService 创建工作流服务
func NewWorkflowService(store WorkflowStore, cfg *config.Config, log *logger.Logger, dispatcher *DispatchService) *WorkflowService {
	return &WorkflowService{
		store:      store,
		cfg:        cfg,
		log:        log,
		dispatcher: dispatcher,
		tracker:    NewUploadTracker(),
	}
}

// Tracker 返回上传会话跟踪器
func (s *WorkflowService) Tracker() *UploadTracker {
	return s.tracker
}

// GetWorkflowStatus 查询视频工作流的整体状态。
// 视频不存在时直接返回全空的 not_started 结果，不进入推导引擎；
// 各关联实体只取最新一条，旧记录（如被重试取代的失败任务）不参与推导
func (s *WorkflowService) GetWorkflowStatus(videoID uint) (*model.WorkflowStatus, error) {
	video, err := s.store.FindVideoByID(videoID)
	if err != nil {
		return nil, fmt.Errorf("查询视频失败: %w", err)
	}
	if video == nil {
		return &model.WorkflowStatus{
			OverallStatus: model.OverallStatusNotStarted,
			Progress:      0,
		}, nil
	}

	translation, err := s.store.FindLatestTranslationJobByVideoID(videoID)
	if err != nil {
		return nil, fmt.Errorf("查询翻译任务失败: %w", err)
	}

	var audio *model.AudioGenerationJob
	if translation != nil {
		audio, err = s.store.FindLatestAudioJobByTranslationJobID(translation.ID)
		if err != nil {
			return nil, fmt.Errorf("查询音频生成任务失败: %w", err)
		}
	}

	// 成品按视频查询，不限定是哪条流水线产出的
	output, err := s.store.FindLatestFinalOutputByVideoID(videoID)
	if err != nil {
		return nil, fmt.Errorf("查询成品失败: %w", err)
	}

	overall, progress := DeriveStatus(video, translation, audio, output)

	return &model.WorkflowStatus{
		Video:              video,
		TranslationJob:     translation,
		AudioGenerationJob: audio,
		FinalOutput:        output,
		OverallStatus:      overall,
		Progress:           progress,
	}, nil
}

// CreateVideo 登记待上传的视频，分配收件目录文件名并注册上传会话。
// 返回视频记录和上传协作方应写入的文件名
func (s *WorkflowService) CreateVideo(title, originalFilename string) (*model.Video, string, error) {
	uploadName := uuid.New().String() + filepath.Ext(originalFilename)

	video := &model.Video{
		Title:            title,
		OriginalFilename: originalFilename,
		StoragePath:      filepath.Join(s.cfg.Storage.UploadDir, uploadName),
		UploadStatus:     model.UploadStatusPending,
	}

	if err := s.store.InsertVideo(video); err != nil {
		return nil, "", fmt.Errorf("创建视频记录失败: %w", err)
	}

	s.tracker.Register(uploadName, video.ID)
	s.log.Infof("视频已登记: ID=%d, 标题=%s, 上传文件名=%s", video.ID, title, uploadName)

	// 异步生成占位封面
	go s.generateCover(video.ID, title)

	return video, uploadName, nil
}

// generateCover 生成占位封面并回写路径
func (s *WorkflowService) generateCover(videoID uint, title string) {
	coverPath := filepath.Join(s.cfg.Storage.CoverDir, fmt.Sprintf("video_%d.jpg", videoID))
	thumbPath := filepath.Join(s.cfg.Storage.CoverDir, fmt.Sprintf("video_%d_thumb.jpg", videoID))

	if err := cover.Generate(title, coverPath, thumbPath); err != nil {
		s.log.Warnf("生成封面失败: VideoID=%d, 错误: %v", videoID, err)
		return
	}

	if err := s.store.UpdateVideo(videoID, map[string]interface{}{"cover_path": coverPath}); err != nil {
		s.log.Warnf("回写封面路径失败: VideoID=%d, 错误: %v", videoID, err)
	}
}

// UpdateVideoStatus 更新视频上传状态（由外部上传协作方调用）。
// failed 为终态，不允许再变更
func (s *WorkflowService) UpdateVideoStatus(id uint, status model.UploadStatus) (*model.Video, error) {
	if !model.IsValidUploadStatus(status) {
		return nil, invalidStatef("无效的上传状态: %s", status)
	}

	video, err := s.store.FindVideoByID(id)
	if err != nil {
		return nil, fmt.Errorf("查询视频失败: %w", err)
	}
	if video == nil {
		return nil, notFoundf("视频 %d 不存在", id)
	}
	if video.UploadStatus == model.UploadStatusFailed {
		return nil, invalidStatef("视频 %d 已处于终态 %s，不允许变更", id, video.UploadStatus)
	}

	if err := s.store.UpdateVideo(id, map[string]interface{}{"upload_status": status}); err != nil {
		return nil, fmt.Errorf("更新视频状态失败: %w", err)
	}

	video.UploadStatus = status
	s.log.Infof("视频状态已更新: ID=%d, 状态=%s", id, status)
	return video, nil
}

// MarkVideoUploaded 标记视频上传完成并记录落盘路径（由上传目录监控调用）
func (s *WorkflowService) MarkVideoUploaded(id uint, storagePath string) error {
	video, err := s.store.FindVideoByID(id)
	if err != nil {
		return fmt.Errorf("查询视频失败: %w", err)
	}
	if video == nil {
		return notFoundf("视频 %d 不存在", id)
	}
	if video.UploadStatus == model.UploadStatusFailed {
		return invalidStatef("视频 %d 已处于终态 %s，不允许标记上传完成", id, video.UploadStatus)
	}

	patch := map[string]interface{}{
		"upload_status": model.UploadStatusUploaded,
		"storage_path":  storagePath,
	}
	if err := s.store.UpdateVideo(id, patch); err != nil {
		return fmt.Errorf("更新视频状态失败: %w", err)
	}

	s.log.Infof("视频上传完成: ID=%d, 路径=%s", id, storagePath)
	return nil
}

// CreateTranslationJob 为视频创建翻译任务。
// 前置条件：视频存在且上传状态为 uploaded；同一视频可多次创建（重试或多语言）
func (s *WorkflowService) CreateTranslationJob(videoID uint, sourceLang, targetLang string) (*model.TranslationJob, error) {
	source, ok := model.NormalizeLanguageCode(sourceLang)
	if !ok {
		return nil, invalidStatef("不支持的源语言代码: %s", sourceLang)
	}
	target, ok := model.NormalizeLanguageCode(targetLang)
	if !ok {
		return nil, invalidStatef("不支持的目标语言代码: %s", targetLang)
	}

	video, err := s.store.FindVideoByID(videoID)
	if err != nil {
		return nil, fmt.Errorf("查询视频失败: %w", err)
	}
	if err := ValidateTranslationJobCreation(videoID, video); err != nil {
		return nil, err
	}

	job := &model.TranslationJob{
		VideoID:        videoID,
		SourceLanguage: source,
		TargetLanguage: target,
		Status:         model.TranslationStatusPending,
	}
	if err := s.store.InsertTranslationJob(job); err != nil {
		return nil, fmt.Errorf("创建翻译任务失败: %w", err)
	}

	s.log.Infof("翻译任务已创建: ID=%d, VideoID=%d, %s -> %s", job.ID, videoID, source, target)

	if s.dispatcher != nil {
		go s.dispatcher.NotifyTranslationJobCreated(job)
	}
	return job, nil
}

// TranslationJobPatch 翻译任务可更新字段，nil 表示不修改
type TranslationJobPatch struct {
	Status            *model.TranslationStatus
	OriginalAudioPath *string
	TranslatedText    *string
	ErrorMessage      *string
}

// UpdateTranslationJob 更新翻译任务（由外部翻译协作方上报进度）
func (s *WorkflowService) UpdateTranslationJob(id uint, patch TranslationJobPatch) (*model.TranslationJob, error) {
	job, err := s.store.FindTranslationJobByID(id)
	if err != nil {
		return nil, fmt.Errorf("查询翻译任务失败: %w", err)
	}
	if job == nil {
		return nil, notFoundf("翻译任务 %d 不存在", id)
	}

	updates := make(map[string]interface{})
	now := time.Now()

	if patch.Status != nil {
		if !model.IsValidTranslationStatus(*patch.Status) {
			return nil, invalidStatef("无效的翻译任务状态: %s", *patch.Status)
		}
		updates["status"] = *patch.Status

		// 首次离开 pending 记录开始时间，进入终态记录完成时间
		if *patch.Status != model.TranslationStatusPending && job.StartedAt == nil {
			updates["started_at"] = &now
		}
		if *patch.Status == model.TranslationStatusCompleted || *patch.Status == model.TranslationStatusFailed {
			updates["completed_at"] = &now
		}
	}
	if patch.OriginalAudioPath != nil {
		updates["original_audio_path"] = patch.OriginalAudioPath
	}
	if patch.TranslatedText != nil {
		updates["translated_text"] = patch.TranslatedText
	}
	if patch.ErrorMessage != nil {
		updates["error_message"] = patch.ErrorMessage
	}

	if len(updates) == 0 {
		return job, nil
	}

	if err := s.store.UpdateTranslationJob(id, updates); err != nil {
		return nil, fmt.Errorf("更新翻译任务失败: %w", err)
	}

	updated, err := s.store.FindTranslationJobByID(id)
	if err != nil {
		return nil, fmt.Errorf("查询翻译任务失败: %w", err)
	}
	s.log.Infof("翻译任务已更新: ID=%d", id)
	return updated, nil
}

// CreateAudioGenerationJob 为翻译任务创建音频生成任务。
// 前置条件：翻译任务存在且状态为 completed
func (s *WorkflowService) CreateAudioGenerationJob(jobID uint, voiceCloned *bool) (*model.AudioGenerationJob, error) {
	job, err := s.store.FindTranslationJobByID(jobID)
	if err != nil {
		return nil, fmt.Errorf("查询翻译任务失败: %w", err)
	}
	if err := ValidateAudioJobCreation(jobID, job); err != nil {
		return nil, err
	}

	audioJob := &model.AudioGenerationJob{
		TranslationJobID: jobID,
		Status:           model.AudioStatusPending,
		VoiceCloned:      true, // 默认克隆原声
	}
	if voiceCloned != nil {
		audioJob.VoiceCloned = *voiceCloned
	}

	if err := s.store.InsertAudioGenerationJob(audioJob); err != nil {
		return nil, fmt.Errorf("创建音频生成任务失败: %w", err)
	}

	s.log.Infof("音频生成任务已创建: ID=%d, TranslationJobID=%d, 克隆原声=%v",
		audioJob.ID, jobID, audioJob.VoiceCloned)

	if s.dispatcher != nil {
		go s.dispatcher.NotifyAudioJobCreated(audioJob)
	}
	return audioJob, nil
}

// AudioJobPatch 音频生成任务可更新字段，nil 表示不修改
type AudioJobPatch struct {
	Status             *model.AudioStatus
	GeneratedAudioPath *string
	ErrorMessage       *string
}

// UpdateAudioGenerationJob 更新音频生成任务（由外部语音克隆协作方上报进度）
func (s *WorkflowService) UpdateAudioGenerationJob(id uint, patch AudioJobPatch) (*model.AudioGenerationJob, error) {
	job, err := s.store.FindAudioJobByID(id)
	if err != nil {
		return nil, fmt.Errorf("查询音频生成任务失败: %w", err)
	}
	if job == nil {
		return nil, notFoundf("音频生成任务 %d 不存在", id)
	}

	updates := make(map[string]interface{})
	now := time.Now()

	if patch.Status != nil {
		if !model.IsValidAudioStatus(*patch.Status) {
			return nil, invalidStatef("无效的音频任务状态: %s", *patch.Status)
		}
		updates["status"] = *patch.Status

		if *patch.Status != model.AudioStatusPending && job.StartedAt == nil {
			updates["started_at"] = &now
		}
		if *patch.Status == model.AudioStatusCompleted || *patch.Status == model.AudioStatusFailed {
			updates["completed_at"] = &now
		}
	}
	if patch.GeneratedAudioPath != nil {
		updates["generated_audio_path"] = patch.GeneratedAudioPath
	}
	if patch.ErrorMessage != nil {
		updates["error_message"] = patch.ErrorMessage
	}

	if len(updates) == 0 {
		return job, nil
	}

	if err := s.store.UpdateAudioGenerationJob(id, updates); err != nil {
		return nil, fmt.Errorf("更新音频生成任务失败: %w", err)
	}

	updated, err := s.store.FindAudioJobByID(id)
	if err != nil {
		return nil, fmt.Errorf("查询音频生成任务失败: %w", err)
	}

	// 音频生成完成后通知视频合成协作方
	if s.dispatcher != nil && patch.Status != nil && *patch.Status == model.AudioStatusCompleted {
		go s.dispatcher.NotifyMuxReady(updated)
	}

	s.log.Infof("音频生成任务已更新: ID=%d", id)
	return updated, nil
}

// CreateFinalOutput 登记成品视频。校验顺序固定：
// 视频 -> 翻译任务（归属+状态）-> 音频任务（归属+状态）-> 三元组唯一性，
// 任一步失败即返回，不再继续后续校验
func (s *WorkflowService) CreateFinalOutput(videoID, jobID, audioJobID uint, finalVideoPath string) (*model.FinalOutput, error) {
	video, err := s.store.FindVideoByID(videoID)
	if err != nil {
		return nil, fmt.Errorf("查询视频失败: %w", err)
	}
	if err := ValidateVideoUploadedForOutput(videoID, video); err != nil {
		return nil, err
	}

	job, err := s.store.FindTranslationJobByIDAndVideoID(jobID, videoID)
	if err != nil {
		return nil, fmt.Errorf("查询翻译任务失败: %w", err)
	}
	if err := ValidateOwnedTranslationJobCompleted(jobID, videoID, job); err != nil {
		return nil, err
	}

	audioJob, err := s.store.FindAudioJobByIDAndTranslationJobID(audioJobID, jobID)
	if err != nil {
		return nil, fmt.Errorf("查询音频生成任务失败: %w", err)
	}
	if err := ValidateOwnedAudioJobCompleted(audioJobID, jobID, audioJob); err != nil {
		return nil, err
	}

	existing, err := s.store.FindFinalOutputByTriple(videoID, jobID, audioJobID)
	if err != nil {
		return nil, fmt.Errorf("查询成品失败: %w", err)
	}
	if err := ValidateFinalOutputUnique(videoID, jobID, audioJobID, existing); err != nil {
		return nil, err
	}

	output := &model.FinalOutput{
		VideoID:              videoID,
		TranslationJobID:     jobID,
		AudioGenerationJobID: audioJobID,
		FinalVideoPath:       finalVideoPath,
	}
	if err := s.store.InsertFinalOutput(output); err != nil {
		// 并发创建可能绕过上面的预检，落库时由三元组唯一索引兜底
		if dup, dupErr := s.store.FindFinalOutputByTriple(videoID, jobID, audioJobID); dupErr == nil && dup != nil {
			return nil, conflictf("视频 %d 的翻译任务 %d 与音频任务 %d 已存在成品记录 %d",
				videoID, jobID, audioJobID, dup.ID)
		}
		return nil, fmt.Errorf("创建成品记录失败: %w", err)
	}

	s.log.Infof("成品已登记: ID=%d, VideoID=%d, TranslationJobID=%d, AudioJobID=%d",
		output.ID, videoID, jobID, audioJobID)
	return output, nil
}
