package service

import (
	"fmt"
	"time"

	"dubflow/app/config"
	"dubflow/app/logger"
	"dubflow/app/model"

	"resty.dev/v3"
)

// DispatchService 外部处理协作方调度服务。
// 状态迁移使新的处理工作可用时，向配置的协作方地址推送通知；
// 通知只负责告知，协作方处理完成后通过 API 回写状态
type DispatchService struct {
	cfg    *config.DispatchConfig
	log    *logger.Logger
	client *resty.Client
}

// NewDispatchService 创建调度服务，未启用时返回 nil
func NewDispatchService(cfg *config.Config, log *logger.Logger) *DispatchService {
	if !cfg.Dispatch.Enabled {
		return nil
	}

	client := resty.New()
	client.SetTimeout(time.Duration(cfg.Dispatch.TimeoutSeconds) * time.Second)
	client.SetRetryCount(cfg.Dispatch.RetryCount)

	return &DispatchService{
		cfg:    &cfg.Dispatch,
		log:    log,
		client: client,
	}
}

// NotifyTranslationJobCreated 通知翻译协作方有新的翻译任务
func (s *DispatchService) NotifyTranslationJobCreated(job *model.TranslationJob) {
	if s.cfg.TranslatorURL == "" {
		return
	}

	payload := map[string]interface{}{
		"event":              "translation_job.created",
		"translation_job_id": job.ID,
		"video_id":           job.VideoID,
		"source_language":    job.SourceLanguage,
		"target_language":    job.TargetLanguage,
	}
	s.post(s.cfg.TranslatorURL, payload)
}

// NotifyAudioJobCreated 通知语音克隆协作方有新的音频生成任务
func (s *DispatchService) NotifyAudioJobCreated(job *model.AudioGenerationJob) {
	if s.cfg.VoiceCloneURL == "" {
		return
	}

	payload := map[string]interface{}{
		"event":              "audio_job.created",
		"audio_job_id":       job.ID,
		"translation_job_id": job.TranslationJobID,
		"voice_cloned":       job.VoiceCloned,
	}
	s.post(s.cfg.VoiceCloneURL, payload)
}

// NotifyMuxReady 音频生成完成后通知视频合成协作方
func (s *DispatchService) NotifyMuxReady(job *model.AudioGenerationJob) {
	if s.cfg.MuxerURL == "" {
		return
	}

	payload := map[string]interface{}{
		"event":              "audio_job.completed",
		"audio_job_id":       job.ID,
		"translation_job_id": job.TranslationJobID,
	}
	if job.GeneratedAudioPath != nil {
		payload["generated_audio_path"] = *job.GeneratedAudioPath
	}
	s.post(s.cfg.MuxerURL, payload)
}

// post 推送通知，失败只记录日志不影响主流程
func (s *DispatchService) post(url string, payload map[string]interface{}) {
	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(url)

	if err != nil {
		s.log.Warnf("通知协作方失败: URL=%s, 事件=%v, 错误: %v", url, payload["event"], err)
		return
	}
	if resp.StatusCode() >= 300 {
		s.log.Warnf("协作方返回异常状态码: URL=%s, 状态码=%d, 响应: %s",
			url, resp.StatusCode(), resp.String())
		return
	}

	s.log.Infof("已通知协作方: URL=%s, 事件=%v", url, payload["event"])
}

// healthURL 拼接健康检查地址
func healthURL(base string) string {
	return fmt.Sprintf("%s/health", base)
}

// CheckCollaborators 检查各协作方可达性，返回地址到结果的映射
func (s *DispatchService) CheckCollaborators() map[string]bool {
	result := make(map[string]bool)
	for _, url := range []string{s.cfg.TranslatorURL, s.cfg.VoiceCloneURL, s.cfg.MuxerURL} {
		if url == "" {
			continue
		}
		resp, err := s.client.R().Get(healthURL(url))
		result[url] = err == nil && resp.StatusCode() < 300
	}
	return result
}
