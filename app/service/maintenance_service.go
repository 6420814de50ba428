package service

import (
	"fmt"
	"time"

	"dubflow/app/config"
	"dubflow/app/logger"
	"dubflow/app/model"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// MaintenanceService 定时维护服务：清理过期的失败记录，
// 把长时间无进展的任务标记为失败
type MaintenanceService struct {
	db   *gorm.DB
	cfg  *config.MaintenanceConfig
	log  *logger.Logger
	cron *cron.Cron
}

// NewMaintenanceService 创建定时维护服务，未启用时返回 nil
func NewMaintenanceService(db *gorm.DB, cfg *config.Config, log *logger.Logger) *MaintenanceService {
	if !cfg.Maintenance.Enabled {
		return nil
	}

	return &MaintenanceService{
		db:   db,
		cfg:  &cfg.Maintenance,
		log:  log,
		cron: cron.New(),
	}
}

// Start 启动定时维护
func (s *MaintenanceService) Start() error {
	if s == nil {
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.CronSpec, s.runOnce); err != nil {
		return fmt.Errorf("注册定时任务失败: %w", err)
	}

	s.cron.Start()
	s.log.Infof("定时维护服务已启动: %s", s.cfg.CronSpec)
	return nil
}

// Stop 停止定时维护
func (s *MaintenanceService) Stop() {
	if s == nil {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("定时维护服务已停止")
}

// RunOnce 手动触发一次维护（供管理接口使用）
func (s *MaintenanceService) RunOnce() {
	if s == nil {
		return
	}
	s.runOnce()
}

// runOnce 执行一轮维护
func (s *MaintenanceService) runOnce() {
	s.markStaleJobsFailed()
	s.cleanupOldFailedJobs()
}

// markStaleJobsFailed 把超过判定时长仍未进入终态的任务标记为失败
func (s *MaintenanceService) markStaleJobsFailed() {
	cutoff := time.Now().Add(-time.Duration(s.cfg.StaleJobHours) * time.Hour)
	staleMsg := fmt.Sprintf("任务超过 %d 小时无进展，已自动标记为失败", s.cfg.StaleJobHours)

	result := s.db.Model(&model.TranslationJob{}).
		Where("status IN (?) AND updated_at < ?",
			[]model.TranslationStatus{
				model.TranslationStatusPending,
				model.TranslationStatusExtractingAudio,
				model.TranslationStatusTranslating,
			}, cutoff).
		Updates(map[string]interface{}{
			"status":        model.TranslationStatusFailed,
			"error_message": staleMsg,
		})
	if result.Error != nil {
		s.log.Errorf("标记卡死翻译任务失败: %v", result.Error)
	} else if result.RowsAffected > 0 {
		s.log.Infof("已把 %d 个卡死的翻译任务标记为失败", result.RowsAffected)
	}

	result = s.db.Model(&model.AudioGenerationJob{}).
		Where("status IN (?) AND updated_at < ?",
			[]model.AudioStatus{model.AudioStatusPending, model.AudioStatusGenerating}, cutoff).
		Updates(map[string]interface{}{
			"status":        model.AudioStatusFailed,
			"error_message": staleMsg,
		})
	if result.Error != nil {
		s.log.Errorf("标记卡死音频任务失败: %v", result.Error)
	} else if result.RowsAffected > 0 {
		s.log.Infof("已把 %d 个卡死的音频任务标记为失败", result.RowsAffected)
	}
}

// cleanupOldFailedJobs 删除超过保留期的失败任务记录。
// 只清理没有成品引用的记录，避免破坏成品的关联
func (s *MaintenanceService) cleanupOldFailedJobs() {
	cutoff := time.Now().AddDate(0, 0, -s.cfg.FailedRetainDays)

	result := s.db.Where("status = ? AND updated_at < ? AND id NOT IN (?)",
		model.AudioStatusFailed, cutoff,
		s.db.Model(&model.FinalOutput{}).Select("audio_generation_job_id")).
		Delete(&model.AudioGenerationJob{})
	if result.Error != nil {
		s.log.Errorf("清理失败音频任务失败: %v", result.Error)
	} else if result.RowsAffected > 0 {
		s.log.Infof("清理了 %d 个过期的失败音频任务", result.RowsAffected)
	}

	result = s.db.Where("status = ? AND updated_at < ? AND id NOT IN (?) AND id NOT IN (?)",
		model.TranslationStatusFailed, cutoff,
		s.db.Model(&model.FinalOutput{}).Select("translation_job_id"),
		s.db.Model(&model.AudioGenerationJob{}).Select("translation_job_id")).
		Delete(&model.TranslationJob{})
	if result.Error != nil {
		s.log.Errorf("清理失败翻译任务失败: %v", result.Error)
	} else if result.RowsAffected > 0 {
		s.log.Infof("清理了 %d 个过期的失败翻译任务", result.RowsAffected)
	}
}
