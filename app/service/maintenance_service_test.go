package service

import (
	"path/filepath"
	"testing"
	"time"

	"dubflow/app/config"
	"dubflow/app/logger"
	"dubflow/app/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMaintenanceTest(t *testing.T) (*MaintenanceService, *gorm.DB) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Video{}, &model.TranslationJob{}, &model.AudioGenerationJob{}, &model.FinalOutput{}); err != nil {
		t.Fatalf("迁移测试数据库失败: %v", err)
	}

	cfg := &config.Config{}
	cfg.Log.Level = "error"
	cfg.Log.Output = "stdout"
	cfg.Maintenance.Enabled = true
	cfg.Maintenance.CronSpec = "0 3 * * *"
	cfg.Maintenance.FailedRetainDays = 7
	cfg.Maintenance.StaleJobHours = 24

	return NewMaintenanceService(db, cfg, logger.New(cfg.Log)), db
}

func TestNewMaintenanceServiceDisabled(t *testing.T) {
	cfg := &config.Config{}
	cfg.Maintenance.Enabled = false

	svc := NewMaintenanceService(nil, cfg, nil)
	if svc != nil {
		t.Fatal("未启用时应返回 nil")
	}
	// nil 实例的各方法应可安全调用
	if err := svc.Start(); err != nil {
		t.Errorf("nil 实例 Start 不应报错: %v", err)
	}
	svc.Stop()
	svc.RunOnce()
}

func TestMarkStaleJobsFailed(t *testing.T) {
	svc, db := newMaintenanceTest(t)

	old := time.Now().Add(-48 * time.Hour)

	stale := &model.TranslationJob{VideoID: 1, Status: model.TranslationStatusTranslating}
	db.Create(stale)
	db.Model(stale).UpdateColumn("updated_at", old)

	fresh := &model.TranslationJob{VideoID: 1, Status: model.TranslationStatusTranslating}
	db.Create(fresh)

	done := &model.TranslationJob{VideoID: 1, Status: model.TranslationStatusCompleted}
	db.Create(done)
	db.Model(done).UpdateColumn("updated_at", old)

	svc.RunOnce()

	var got model.TranslationJob
	db.First(&got, stale.ID)
	if got.Status != model.TranslationStatusFailed {
		t.Errorf("卡死任务应被标记为失败，得到 %s", got.Status)
	}
	if got.ErrorMessage == nil || *got.ErrorMessage == "" {
		t.Error("标记失败时应写入错误信息")
	}

	db.First(&got, fresh.ID)
	if got.Status != model.TranslationStatusTranslating {
		t.Errorf("仍在活跃的任务不应被标记，得到 %s", got.Status)
	}

	db.First(&got, done.ID)
	if got.Status != model.TranslationStatusCompleted {
		t.Errorf("终态任务不应被改动，得到 %s", got.Status)
	}
}

func TestCleanupKeepsReferencedJobs(t *testing.T) {
	svc, db := newMaintenanceTest(t)

	old := time.Now().AddDate(0, 0, -30)

	// 无引用的过期失败任务，应被清理
	orphan := &model.TranslationJob{VideoID: 1, Status: model.TranslationStatusFailed}
	db.Create(orphan)
	db.Model(orphan).UpdateColumn("updated_at", old)

	// 有音频任务挂靠的失败翻译任务，不应被清理
	parent := &model.TranslationJob{VideoID: 1, Status: model.TranslationStatusFailed}
	db.Create(parent)
	db.Model(parent).UpdateColumn("updated_at", old)
	child := &model.AudioGenerationJob{TranslationJobID: parent.ID, Status: model.AudioStatusCompleted}
	db.Create(child)

	svc.RunOnce()

	var count int64
	db.Model(&model.TranslationJob{}).Where("id = ?", orphan.ID).Count(&count)
	if count != 0 {
		t.Error("无引用的过期失败任务应被清理")
	}

	db.Model(&model.TranslationJob{}).Where("id = ?", parent.ID).Count(&count)
	if count != 1 {
		t.Error("被音频任务引用的失败任务不应被清理")
	}
}
