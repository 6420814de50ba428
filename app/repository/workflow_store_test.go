package repository

import (
	"path/filepath"
	"testing"
	"time"

	"dubflow/app/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *GormWorkflowStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}

	err = db.AutoMigrate(
		&model.Video{},
		&model.TranslationJob{},
		&model.AudioGenerationJob{},
		&model.FinalOutput{},
	)
	if err != nil {
		t.Fatalf("迁移测试数据库失败: %v", err)
	}

	return NewGormWorkflowStore(db)
}

func TestFindVideoByIDMiss(t *testing.T) {
	store := newTestStore(t)

	video, err := store.FindVideoByID(999)
	if err != nil {
		t.Fatalf("未命中不应报错: %v", err)
	}
	if video != nil {
		t.Error("未命中应返回 nil")
	}
}

func TestInsertAndFindVideo(t *testing.T) {
	store := newTestStore(t)

	v := &model.Video{Title: "测试视频", OriginalFilename: "demo.mp4", UploadStatus: model.UploadStatusPending}
	if err := store.InsertVideo(v); err != nil {
		t.Fatalf("插入视频失败: %v", err)
	}
	if v.ID == 0 {
		t.Fatal("插入后应分配ID")
	}

	got, err := store.FindVideoByID(v.ID)
	if err != nil {
		t.Fatalf("查询视频失败: %v", err)
	}
	if got == nil || got.Title != "测试视频" || got.UploadStatus != model.UploadStatusPending {
		t.Errorf("查询结果不符: %+v", got)
	}
}

func TestUpdateVideoPatch(t *testing.T) {
	store := newTestStore(t)

	v := &model.Video{Title: "测试视频", UploadStatus: model.UploadStatusPending}
	store.InsertVideo(v)

	patch := map[string]interface{}{
		"upload_status": model.UploadStatusUploaded,
		"storage_path":  "data/uploads/abc.mp4",
	}
	if err := store.UpdateVideo(v.ID, patch); err != nil {
		t.Fatalf("更新视频失败: %v", err)
	}

	got, _ := store.FindVideoByID(v.ID)
	if got.UploadStatus != model.UploadStatusUploaded || got.StoragePath != "data/uploads/abc.mp4" {
		t.Errorf("更新未生效: %+v", got)
	}
	if got.Title != "测试视频" {
		t.Error("未指定的字段不应被修改")
	}
}

// 最新记录按 created_at 降序取，created_at 相同时按 id 降序兜底
func TestFindLatestTranslationJobOrdering(t *testing.T) {
	store := newTestStore(t)

	v := &model.Video{Title: "测试视频", UploadStatus: model.UploadStatusUploaded}
	store.InsertVideo(v)

	earlier := time.Now().Add(-time.Hour)
	old := &model.TranslationJob{VideoID: v.ID, Status: model.TranslationStatusFailed, CreatedAt: earlier}
	if err := store.InsertTranslationJob(old); err != nil {
		t.Fatal(err)
	}
	recent := &model.TranslationJob{VideoID: v.ID, Status: model.TranslationStatusCompleted}
	if err := store.InsertTranslationJob(recent); err != nil {
		t.Fatal(err)
	}

	got, err := store.FindLatestTranslationJobByVideoID(v.ID)
	if err != nil {
		t.Fatalf("查询最新翻译任务失败: %v", err)
	}
	if got == nil || got.ID != recent.ID {
		t.Fatalf("应返回最新任务 %d，得到 %+v", recent.ID, got)
	}

	// created_at 相同，ID 大者为最新
	ts := time.Now().Add(-time.Minute).Truncate(time.Second)
	a := &model.TranslationJob{VideoID: v.ID, Status: model.TranslationStatusPending, CreatedAt: ts}
	b := &model.TranslationJob{VideoID: v.ID, Status: model.TranslationStatusTranslating, CreatedAt: ts}
	store.InsertTranslationJob(a)
	store.InsertTranslationJob(b)

	// 把前两条的时间改到更早，保证本轮两条是候选
	store.UpdateTranslationJob(old.ID, map[string]interface{}{"created_at": earlier.Add(-time.Hour)})
	store.UpdateTranslationJob(recent.ID, map[string]interface{}{"created_at": earlier.Add(-time.Hour)})

	got, err = store.FindLatestTranslationJobByVideoID(v.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != b.ID {
		t.Errorf("created_at 相同时应按 id 降序取，want %d got %d", b.ID, got.ID)
	}
}

func TestFindLatestScopedByParent(t *testing.T) {
	store := newTestStore(t)

	v1 := &model.Video{Title: "视频一", UploadStatus: model.UploadStatusUploaded}
	v2 := &model.Video{Title: "视频二", UploadStatus: model.UploadStatusUploaded}
	store.InsertVideo(v1)
	store.InsertVideo(v2)

	j1 := &model.TranslationJob{VideoID: v1.ID, Status: model.TranslationStatusCompleted}
	j2 := &model.TranslationJob{VideoID: v2.ID, Status: model.TranslationStatusPending}
	store.InsertTranslationJob(j1)
	store.InsertTranslationJob(j2)

	got, err := store.FindLatestTranslationJobByVideoID(v1.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.ID != j1.ID {
		t.Errorf("查询应限定在所属视频内，want %d got %+v", j1.ID, got)
	}
}

// 归属不符与不存在均返回未命中
func TestFindTranslationJobByIDAndVideoID(t *testing.T) {
	store := newTestStore(t)

	v1 := &model.Video{Title: "视频一", UploadStatus: model.UploadStatusUploaded}
	v2 := &model.Video{Title: "视频二", UploadStatus: model.UploadStatusUploaded}
	store.InsertVideo(v1)
	store.InsertVideo(v2)

	job := &model.TranslationJob{VideoID: v1.ID, Status: model.TranslationStatusCompleted}
	store.InsertTranslationJob(job)

	got, err := store.FindTranslationJobByIDAndVideoID(job.ID, v1.ID)
	if err != nil || got == nil {
		t.Fatalf("归属匹配应命中: got=%+v err=%v", got, err)
	}

	got, err = store.FindTranslationJobByIDAndVideoID(job.ID, v2.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Error("归属不符应返回未命中")
	}
}

func TestFinalOutputTripleUniqueIndex(t *testing.T) {
	store := newTestStore(t)

	v := &model.Video{Title: "测试视频", UploadStatus: model.UploadStatusUploaded}
	store.InsertVideo(v)
	job := &model.TranslationJob{VideoID: v.ID, Status: model.TranslationStatusCompleted}
	store.InsertTranslationJob(job)
	audio := &model.AudioGenerationJob{TranslationJobID: job.ID, Status: model.AudioStatusCompleted}
	store.InsertAudioGenerationJob(audio)

	first := &model.FinalOutput{
		VideoID:              v.ID,
		TranslationJobID:     job.ID,
		AudioGenerationJobID: audio.ID,
		FinalVideoPath:       "data/outputs/final.mp4",
	}
	if err := store.InsertFinalOutput(first); err != nil {
		t.Fatalf("首次插入成品失败: %v", err)
	}

	dup := &model.FinalOutput{
		VideoID:              v.ID,
		TranslationJobID:     job.ID,
		AudioGenerationJobID: audio.ID,
		FinalVideoPath:       "data/outputs/dup.mp4",
	}
	if err := store.InsertFinalOutput(dup); err == nil {
		t.Error("重复三元组应触发唯一索引冲突")
	}

	got, err := store.FindFinalOutputByTriple(v.ID, job.ID, audio.ID)
	if err != nil || got == nil {
		t.Fatalf("按三元组查询应命中: got=%+v err=%v", got, err)
	}
	if got.ID != first.ID {
		t.Errorf("命中的应为首条记录 %d，得到 %d", first.ID, got.ID)
	}
}
