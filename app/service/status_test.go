package service

import (
	"testing"

	"dubflow/app/model"
)

func video(status model.UploadStatus) *model.Video {
	return &model.Video{ID: 1, Title: "测试视频", UploadStatus: status}
}

func translationJob(status model.TranslationStatus) *model.TranslationJob {
	return &model.TranslationJob{ID: 10, VideoID: 1, SourceLanguage: "en", TargetLanguage: "zh", Status: status}
}

func audioJob(status model.AudioStatus) *model.AudioGenerationJob {
	return &model.AudioGenerationJob{ID: 100, TranslationJobID: 10, Status: status}
}

func finalOutput() *model.FinalOutput {
	return &model.FinalOutput{ID: 1000, VideoID: 1, TranslationJobID: 10, AudioGenerationJobID: 100, FinalVideoPath: "data/outputs/final.mp4"}
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name         string
		video        *model.Video
		translation  *model.TranslationJob
		audio        *model.AudioGenerationJob
		output       *model.FinalOutput
		wantStatus   model.OverallStatus
		wantProgress int
	}{
		{
			name:         "成品存在即完成",
			video:        video(model.UploadStatusUploaded),
			translation:  translationJob(model.TranslationStatusCompleted),
			audio:        audioJob(model.AudioStatusCompleted),
			output:       finalOutput(),
			wantStatus:   model.OverallStatusCompleted,
			wantProgress: 100,
		},
		{
			name:         "成品存在时压过中间任务失败",
			video:        video(model.UploadStatusUploaded),
			translation:  translationJob(model.TranslationStatusFailed),
			audio:        audioJob(model.AudioStatusFailed),
			output:       finalOutput(),
			wantStatus:   model.OverallStatusCompleted,
			wantProgress: 100,
		},
		{
			name:         "成品存在时压过上传失败",
			video:        video(model.UploadStatusFailed),
			output:       finalOutput(),
			wantStatus:   model.OverallStatusCompleted,
			wantProgress: 100,
		},
		{
			name:         "上传失败",
			video:        video(model.UploadStatusFailed),
			wantStatus:   model.OverallStatusFailed,
			wantProgress: 0,
		},
		{
			name:         "上传失败优先于翻译失败",
			video:        video(model.UploadStatusFailed),
			translation:  translationJob(model.TranslationStatusFailed),
			wantStatus:   model.OverallStatusFailed,
			wantProgress: 0,
		},
		{
			name:         "翻译失败",
			video:        video(model.UploadStatusUploaded),
			translation:  translationJob(model.TranslationStatusFailed),
			wantStatus:   model.OverallStatusFailed,
			wantProgress: 25,
		},
		{
			name:         "翻译失败优先于音频失败",
			video:        video(model.UploadStatusUploaded),
			translation:  translationJob(model.TranslationStatusFailed),
			audio:        audioJob(model.AudioStatusFailed),
			wantStatus:   model.OverallStatusFailed,
			wantProgress: 25,
		},
		{
			name:         "音频生成失败",
			video:        video(model.UploadStatusUploaded),
			translation:  translationJob(model.TranslationStatusCompleted),
			audio:        audioJob(model.AudioStatusFailed),
			wantStatus:   model.OverallStatusFailed,
			wantProgress: 75,
		},
		{
			name:         "视频待上传",
			video:        video(model.UploadStatusPending),
			wantStatus:   model.OverallStatusUploading,
			wantProgress: 10,
		},
		{
			name:         "视频上传处理中",
			video:        video(model.UploadStatusProcessing),
			wantStatus:   model.OverallStatusUploading,
			wantProgress: 10,
		},
		{
			name:         "已上传但未创建翻译任务",
			video:        video(model.UploadStatusUploaded),
			wantStatus:   model.OverallStatusNotStarted,
			wantProgress: 25,
		},
		{
			name:         "翻译待处理",
			video:        video(model.UploadStatusUploaded),
			translation:  translationJob(model.TranslationStatusPending),
			wantStatus:   model.OverallStatusTranslating,
			wantProgress: 50,
		},
		{
			name:         "翻译提取音频中",
			video:        video(model.UploadStatusUploaded),
			translation:  translationJob(model.TranslationStatusExtractingAudio),
			wantStatus:   model.OverallStatusTranslating,
			wantProgress: 50,
		},
		{
			name:         "翻译进行中",
			video:        video(model.UploadStatusUploaded),
			translation:  translationJob(model.TranslationStatusTranslating),
			wantStatus:   model.OverallStatusTranslating,
			wantProgress: 50,
		},
		{
			name:         "翻译完成但未创建音频任务",
			video:        video(model.UploadStatusUploaded),
			translation:  translationJob(model.TranslationStatusCompleted),
			wantStatus:   model.OverallStatusTranslating,
			wantProgress: 75,
		},
		{
			name:         "音频待生成",
			video:        video(model.UploadStatusUploaded),
			translation:  translationJob(model.TranslationStatusCompleted),
			audio:        audioJob(model.AudioStatusPending),
			wantStatus:   model.OverallStatusGeneratingAudio,
			wantProgress: 85,
		},
		{
			name:         "音频生成中",
			video:        video(model.UploadStatusUploaded),
			translation:  translationJob(model.TranslationStatusCompleted),
			audio:        audioJob(model.AudioStatusGenerating),
			wantStatus:   model.OverallStatusGeneratingAudio,
			wantProgress: 85,
		},
		{
			name:         "音频完成但成品未登记",
			video:        video(model.UploadStatusUploaded),
			translation:  translationJob(model.TranslationStatusCompleted),
			audio:        audioJob(model.AudioStatusCompleted),
			wantStatus:   model.OverallStatusGeneratingAudio,
			wantProgress: 95,
		},
		{
			name:         "全部为空时兜底",
			wantStatus:   model.OverallStatusNotStarted,
			wantProgress: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, progress := DeriveStatus(tt.video, tt.translation, tt.audio, tt.output)
			if status != tt.wantStatus {
				t.Errorf("DeriveStatus() status = %s, want %s", status, tt.wantStatus)
			}
			if progress != tt.wantProgress {
				t.Errorf("DeriveStatus() progress = %d, want %d", progress, tt.wantProgress)
			}
		})
	}
}

// 推导对任意输入组合都必须有确定结果，状态必须是已定义的枚举值
func TestDeriveStatusTotality(t *testing.T) {
	uploadStatuses := []model.UploadStatus{
		model.UploadStatusPending, model.UploadStatusUploaded,
		model.UploadStatusProcessing, model.UploadStatusFailed,
	}
	translationStatuses := []*model.TranslationJob{nil,
		translationJob(model.TranslationStatusPending),
		translationJob(model.TranslationStatusExtractingAudio),
		translationJob(model.TranslationStatusTranslating),
		translationJob(model.TranslationStatusCompleted),
		translationJob(model.TranslationStatusFailed),
	}
	audioStatuses := []*model.AudioGenerationJob{nil,
		audioJob(model.AudioStatusPending),
		audioJob(model.AudioStatusGenerating),
		audioJob(model.AudioStatusCompleted),
		audioJob(model.AudioStatusFailed),
	}
	outputs := []*model.FinalOutput{nil, finalOutput()}

	valid := map[model.OverallStatus]bool{
		model.OverallStatusNotStarted:      true,
		model.OverallStatusUploading:       true,
		model.OverallStatusTranslating:     true,
		model.OverallStatusGeneratingAudio: true,
		model.OverallStatusCompleted:       true,
		model.OverallStatusFailed:          true,
	}

	for _, us := range uploadStatuses {
		for _, tj := range translationStatuses {
			for _, aj := range audioStatuses {
				for _, out := range outputs {
					status, progress := DeriveStatus(video(us), tj, aj, out)
					if !valid[status] {
						t.Errorf("未定义的整体状态: %s (upload=%s)", status, us)
					}
					if progress < 0 || progress > 100 {
						t.Errorf("进度超出范围: %d (upload=%s)", progress, us)
					}
				}
			}
		}
	}
}
