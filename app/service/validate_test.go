package service

import (
	"testing"

	"dubflow/app/model"
)

func TestValidateTranslationJobCreation(t *testing.T) {
	tests := []struct {
		name     string
		video    *model.Video
		wantKind ErrorKind
	}{
		{"视频不存在", nil, ErrKindNotFound},
		{"视频待上传", video(model.UploadStatusPending), ErrKindInvalidState},
		{"视频上传处理中", video(model.UploadStatusProcessing), ErrKindInvalidState},
		{"视频上传失败", video(model.UploadStatusFailed), ErrKindInvalidState},
		{"视频已上传", video(model.UploadStatusUploaded), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTranslationJobCreation(1, tt.video)
			if got := KindOf(err); got != tt.wantKind {
				t.Errorf("KindOf() = %q, want %q (err=%v)", got, tt.wantKind, err)
			}
		})
	}
}

func TestValidateAudioJobCreation(t *testing.T) {
	tests := []struct {
		name     string
		job      *model.TranslationJob
		wantKind ErrorKind
	}{
		{"任务不存在", nil, ErrKindNotFound},
		{"翻译待处理", translationJob(model.TranslationStatusPending), ErrKindInvalidState},
		{"翻译进行中", translationJob(model.TranslationStatusTranslating), ErrKindInvalidState},
		{"翻译失败", translationJob(model.TranslationStatusFailed), ErrKindInvalidState},
		{"翻译已完成", translationJob(model.TranslationStatusCompleted), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAudioJobCreation(10, tt.job)
			if got := KindOf(err); got != tt.wantKind {
				t.Errorf("KindOf() = %q, want %q (err=%v)", got, tt.wantKind, err)
			}
		})
	}
}

// 归属不符与记录不存在必须返回同一种错误，外部不可区分
func TestValidateOwnedTranslationJobCompleted(t *testing.T) {
	if err := ValidateOwnedTranslationJobCompleted(10, 1, nil); !IsNotFound(err) {
		t.Errorf("任务缺失应返回 not_found，得到 %v", err)
	}

	job := translationJob(model.TranslationStatusTranslating)
	if err := ValidateOwnedTranslationJobCompleted(10, 1, job); !IsInvalidState(err) {
		t.Errorf("未完成的任务应返回 invalid_state，得到 %v", err)
	}

	job = translationJob(model.TranslationStatusCompleted)
	if err := ValidateOwnedTranslationJobCompleted(10, 1, job); err != nil {
		t.Errorf("已完成的任务不应报错，得到 %v", err)
	}
}

func TestValidateOwnedAudioJobCompleted(t *testing.T) {
	if err := ValidateOwnedAudioJobCompleted(100, 10, nil); !IsNotFound(err) {
		t.Errorf("任务缺失应返回 not_found，得到 %v", err)
	}

	job := audioJob(model.AudioStatusGenerating)
	if err := ValidateOwnedAudioJobCompleted(100, 10, job); !IsInvalidState(err) {
		t.Errorf("未完成的任务应返回 invalid_state，得到 %v", err)
	}

	job = audioJob(model.AudioStatusCompleted)
	if err := ValidateOwnedAudioJobCompleted(100, 10, job); err != nil {
		t.Errorf("已完成的任务不应报错，得到 %v", err)
	}
}

func TestValidateFinalOutputUnique(t *testing.T) {
	if err := ValidateFinalOutputUnique(1, 10, 100, nil); err != nil {
		t.Errorf("三元组未使用时不应报错，得到 %v", err)
	}
	if err := ValidateFinalOutputUnique(1, 10, 100, finalOutput()); !IsConflict(err) {
		t.Errorf("三元组已存在应返回 conflict，得到 %v", err)
	}
}

func TestWorkflowErrorKinds(t *testing.T) {
	if kind := KindOf(nil); kind != "" {
		t.Errorf("nil 错误应返回空类别，得到 %q", kind)
	}

	err := notFoundf("视频 %d 不存在", 42)
	if !IsNotFound(err) || IsInvalidState(err) || IsConflict(err) {
		t.Errorf("not_found 错误类别判断错误: %v", err)
	}
	if err.Error() != "视频 42 不存在" {
		t.Errorf("错误信息不符: %s", err.Error())
	}
}
