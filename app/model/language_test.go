package model

import "testing"

func TestSupportedLanguages(t *testing.T) {
	langs := SupportedLanguages()
	if len(langs) != 12 {
		t.Fatalf("支持的语言数量应为 12，得到 %d", len(langs))
	}

	seen := make(map[string]bool)
	for _, l := range langs {
		if l.Code == "" || l.Name == "" || l.NativeName == "" {
			t.Errorf("语言字段不完整: %+v", l)
		}
		if seen[l.Code] {
			t.Errorf("语言代码重复: %s", l.Code)
		}
		seen[l.Code] = true
	}
	if !seen["en"] || !seen["zh"] {
		t.Error("列表应包含 en 和 zh")
	}
}

func TestNormalizeLanguageCode(t *testing.T) {
	tests := []struct {
		code   string
		want   string
		wantOK bool
	}{
		{"en", "en", true},
		{"zh", "zh", true},
		{"ja", "ja", true},
		{"en-US", "en", true},   // 地区变体归一化为主语言
		{"zh-Hans", "zh", true}, // 文字变体同样归一化
		{"  fr  ", "fr", true},  // 容忍首尾空白
		{"xx", "", false},
		{"", "", false},
		{"not a code", "", false},
		{"sw", "", false}, // 合法语言但不在闭集内
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, ok := NormalizeLanguageCode(tt.code)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("NormalizeLanguageCode(%q) = (%q, %v), want (%q, %v)",
					tt.code, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestIsValidUploadStatus(t *testing.T) {
	valid := []UploadStatus{UploadStatusPending, UploadStatusUploaded, UploadStatusProcessing, UploadStatusFailed}
	for _, s := range valid {
		if !IsValidUploadStatus(s) {
			t.Errorf("%s 应为合法状态", s)
		}
	}
	if IsValidUploadStatus("bogus") {
		t.Error("未知状态不应合法")
	}
}

func TestTranslationStatusTerminal(t *testing.T) {
	job := TranslationJob{Status: TranslationStatusCompleted}
	if !job.IsTerminal() {
		t.Error("completed 应为终态")
	}
	job.Status = TranslationStatusFailed
	if !job.IsTerminal() {
		t.Error("failed 应为终态")
	}
	job.Status = TranslationStatusTranslating
	if job.IsTerminal() {
		t.Error("translating 不应为终态")
	}
}
