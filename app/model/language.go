package model

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language 支持的翻译语言
type Language struct {
	Code       string `json:"code"`        // 语言代码，如 en、zh
	Name       string `json:"name"`        // 英文名称
	NativeName string `json:"native_name"` // 本地名称
}

// supportedTags 支持的语言闭集
var supportedTags = []language.Tag{
	language.English,
	language.Chinese,
	language.Spanish,
	language.French,
	language.German,
	language.Japanese,
	language.Korean,
	language.Portuguese,
	language.Russian,
	language.Arabic,
	language.Hindi,
	language.Italian,
}

// SupportedLanguages 返回支持的语言列表
func SupportedLanguages() []Language {
	en := display.English.Languages()
	langs := make([]Language, 0, len(supportedTags))
	for _, tag := range supportedTags {
		base, _ := tag.Base()
		langs = append(langs, Language{
			Code:       base.String(),
			Name:       en.Name(tag),
			NativeName: display.Self.Name(tag),
		})
	}
	return langs
}

// NormalizeLanguageCode 规范化语言代码，不在闭集内时返回 false。
// 仅按主语言匹配，en-US 会被归一化为 en
func NormalizeLanguageCode(code string) (string, bool) {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	for _, t := range supportedTags {
		b, _ := t.Base()
		if b == base {
			return base.String(), true
		}
	}
	return "", false
}

// IsValidLanguageCode 检查语言代码是否在支持的闭集内
func IsValidLanguageCode(code string) bool {
	_, ok := NormalizeLanguageCode(code)
	return ok
}
