package database

import "dubflow/app/model"

func AutoMigrate() error {
	// 自动迁移表结构
	return DB.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.TranslationJob{},
		&model.AudioGenerationJob{},
		&model.FinalOutput{},
	)
}
