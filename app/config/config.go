package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Log         LogConfig         `mapstructure:"log"`
	JWT         JWTConfig         `mapstructure:"jwt"`
	Storage     StorageConfig     `mapstructure:"storage"`
	Dispatch    DispatchConfig    `mapstructure:"dispatch"`
	Maintenance MaintenanceConfig `mapstructure:"maintenance"`
}

type ServerConfig struct {
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`      // json 或 text
	Output     string `mapstructure:"output"`      // stdout 或 file
	MaxSize    int    `mapstructure:"max_size"`    // 兆字节
	MaxBackups int    `mapstructure:"max_backups"` // 备份数量
	MaxAge     int    `mapstructure:"max_age"`     // 天数
	Compress   bool   `mapstructure:"compress"`    // 是否压缩旧文件
}

type JWTConfig struct {
	Secret     string `mapstructure:"secret"`      // JWT 密钥
	ExpireTime int    `mapstructure:"expire_time"` // 过期时间（小时）
	Issuer     string `mapstructure:"issuer"`      // 签发者
}

// StorageConfig 本地文件目录配置
type StorageConfig struct {
	UploadDir   string `mapstructure:"upload_dir"`   // 视频上传收件目录（由上传协作方写入）
	OutputDir   string `mapstructure:"output_dir"`   // 成品视频目录
	CoverDir    string `mapstructure:"cover_dir"`    // 封面图目录
	WatchUpload bool   `mapstructure:"watch_upload"` // 是否监控上传目录
}

// DispatchConfig 外部处理协作方回调地址配置
type DispatchConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	TranslatorURL  string `mapstructure:"translator_url"`   // 翻译处理服务
	VoiceCloneURL  string `mapstructure:"voice_clone_url"`  // 语音克隆服务
	MuxerURL       string `mapstructure:"muxer_url"`        // 视频合成服务
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`  // 请求超时
	RetryCount     int    `mapstructure:"retry_count"`      // 通知重试次数
}

// MaintenanceConfig 定时清理配置
type MaintenanceConfig struct {
	Enabled          bool   `mapstructure:"enabled"`
	CronSpec         string `mapstructure:"cron_spec"`          // cron 表达式
	FailedRetainDays int    `mapstructure:"failed_retain_days"` // 失败记录保留天数
	StaleJobHours    int    `mapstructure:"stale_job_hours"`    // 卡死任务判定小时数
}

func Load() *Config {
	setDefaults()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("无法解码配置: %v", err)
	}

	// 验证配置
	if err := validateConfig(&config); err != nil {
		log.Fatalf("配置验证失败: %v", err)
	}

	return &config
}

// setDefaults 设置默认配置
func setDefaults() {
	viper.SetDefault("server.port", "5000")
	viper.SetDefault("server.username", "admin")
	viper.SetDefault("server.password", "admin123")

	// 日志默认配置
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.max_size", 100)
	viper.SetDefault("log.max_backups", 3)
	viper.SetDefault("log.max_age", 28)
	viper.SetDefault("log.compress", true)

	// JWT默认配置
	viper.SetDefault("jwt.secret", "your-secret-key-change-in-production")
	viper.SetDefault("jwt.expire_time", 24) // 24小时
	viper.SetDefault("jwt.issuer", "dubflow")

	// 存储目录默认配置
	viper.SetDefault("storage.upload_dir", "data/uploads")
	viper.SetDefault("storage.output_dir", "data/outputs")
	viper.SetDefault("storage.cover_dir", "data/covers")
	viper.SetDefault("storage.watch_upload", true)

	// 外部处理协作方默认配置
	viper.SetDefault("dispatch.enabled", false)
	viper.SetDefault("dispatch.timeout_seconds", 10)
	viper.SetDefault("dispatch.retry_count", 2)

	// 定时清理默认配置
	viper.SetDefault("maintenance.enabled", true)
	viper.SetDefault("maintenance.cron_spec", "0 3 * * *") // 每天凌晨3点
	viper.SetDefault("maintenance.failed_retain_days", 30)
	viper.SetDefault("maintenance.stale_job_hours", 24)
}

// validateConfig 验证配置的有效性
func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("服务器端口未设置")
	}
	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT密钥未设置")
	}
	if config.Storage.UploadDir == "" {
		return fmt.Errorf("上传目录未设置")
	}
	if config.Dispatch.Enabled {
		if config.Dispatch.TranslatorURL == "" && config.Dispatch.VoiceCloneURL == "" && config.Dispatch.MuxerURL == "" {
			return fmt.Errorf("已启用外部调度但未配置任何协作方地址")
		}
	}
	return nil
}
