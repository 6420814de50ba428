package server

import (
	"context"
	"dubflow/app/config"
	"dubflow/app/database"
	"dubflow/app/handler"
	"dubflow/app/logger"
	"dubflow/app/middleware"
	"dubflow/app/repository"
	"dubflow/app/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Server 表示 HTTP 服务器
type Server struct {
	Config             *config.Config
	Logger             *logger.Logger
	gin                *gin.Engine
	http               *http.Server
	workflowService    *service.WorkflowService
	uploadWatchService *service.UploadWatchService
	maintenanceService *service.MaintenanceService
}

// New 创建一个新的 Server 实例
func New(cfg *config.Config, log *logger.Logger) (*Server, error) {
	router := gin.Default()

	store := repository.NewGormWorkflowStore(database.GetDB())
	dispatcher := service.NewDispatchService(cfg, log)
	workflow := service.NewWorkflowService(store, cfg, log, dispatcher)

	watcher, err := service.NewUploadWatchService(cfg, log, workflow)
	if err != nil {
		return nil, err
	}

	s := &Server{
		gin: router,
		http: &http.Server{
			Addr:    ":" + cfg.Server.Port,
			Handler: router,
		},
		Config:             cfg,
		Logger:             log,
		workflowService:    workflow,
		uploadWatchService: watcher,
		maintenanceService: service.NewMaintenanceService(database.GetDB(), cfg, log),
	}

	// 设置路由
	s.setupRoutes()

	return s, nil
}

// Start 启动服务器
func (s *Server) Start() error {
	s.Logger.Infof("在端口 %s 启动服务器", s.http.Addr)

	// 启动上传目录监听
	if err := s.uploadWatchService.Start(); err != nil {
		return err
	}

	// 启动定时维护任务
	if err := s.maintenanceService.Start(); err != nil {
		return err
	}

	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	// 停止上传目录监听
	s.uploadWatchService.Stop()

	// 停止定时维护任务
	s.maintenanceService.Stop()

	// 关闭数据库连接
	if err := database.Close(); err != nil {
		s.Logger.Errorf("关闭数据库连接失败: %v", err)
	}
	return s.http.Shutdown(ctx)
}

// setupRoutes 设置API路由
func (s *Server) setupRoutes() {
	// 创建处理器实例
	authHandler := handler.NewAuthHandler(s.Config)
	videoHandler := handler.NewVideoHandler(s.workflowService)
	translationJobHandler := handler.NewTranslationJobHandler(s.workflowService)
	audioJobHandler := handler.NewAudioJobHandler(s.workflowService)
	finalOutputHandler := handler.NewFinalOutputHandler(s.workflowService)
	workflowHandler := handler.NewWorkflowHandler(s.workflowService)
	languageHandler := handler.NewLanguageHandler()

	// API路由组
	api := s.gin.Group("/api")

	// 认证相关路由（不需要JWT验证）
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
		auth.POST("/refresh", authHandler.RefreshToken)
	}

	// 需要JWT验证的路由
	protected := api.Group("/")
	protected.Use(middleware.JWTAuth(s.Config))
	{
		// 用户相关
		protected.GET("/me", authHandler.Me)

		// 支持的翻译语言
		protected.GET("/languages", languageHandler.GetLanguages)

		// 视频相关路由
		videos := protected.Group("/videos")
		{
			videos.POST("/", videoHandler.CreateVideo)
			videos.GET("/", videoHandler.GetVideos)
			videos.GET("/:id", videoHandler.GetVideo)
			videos.PUT("/:id/status", videoHandler.UpdateVideoStatus)

			// 工作流状态查询
			videos.GET("/:id/workflow", workflowHandler.GetWorkflowStatus)

			// 视频下的翻译任务
			videos.POST("/:id/translation-jobs", translationJobHandler.CreateTranslationJob)
			videos.GET("/:id/translation-jobs", translationJobHandler.ListTranslationJobs)

			// 视频下的最终成片
			videos.GET("/:id/final-outputs", finalOutputHandler.ListFinalOutputs)
		}

		// 翻译任务相关路由
		translationJobs := protected.Group("/translation-jobs")
		{
			translationJobs.GET("/:id", translationJobHandler.GetTranslationJob)
			translationJobs.PUT("/:id", translationJobHandler.UpdateTranslationJob)

			// 翻译任务下的音频生成任务
			translationJobs.POST("/:id/audio-jobs", audioJobHandler.CreateAudioJob)
			translationJobs.GET("/:id/audio-jobs", audioJobHandler.ListAudioJobs)
		}

		// 音频生成任务相关路由
		audioJobs := protected.Group("/audio-jobs")
		{
			audioJobs.GET("/:id", audioJobHandler.GetAudioJob)
			audioJobs.PUT("/:id", audioJobHandler.UpdateAudioJob)
		}

		// 最终成片相关路由
		protected.POST("/final-outputs", finalOutputHandler.CreateFinalOutput)
	}
}
