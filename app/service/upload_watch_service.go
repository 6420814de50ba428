package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"dubflow/app/config"
	"dubflow/app/logger"
	"dubflow/app/model"

	"github.com/fsnotify/fsnotify"
)

// videoExtensions 允许进入流水线的视频文件扩展名
var videoExtensions = []string{".mp4", ".mov", ".mkv", ".webm", ".avi"}

// UploadWatchService 上传目录监控服务。
// 上传协作方把视频文件写入收件目录，文件落盘并写入完成后，
// 按文件名匹配上传会话，把对应视频标记为上传完成
type UploadWatchService struct {
	cfg      *config.StorageConfig
	log      *logger.Logger
	workflow *WorkflowService
	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	wg       sync.WaitGroup
	watching bool
	mu       sync.Mutex
}

// NewUploadWatchService 创建上传目录监控服务，未启用时返回 nil
func NewUploadWatchService(cfg *config.Config, log *logger.Logger, workflow *WorkflowService) (*UploadWatchService, error) {
	if !cfg.Storage.WatchUpload {
		return nil, nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("创建文件监控器失败: %w", err)
	}

	return &UploadWatchService{
		cfg:      &cfg.Storage,
		log:      log,
		workflow: workflow,
		watcher:  watcher,
		stopCh:   make(chan struct{}),
	}, nil
}

// Start 启动上传目录监控
func (s *UploadWatchService) Start() error {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watching {
		return fmt.Errorf("上传目录监控已经在运行")
	}

	// 确保收件目录存在
	if err := os.MkdirAll(s.cfg.UploadDir, 0755); err != nil {
		return fmt.Errorf("创建上传目录失败: %w", err)
	}

	if err := s.watcher.Add(s.cfg.UploadDir); err != nil {
		return fmt.Errorf("添加监控目录失败: %w", err)
	}

	s.watching = true
	s.wg.Add(1)
	go s.watchLoop()

	s.log.Infof("上传目录监控已启动: %s", s.cfg.UploadDir)
	return nil
}

// Stop 停止上传目录监控
func (s *UploadWatchService) Stop() error {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.watching {
		return nil
	}

	close(s.stopCh)
	s.watcher.Close()
	s.wg.Wait()
	s.watching = false

	s.log.Info("上传目录监控已停止")
	return nil
}

// watchLoop 监控事件循环
func (s *UploadWatchService) watchLoop() {
	defer s.wg.Done()

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			s.handleEvent(event)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.Errorf("上传目录监控错误: %v", err)

		case <-s.stopCh:
			return
		}
	}
}

// handleEvent 处理文件系统事件
func (s *UploadWatchService) handleEvent(event fsnotify.Event) {
	// 只处理创建事件
	if event.Op&fsnotify.Create == 0 {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		s.log.Warnf("获取文件信息失败: %s, 错误: %v", event.Name, err)
		return
	}
	if info.IsDir() {
		return
	}

	if !isVideoFile(event.Name) {
		s.log.Debugf("跳过非视频文件: %s", event.Name)
		return
	}

	filename := filepath.Base(event.Name)
	videoID, found := s.workflow.Tracker().Lookup(filename)
	if !found {
		s.log.Warnf("收件目录出现未登记的视频文件，已忽略: %s", filename)
		return
	}

	// 标记为上传处理中，等待文件写入完成
	if _, err := s.workflow.UpdateVideoStatus(videoID, model.UploadStatusProcessing); err != nil {
		s.log.Warnf("标记视频处理中失败: VideoID=%d, 错误: %v", videoID, err)
	}

	if err := s.waitForFileReady(event.Name); err != nil {
		s.log.Warnf("等待文件就绪失败: %s, 错误: %v", event.Name, err)
		if _, err := s.workflow.UpdateVideoStatus(videoID, model.UploadStatusFailed); err != nil {
			s.log.Warnf("标记视频上传失败失败: VideoID=%d, 错误: %v", videoID, err)
		}
		return
	}

	if err := s.workflow.MarkVideoUploaded(videoID, event.Name); err != nil {
		s.log.Errorf("标记视频上传完成失败: VideoID=%d, 错误: %v", videoID, err)
		return
	}

	s.workflow.Tracker().Remove(filename)
}

// isVideoFile 检查文件扩展名是否为视频
func isVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range videoExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// waitForFileReady 等待文件写入完成（文件大小稳定后视为写入完成）
func (s *UploadWatchService) waitForFileReady(path string) error {
	maxWait := 30 * time.Second
	checkInterval := 500 * time.Millisecond
	timeout := time.After(maxWait)

	var lastSize int64 = -1

	for {
		select {
		case <-timeout:
			return fmt.Errorf("等待文件就绪超时: %s", path)
		case <-time.After(checkInterval):
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("获取文件信息失败: %w", err)
			}

			currentSize := info.Size()
			if currentSize == lastSize && currentSize > 0 {
				return nil
			}
			lastSize = currentSize
		}
	}
}
