package service

import (
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	// UploadSessionTTL 上传会话有效期
	UploadSessionTTL = 24 * time.Hour
	// uploadSessionSweep 过期会话清理间隔
	uploadSessionSweep = 1 * time.Hour
)

// UploadTracker 上传会话跟踪器。
// 登记视频时以收件文件名为键记录视频ID，上传目录监控按落盘文件名回查。
// 会话超过有效期自动失效，之后落盘的同名文件会被忽略
type UploadTracker struct {
	sessions *cache.Cache
}

// NewUploadTracker 创建上传会话跟踪器
func NewUploadTracker() *UploadTracker {
	return &UploadTracker{
		sessions: cache.New(UploadSessionTTL, uploadSessionSweep),
	}
}

// Register 登记上传会话
func (t *UploadTracker) Register(filename string, videoID uint) {
	t.sessions.Set(filename, videoID, cache.DefaultExpiration)
}

// Lookup 按文件名查找对应的视频ID
func (t *UploadTracker) Lookup(filename string) (uint, bool) {
	v, found := t.sessions.Get(filename)
	if !found {
		return 0, false
	}
	return v.(uint), true
}

// Remove 移除已消费的上传会话
func (t *UploadTracker) Remove(filename string) {
	t.sessions.Delete(filename)
}

// Count 当前活跃会话数
func (t *UploadTracker) Count() int {
	return t.sessions.ItemCount()
}
