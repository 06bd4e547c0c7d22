package bootstrap

import (
	"context"
	"time"

	"tarott/pkg/catalog"
	"tarott/pkg/config"
	"tarott/pkg/session"
)

// SetupSessions 创建会话管理器并启动过期回收，ctx 取消时回收停止
func SetupSessions(ctx context.Context, cat *catalog.Catalog, reader session.Reader) *session.Manager {
	manager := session.NewManager(cat, reader, session.ManagerConfig{
		TTL:         time.Duration(config.GetInt("session.ttl_minutes", 30)) * time.Minute,
		MaxSessions: config.GetInt("session.max_sessions"),
	})

	if interval := config.GetSeconds("session.sweep_seconds", 60); interval > 0 {
		manager.StartJanitor(ctx, interval)
	}
	return manager
}
