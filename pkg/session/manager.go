package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"tarott/pkg/catalog"
	"tarott/pkg/deck"
	"tarott/pkg/logger"
)

var (
	// ErrNotFound 会话不存在或已过期
	ErrNotFound = errors.New("session not found")
	// ErrTooMany 会话数量达到上限
	ErrTooMany = errors.New("too many active sessions")
)

// ManagerConfig 会话管理器配置
type ManagerConfig struct {
	TTL         time.Duration      // 空闲多久后回收，<=0 表示不回收
	MaxSessions int                // <=0 表示不限制
	NewSource   func() deck.Source // 每个会话的随机源，为空时使用时间种子
}

// Manager 管理进行中的会话。
// 会话只存在于内存中，删除（页面卸载）或空闲过期后即销毁。
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	catalog  *catalog.Catalog
	reader   Reader
	config   ManagerConfig
}

// NewManager 创建会话管理器
func NewManager(cat *catalog.Catalog, reader Reader, cfg ManagerConfig) *Manager {
	if cfg.NewSource == nil {
		cfg.NewSource = deck.NewRandomSource
	}
	return &Manager{
		sessions: make(map[string]*Session),
		catalog:  cat,
		reader:   reader,
		config:   cfg,
	}
}

// Catalog 会话使用的牌库
func (m *Manager) Catalog() *catalog.Catalog {
	return m.catalog
}

// Create 新建会话
func (m *Manager) Create(mode Mode, reversedEnabled bool) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config.MaxSessions > 0 && len(m.sessions) >= m.config.MaxSessions {
		return nil, ErrTooMany
	}

	s, err := New(Options{
		ID:              uuid.New().String(),
		Catalog:         m.catalog,
		Mode:            mode,
		ReversedEnabled: reversedEnabled,
		Source:          m.config.NewSource(),
		Reader:          m.reader,
	})
	if err != nil {
		return nil, err
	}

	m.sessions[s.ID()] = s
	return s, nil
}

// Get 获取会话
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, nil
}

// Delete 销毁会话，返回会话是否存在
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// Len 当前会话数
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep 回收在 now 之前空闲超过 TTL 的会话，返回回收数量
func (m *Manager) Sweep(now time.Time) int {
	if m.config.TTL <= 0 {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if now.Sub(s.LastUsed()) > m.config.TTL {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// StartJanitor 定期回收空闲会话，ctx 取消后退出
func (m *Manager) StartJanitor(ctx context.Context, interval time.Duration) {
	if m.config.TTL <= 0 || interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if n := m.Sweep(now); n > 0 {
					logger.InfoString("Session", "Janitor", fmt.Sprintf("回收空闲会话 %d 个，剩余 %d 个", n, m.Len()))
				}
			}
		}
	}()
}
