package reading

import (
	"sync"
	"sync/atomic"
	"time"
)

// Stats 解读请求统计快照
type Stats struct {
	Total     int64         `json:"total"`
	Succeeded int64         `json:"succeeded"`
	Failed    int64         `json:"failed"`
	AvgMillis int64         `json:"avg_ms"`
	MinMillis int64         `json:"min_ms"`
	MaxMillis int64         `json:"max_ms"`
	LastError string        `json:"last_error,omitempty"`
	LastAt    *time.Time    `json:"last_at,omitempty"`
}

// metrics 客户端请求计数和耗时统计
type metrics struct {
	total     atomic.Int64
	succeeded atomic.Int64
	failed    atomic.Int64

	mu        sync.Mutex
	latency   latencyStats
	lastError string
	lastAt    time.Time
}

type latencyStats struct {
	count int64
	total time.Duration
	min   time.Duration
	max   time.Duration
}

func (s *latencyStats) record(d time.Duration) {
	s.count++
	s.total += d
	if s.min == 0 || d < s.min {
		s.min = d
	}
	if d > s.max {
		s.max = d
	}
}

func (m *metrics) record(d time.Duration, err error) {
	m.total.Add(1)
	if err != nil {
		m.failed.Add(1)
	} else {
		m.succeeded.Add(1)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.latency.record(d)
	m.lastAt = time.Now()
	if err != nil {
		m.lastError = err.Error()
	}
}

func (m *metrics) snapshot() Stats {
	st := Stats{
		Total:     m.total.Load(),
		Succeeded: m.succeeded.Load(),
		Failed:    m.failed.Load(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.latency.count > 0 {
		st.AvgMillis = (m.latency.total / time.Duration(m.latency.count)).Milliseconds()
		st.MinMillis = m.latency.min.Milliseconds()
		st.MaxMillis = m.latency.max.Milliseconds()
	}
	st.LastError = m.lastError
	if !m.lastAt.IsZero() {
		at := m.lastAt
		st.LastAt = &at
	}
	return st
}
