package session

import (
	"context"
	"fmt"

	"tarott/pkg/reading"
)

// Mode 牌阵模式
type Mode string

const (
	ModeSingle Mode = "single"
	ModeThree  Mode = "three"
)

// ParseMode 解析牌阵模式
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSingle, ModeThree:
		return Mode(s), nil
	}
	return "", fmt.Errorf("session: unknown reading mode %q", s)
}

// RequiredCount 提交时需要选中的牌数
func (m Mode) RequiredCount() int {
	if m == ModeThree {
		return 3
	}
	return 1
}

// Status 提交状态
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Reader 远端解读服务，*reading.Client 实现了该接口
type Reader interface {
	RequestReading(ctx context.Context, req *reading.Request) (string, error)
}
