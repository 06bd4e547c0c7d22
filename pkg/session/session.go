// Package session 实现单次塔罗解读会话的状态机：
// 洗牌、选牌、正逆位、提交解读以及重置。
//
// 一个 Session 对应前端一次页面访问，由展示层创建并持有。
// 所有方法并发安全；远端请求期间不持有锁，
// 请求结果通过代数（generation）校验，过期结果直接丢弃。
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"tarott/pkg/catalog"
	"tarott/pkg/deck"
	"tarott/pkg/logger"
	"tarott/pkg/reading"
)

// Options 创建会话的参数
type Options struct {
	ID              string
	Catalog         *catalog.Catalog
	Mode            Mode
	ReversedEnabled bool
	Source          deck.Source // 为空时使用时间种子
	Reader          Reader
}

// Session 解读会话
type Session struct {
	mu sync.Mutex

	id      string
	catalog *catalog.Catalog
	reader  Reader
	src     deck.Source
	mode    Mode

	name            string
	question        string
	reversedEnabled bool
	deck            *deck.Deck
	selected        []int
	readingText     *string
	status          Status
	advisory        *Advisory

	// generation 每次 Begin 与 Reset 自增，用于识别过期的请求结果
	generation uint64
	lastUsed   time.Time
}

// New 创建会话并完成首次洗牌
func New(opts Options) (*Session, error) {
	if opts.Catalog == nil {
		return nil, errors.New("session: catalog is required")
	}
	if opts.Reader == nil {
		return nil, errors.New("session: reader is required")
	}
	if _, err := ParseMode(string(opts.Mode)); err != nil {
		return nil, err
	}

	src := opts.Source
	if src == nil {
		src = deck.NewRandomSource()
	}

	s := &Session{
		id:              opts.ID,
		catalog:         opts.Catalog,
		reader:          opts.Reader,
		src:             src,
		mode:            opts.Mode,
		reversedEnabled: opts.ReversedEnabled,
		status:          StatusIdle,
		lastUsed:        time.Now(),
	}
	s.deck = deck.New(s.catalog, s.reversedEnabled, s.src)
	return s, nil
}

// ID 会话 ID
func (s *Session) ID() string {
	return s.id
}

// Mode 牌阵模式
func (s *Session) Mode() Mode {
	return s.mode
}

// SetName 设置求问者名字
func (s *Session) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.name = name
}

// SetQuestion 设置问题
func (s *Session) SetQuestion(question string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.question = question
}

// frozen 已有解读结果或正在请求时不允许修改选牌
func (s *Session) frozen() bool {
	return s.readingText != nil || s.status == StatusLoading
}

// SelectCard 选择洗牌后 pos 位置的牌。
// 单张模式直接替换；三张模式下重复选择即取消，已满 3 张时忽略。
func (s *Session) SelectCard(pos int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.frozen() || pos < 0 || pos >= s.deck.Len() {
		return
	}

	if s.mode == ModeSingle {
		s.selected = []int{pos}
		return
	}

	for i, p := range s.selected {
		if p == pos {
			s.selected = append(s.selected[:i:i], s.selected[i+1:]...)
			return
		}
	}
	if len(s.selected) < ModeThree.RequiredCount() {
		s.selected = append(s.selected, pos)
	}
}

// RandomSelect 随机选牌，替换已有选择。
// 三张模式为无放回抽取 3 个不同位置。
func (s *Session) RandomSelect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	n := s.deck.Len()
	if s.frozen() || n == 0 {
		return
	}

	if s.mode == ModeSingle {
		s.selected = []int{s.src.Intn(n)}
		return
	}

	k := min(ModeThree.RequiredCount(), n)
	positions := make([]int, n)
	for i := range positions {
		positions[i] = i
	}
	// 部分 Fisher-Yates，只需前 k 个
	for i := 0; i < k; i++ {
		j := i + s.src.Intn(n-i)
		positions[i], positions[j] = positions[j], positions[i]
	}
	s.selected = positions[:k:k]
}

// SetReversedEnabled 切换逆位模式，只重新分配正逆位，不改变牌序与已选位置。
// 提交中或已有解读时只记录开关，朝向保持与已发送的请求一致，Reset 后生效。
func (s *Session) SetReversedEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.reversedEnabled = enabled
	if s.frozen() {
		return
	}
	s.deck.Reorient(enabled, s.src)
}

// Reset 清空表单、选牌与解读结果，并按当前逆位设置重新洗牌。
// 进行中的请求结果会被丢弃。
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.name = ""
	s.question = ""
	s.selected = nil
	s.readingText = nil
	s.status = StatusIdle
	s.advisory = nil
	s.generation++
	s.deck = deck.New(s.catalog, s.reversedEnabled, s.src)
}

// Submission 一次已通过校验、等待发送的解读请求
type Submission struct {
	session *Session
	token   uint64
	request *reading.Request
}

// Request 请求体
func (sub *Submission) Request() *reading.Request {
	return sub.request
}

// Begin 校验表单与选牌，进入 loading 状态并生成请求。
// 校验失败时返回提示且不改变状态。
func (s *Session) Begin() (*Submission, *Advisory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.question == "" {
		s.advisory = missingQuestion()
		return nil, s.advisory
	}
	if len(s.selected) != s.mode.RequiredCount() {
		s.advisory = incompleteSelection(s.mode)
		return nil, s.advisory
	}

	cards := make([]int, len(s.selected))
	orientations := make([]bool, len(s.selected))
	for i, pos := range s.selected {
		card, _ := s.deck.Card(pos)
		idx := s.catalog.IndexOf(card.Name, card.DisplayName)
		if idx == catalog.Unresolved {
			logger.Error("Session",
				zap.String("id", s.id),
				zap.String("event", "unresolved card mapping"),
				zap.Int("position", pos),
				zap.String("card", card.Name),
			)
			s.generation++
			s.readingText = nil
			s.status = StatusFailed
			s.advisory = serviceFailure()
			return nil, s.advisory
		}
		cards[i] = idx
		orientations[i] = s.deck.IsReversed(pos)
	}

	s.generation++
	s.readingText = nil
	s.status = StatusLoading
	s.advisory = nil

	return &Submission{
		session: s,
		token:   s.generation,
		request: &reading.Request{
			Name:             strings.TrimSpace(s.name),
			Question:         s.question,
			SelectedCards:    cards,
			CardOrientations: orientations,
			Type:             reading.Type(s.mode),
		},
	}, nil
}

// Run 发送请求并写回结果。
// 若期间会话被重置或有新的提交，结果被丢弃，返回 nil。
func (sub *Submission) Run(ctx context.Context) *Advisory {
	s := sub.session
	text, err := s.reader.RequestReading(ctx, sub.request)

	s.mu.Lock()
	defer s.mu.Unlock()

	if sub.token != s.generation {
		logger.DebugString("Session", "Submit", fmt.Sprintf("丢弃过期结果 会话:%s 代数:%d 当前:%d", s.id, sub.token, s.generation))
		return nil
	}

	if err != nil {
		logger.Error("Session", zap.String("id", s.id), zap.String("event", "reading failed"), zap.Error(err))
		s.status = StatusFailed
		s.advisory = serviceFailure()
		return s.advisory
	}

	s.readingText = &text
	s.status = StatusSucceeded
	s.advisory = nil
	return nil
}

// Submit 同步提交：Begin 后立即 Run
func (s *Session) Submit(ctx context.Context) *Advisory {
	sub, adv := s.Begin()
	if adv != nil {
		return adv
	}
	return sub.Run(ctx)
}

// touch 记录最近访问时间，调用方需持有锁
func (s *Session) touch() {
	s.lastUsed = time.Now()
}

// LastUsed 最近访问时间
func (s *Session) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}
