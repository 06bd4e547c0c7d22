package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tarott/pkg/catalog"
	"tarott/pkg/deck"
	"tarott/pkg/reading"
)

// fakeReader 记录请求；gate 不为空时阻塞直到被关闭
type fakeReader struct {
	mu    sync.Mutex
	calls []*reading.Request
	text  string
	err   error
	gate  chan struct{}
}

func (f *fakeReader) RequestReading(ctx context.Context, req *reading.Request) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return f.text, f.err
}

func (f *fakeReader) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newSession(t *testing.T, mode Mode, reversed bool, r Reader) *Session {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)

	s, err := New(Options{
		ID:              "test",
		Catalog:         cat,
		Mode:            mode,
		ReversedEnabled: reversed,
		Source:          deck.NewSource(99),
		Reader:          r,
	})
	require.NoError(t, err)
	return s
}

func TestNewValidatesOptions(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	_, err = New(Options{Mode: ModeSingle, Reader: &fakeReader{}})
	assert.Error(t, err)
	_, err = New(Options{Catalog: cat, Mode: ModeSingle})
	assert.Error(t, err)
	_, err = New(Options{Catalog: cat, Mode: "five", Reader: &fakeReader{}})
	assert.Error(t, err)

	s, err := New(Options{Catalog: cat, Mode: ModeThree, Reader: &fakeReader{}})
	require.NoError(t, err)
	snap := s.Snapshot()
	assert.Equal(t, StatusIdle, snap.Status)
	assert.Equal(t, 78, snap.DeckSize)
	assert.Nil(t, snap.Reading)
}

func TestSelectCardSingleMode(t *testing.T) {
	s := newSession(t, ModeSingle, false, &fakeReader{})

	for _, pos := range []int{5, 12, 12, 0, 77} {
		s.SelectCard(pos)
		snap := s.Snapshot()
		require.Len(t, snap.Selected, 1)
		assert.Equal(t, pos, snap.Selected[0])
	}

	s.SelectCard(78)
	s.SelectCard(-1)
	assert.Equal(t, []int{77}, s.Snapshot().Selected, "out of range positions are ignored")
}

func TestSelectCardThreeMode(t *testing.T) {
	s := newSession(t, ModeThree, false, &fakeReader{})

	s.SelectCard(10)
	s.SelectCard(20)
	s.SelectCard(30)
	assert.Equal(t, []int{10, 20, 30}, s.Snapshot().Selected)

	s.SelectCard(40)
	assert.Equal(t, []int{10, 20, 30}, s.Snapshot().Selected, "full selection ignores new positions")

	s.SelectCard(20)
	assert.Equal(t, []int{10, 30}, s.Snapshot().Selected, "selecting again toggles off")

	s.SelectCard(40)
	snap := s.Snapshot()
	assert.Equal(t, []int{10, 30, 40}, snap.Selected)

	require.Len(t, snap.SelectedCards, 3)
	assert.Equal(t, "Geçmiş", snap.SelectedCards[0].Slot)
	assert.Equal(t, "Şimdi", snap.SelectedCards[1].Slot)
	assert.Equal(t, "Gelecek", snap.SelectedCards[2].Slot)
	assert.Equal(t, 10, snap.SelectedCards[0].Position)
}

func TestRandomSelect(t *testing.T) {
	t.Run("three", func(t *testing.T) {
		s := newSession(t, ModeThree, false, &fakeReader{})
		s.SelectCard(1)

		for i := 0; i < 50; i++ {
			s.RandomSelect()
			sel := s.Snapshot().Selected
			require.Len(t, sel, 3)
			seen := map[int]bool{}
			for _, p := range sel {
				assert.True(t, p >= 0 && p < 78)
				assert.False(t, seen[p], "positions are distinct")
				seen[p] = true
			}
		}
	})

	t.Run("single", func(t *testing.T) {
		s := newSession(t, ModeSingle, false, &fakeReader{})
		for i := 0; i < 20; i++ {
			s.RandomSelect()
			sel := s.Snapshot().Selected
			require.Len(t, sel, 1)
			assert.True(t, sel[0] >= 0 && sel[0] < 78)
		}
	})
}

func TestSubmitMissingQuestion(t *testing.T) {
	r := &fakeReader{text: "x"}
	s := newSession(t, ModeSingle, false, r)
	s.SelectCard(3)
	s.SetQuestion("")

	adv := s.Submit(context.Background())
	require.NotNil(t, adv)
	assert.Equal(t, MissingQuestion, adv.Kind)
	assert.Equal(t, LevelWarning, adv.Level)
	assert.Equal(t, 0, r.callCount())
	assert.Equal(t, StatusIdle, s.Snapshot().Status)
}

func TestSubmitWhitespaceQuestionIsSentRaw(t *testing.T) {
	r := &fakeReader{text: "x"}
	s := newSession(t, ModeSingle, false, r)
	s.SelectCard(3)
	s.SetQuestion("   ")

	require.Nil(t, s.Submit(context.Background()))
	require.Equal(t, 1, r.callCount())
	assert.Equal(t, "   ", r.calls[0].Question)
	assert.Equal(t, StatusSucceeded, s.Snapshot().Status)
}

func TestSubmitIncompleteSelection(t *testing.T) {
	r := &fakeReader{text: "x"}
	s := newSession(t, ModeThree, false, r)
	s.SetQuestion("Will it rain?")
	s.SelectCard(1)
	s.SelectCard(2)

	adv := s.Submit(context.Background())
	require.NotNil(t, adv)
	assert.Equal(t, IncompleteSelection, adv.Kind)
	assert.Contains(t, adv.Message, "3 kart")
	assert.Equal(t, 0, r.callCount())

	snap := s.Snapshot()
	assert.Equal(t, StatusIdle, snap.Status)
	assert.Equal(t, []int{1, 2}, snap.Selected)
}

func TestSubmitSendsOriginalIndices(t *testing.T) {
	r := &fakeReader{text: "reading"}
	s := newSession(t, ModeThree, true, r)
	s.SetName("  Ayşe  ")
	s.SetQuestion("What awaits me?")
	s.SelectCard(70)
	s.SelectCard(4)
	s.SelectCard(33)

	cat := s.catalog
	want := make([]int, 0, 3)
	wantOrient := make([]bool, 0, 3)
	for _, sc := range s.Snapshot().SelectedCards {
		want = append(want, cat.IndexOf(sc.Name, sc.DisplayName))
		wantOrient = append(wantOrient, sc.Reversed)
	}

	adv := s.Submit(context.Background())
	require.Nil(t, adv)
	require.Equal(t, 1, r.callCount())

	req := r.calls[0]
	assert.Equal(t, "Ayşe", req.Name)
	assert.Equal(t, "What awaits me?", req.Question)
	assert.Equal(t, want, req.SelectedCards)
	assert.Equal(t, wantOrient, req.CardOrientations)
	assert.Equal(t, reading.TypeThree, req.Type)

	for i, idx := range req.SelectedCards {
		orig, ok := cat.At(idx)
		require.True(t, ok)
		assert.Equal(t, s.Snapshot().SelectedCards[i].Name, orig.Name)
	}
}

func TestSubmitEndToEndThreeCards(t *testing.T) {
	r := &fakeReader{text: "The past releases you; the future opens."}
	s := newSession(t, ModeThree, true, r)

	s.RandomSelect()
	sel := s.Snapshot().Selected
	require.Len(t, sel, 3)

	s.SetQuestion("What awaits me?")
	adv := s.Submit(context.Background())
	require.Nil(t, adv)

	require.Equal(t, 1, r.callCount())
	req := r.calls[0]
	assert.Len(t, req.SelectedCards, 3)
	assert.Len(t, req.CardOrientations, 3)
	assert.Equal(t, reading.TypeThree, req.Type)

	snap := s.Snapshot()
	require.NotNil(t, snap.Reading)
	assert.Equal(t, "The past releases you; the future opens.", *snap.Reading)
	assert.Equal(t, StatusSucceeded, snap.Status)
}

func TestSubmitServiceFailure(t *testing.T) {
	r := &fakeReader{err: errors.New("boom")}
	s := newSession(t, ModeSingle, false, r)
	s.SetQuestion("Q")
	s.SelectCard(0)

	adv := s.Submit(context.Background())
	require.NotNil(t, adv)
	assert.Equal(t, ServiceFailure, adv.Kind)
	assert.Equal(t, LevelError, adv.Level)

	snap := s.Snapshot()
	assert.Equal(t, StatusFailed, snap.Status)
	assert.Nil(t, snap.Reading)
	assert.Equal(t, 1, r.callCount(), "no automatic retry")

	// 用户可以重新提交
	r.err = nil
	r.text = "ok"
	require.Nil(t, s.Submit(context.Background()))
	assert.Equal(t, StatusSucceeded, s.Snapshot().Status)
	assert.Equal(t, 2, r.callCount())
}

func TestSelectionFrozenAfterReading(t *testing.T) {
	r := &fakeReader{text: "done"}
	s := newSession(t, ModeThree, false, r)
	s.SetQuestion("Q")
	s.SelectCard(1)
	s.SelectCard(2)
	s.SelectCard(3)
	require.Nil(t, s.Submit(context.Background()))

	s.SelectCard(1)
	s.SelectCard(9)
	s.RandomSelect()
	assert.Equal(t, []int{1, 2, 3}, s.Snapshot().Selected)

	s.Reset()
	s.SelectCard(9)
	assert.Equal(t, []int{9}, s.Snapshot().Selected)
}

func TestSelectionFrozenWhileLoading(t *testing.T) {
	r := &fakeReader{text: "done", gate: make(chan struct{})}
	s := newSession(t, ModeSingle, false, r)
	s.SetQuestion("Q")
	s.SelectCard(1)

	sub, adv := s.Begin()
	require.Nil(t, adv)
	assert.Equal(t, StatusLoading, s.Snapshot().Status)

	s.SelectCard(2)
	s.RandomSelect()
	assert.Equal(t, []int{1}, s.Snapshot().Selected)

	close(r.gate)
	require.Nil(t, sub.Run(context.Background()))
	assert.Equal(t, StatusSucceeded, s.Snapshot().Status)
}

func TestResetDiscardsInFlightResult(t *testing.T) {
	for name, readerErr := range map[string]error{"success": nil, "failure": errors.New("late")} {
		t.Run(name, func(t *testing.T) {
			r := &fakeReader{text: "late reading", err: readerErr, gate: make(chan struct{})}
			s := newSession(t, ModeSingle, true, r)
			s.SetQuestion("Q")
			s.SelectCard(7)

			sub, adv := s.Begin()
			require.Nil(t, adv)

			done := make(chan *Advisory)
			go func() { done <- sub.Run(context.Background()) }()

			s.Reset()
			close(r.gate)
			assert.Nil(t, <-done)

			snap := s.Snapshot()
			assert.Nil(t, snap.Reading)
			assert.Equal(t, StatusIdle, snap.Status)
			assert.Nil(t, snap.Advisory)
			assert.Empty(t, snap.Selected)
		})
	}
}

func TestNewSubmissionSupersedesPrevious(t *testing.T) {
	r := &fakeReader{text: "first"}
	s := newSession(t, ModeSingle, false, r)
	s.SetQuestion("Q")
	s.SelectCard(7)

	first, adv := s.Begin()
	require.Nil(t, adv)
	second, adv := s.Begin()
	require.Nil(t, adv)

	r.text = "second"
	require.Nil(t, second.Run(context.Background()))

	r.text = "stale"
	require.Nil(t, first.Run(context.Background()))

	snap := s.Snapshot()
	require.NotNil(t, snap.Reading)
	assert.Equal(t, "second", *snap.Reading)
	assert.Equal(t, StatusSucceeded, snap.Status)
}

func TestResetRegeneratesDeck(t *testing.T) {
	s := newSession(t, ModeThree, true, &fakeReader{})
	s.SetName("n")
	s.SetQuestion("q")
	s.SelectCard(1)
	before := append([]catalog.Card(nil), s.deck.Order...)

	s.Reset()
	snap := s.Snapshot()
	assert.Empty(t, snap.Name)
	assert.Empty(t, snap.Question)
	assert.Empty(t, snap.Selected)
	assert.Equal(t, StatusIdle, snap.Status)
	assert.True(t, snap.ReversedEnabled)
	assert.NotEqual(t, before, s.deck.Order)
	assert.Len(t, s.deck.Order, 78)
}

func TestSetReversedEnabled(t *testing.T) {
	s := newSession(t, ModeThree, false, &fakeReader{})
	s.SelectCard(3)
	s.SelectCard(5)
	before := s.SnapshotWithDeck()
	for _, c := range before.Deck {
		assert.False(t, c.Reversed)
	}

	s.SetReversedEnabled(true)
	after := s.SnapshotWithDeck()
	assert.True(t, after.ReversedEnabled)
	assert.Equal(t, before.Selected, after.Selected)
	require.Len(t, after.Deck, len(before.Deck))
	var reversed int
	for i := range after.Deck {
		assert.Equal(t, before.Deck[i].Name, after.Deck[i].Name, "order is kept")
		if after.Deck[i].Reversed {
			reversed++
		}
	}
	assert.NotZero(t, reversed)

	s.SetReversedEnabled(false)
	for _, c := range s.SnapshotWithDeck().Deck {
		assert.False(t, c.Reversed)
	}
}

func TestSetReversedEnabledKeepsOrientationsOfSubmittedReading(t *testing.T) {
	r := &fakeReader{text: "done", gate: make(chan struct{})}
	s := newSession(t, ModeThree, true, r)
	s.SetQuestion("Q")
	s.SelectCard(1)
	s.SelectCard(2)
	s.SelectCard(3)

	sub, adv := s.Begin()
	require.Nil(t, adv)
	sent := sub.Request().CardOrientations

	orientations := func() []bool {
		out := make([]bool, 0, 3)
		for _, sc := range s.Snapshot().SelectedCards {
			out = append(out, sc.Reversed)
		}
		return out
	}

	// 提交中切换
	s.SetReversedEnabled(false)
	assert.False(t, s.Snapshot().ReversedEnabled)
	assert.Equal(t, sent, orientations())

	close(r.gate)
	require.Nil(t, sub.Run(context.Background()))

	// 已有解读时切换
	s.SetReversedEnabled(true)
	s.SetReversedEnabled(false)
	assert.Equal(t, sent, orientations())

	// Reset 后按最新开关重新分配
	s.Reset()
	for _, c := range s.SnapshotWithDeck().Deck {
		assert.False(t, c.Reversed)
	}
}

func TestSnapshotJSONKeys(t *testing.T) {
	s := newSession(t, ModeSingle, false, &fakeReader{})
	s.SelectCard(7)

	raw, err := json.Marshal(s.Snapshot())
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.JSONEq(t, `[7]`, string(m["selected_positions"]))

	var cards []map[string]interface{}
	require.NoError(t, json.Unmarshal(m["selected_cards"], &cards))
	require.Len(t, cards, 1)
	assert.Equal(t, float64(7), cards[0]["position"])
}

func TestSelectedCardMeaningFollowsOrientation(t *testing.T) {
	s := newSession(t, ModeSingle, true, &fakeReader{})
	for pos := 0; pos < 78; pos++ {
		s.SelectCard(pos)
		sc := s.Snapshot().SelectedCards[0]
		card, _ := s.deck.Card(pos)
		assert.Equal(t, card.Meaning(sc.Reversed), sc.Meaning)
		assert.Equal(t, catalog.OrientationLabel(sc.Reversed), sc.Orientation)
		assert.Empty(t, sc.Slot)
	}
}

func TestUnresolvedCardMapping(t *testing.T) {
	r := &fakeReader{text: "x"}
	s := newSession(t, ModeSingle, false, r)

	foreign, err := catalog.New([]catalog.Card{{Name: "Stranger", Suit: catalog.SuitMajor}})
	require.NoError(t, err)
	s.deck = deck.New(foreign, false, deck.NewSource(1))

	s.SetQuestion("Q")
	s.SelectCard(0)
	adv := s.Submit(context.Background())
	require.NotNil(t, adv)
	assert.Equal(t, ServiceFailure, adv.Kind)
	assert.Equal(t, 0, r.callCount())
	assert.Equal(t, StatusFailed, s.Snapshot().Status)
}
