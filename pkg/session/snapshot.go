package session

import (
	"tarott/pkg/catalog"
)

// SelectedCard 已选卡牌的展示信息
type SelectedCard struct {
	Position    int    `json:"position"`       // 洗牌后的位置
	Slot        string `json:"slot,omitempty"` // 三张牌阵中的位置名称
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Label       string `json:"label"`
	Image       string `json:"image"`
	Reversed    bool   `json:"reversed"`
	Orientation string `json:"orientation"`
	Meaning     string `json:"meaning"`
}

// DeckCard 牌阵网格中的一张牌
type DeckCard struct {
	Position    int    `json:"position"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Image       string `json:"image"`
	Reversed    bool   `json:"reversed"`
}

// Snapshot 会话状态的只读副本，供展示层渲染
type Snapshot struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Question        string         `json:"question"`
	Mode            Mode           `json:"type"`
	ReversedEnabled bool           `json:"enable_reversed"`
	DeckSize        int            `json:"deck_size"`
	Selected        []int          `json:"selected_positions"`
	SelectedCards   []SelectedCard `json:"selected_cards"`
	Reading         *string        `json:"reading"`
	Status          Status         `json:"status"`
	Advisory        *Advisory      `json:"advisory,omitempty"`
	Deck            []DeckCard     `json:"deck,omitempty"`
}

// Snapshot 当前状态
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(false)
}

// SnapshotWithDeck 当前状态，附带完整的洗牌结果
func (s *Session) SnapshotWithDeck() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(true)
}

func (s *Session) snapshot(withDeck bool) Snapshot {
	snap := Snapshot{
		ID:              s.id,
		Name:            s.name,
		Question:        s.question,
		Mode:            s.mode,
		ReversedEnabled: s.reversedEnabled,
		DeckSize:        s.deck.Len(),
		Selected:        append([]int{}, s.selected...),
		SelectedCards:   make([]SelectedCard, 0, len(s.selected)),
		Status:          s.status,
	}

	if s.readingText != nil {
		text := *s.readingText
		snap.Reading = &text
	}
	if s.advisory != nil {
		adv := *s.advisory
		snap.Advisory = &adv
	}

	for i, pos := range s.selected {
		card, _ := s.deck.Card(pos)
		reversed := s.deck.IsReversed(pos)
		sc := SelectedCard{
			Position:    pos,
			Name:        card.Name,
			DisplayName: card.DisplayName,
			Label:       card.Label(),
			Image:       card.Image,
			Reversed:    reversed,
			Orientation: catalog.OrientationLabel(reversed),
			Meaning:     card.Meaning(reversed),
		}
		if s.mode == ModeThree {
			sc.Slot = catalog.PositionLabel(i)
		}
		snap.SelectedCards = append(snap.SelectedCards, sc)
	}

	if withDeck {
		snap.Deck = make([]DeckCard, s.deck.Len())
		for i, card := range s.deck.Order {
			snap.Deck[i] = DeckCard{
				Position:    i,
				Name:        card.Name,
				DisplayName: card.DisplayName,
				Image:       card.Image,
				Reversed:    s.deck.IsReversed(i),
			}
		}
	}

	return snap
}
