// Package catalog 提供静态塔罗牌库
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Unresolved IndexOf 找不到对应卡牌时的返回值
const Unresolved = -1

var (
	// ErrNotFound 卡牌不存在
	ErrNotFound = errors.New("catalog: card not found")
	// ErrEmpty 牌库为空
	ErrEmpty = errors.New("catalog: no cards")
)

//go:embed cards.json
var embeddedCards []byte

// Catalog 有序、只读的牌库。
// 卡牌在牌库中的下标即远端解读服务使用的卡牌编号。
type Catalog struct {
	cards []Card
	index map[cardKey]int
	names map[string]int
}

type cardKey struct {
	name        string
	displayName string
}

// New 校验并创建牌库，传入的切片会被复制
func New(cards []Card) (*Catalog, error) {
	if len(cards) == 0 {
		return nil, ErrEmpty
	}

	c := &Catalog{
		cards: make([]Card, len(cards)),
		index: make(map[cardKey]int, len(cards)),
		names: make(map[string]int, len(cards)),
	}
	copy(c.cards, cards)

	for i, card := range c.cards {
		if card.Name == "" {
			return nil, fmt.Errorf("catalog: card #%d has no name", i)
		}
		if !card.Suit.Valid() {
			return nil, fmt.Errorf("catalog: card %q has unknown suit %q", card.Name, card.Suit)
		}
		if _, dup := c.names[card.Name]; dup {
			return nil, fmt.Errorf("catalog: duplicate card name %q", card.Name)
		}
		c.names[card.Name] = i
		c.index[cardKey{card.Name, card.DisplayName}] = i
	}

	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default 返回内置的 78 张牌库
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		var cards []Card
		if err := json.Unmarshal(embeddedCards, &cards); err != nil {
			defaultErr = fmt.Errorf("catalog: decode embedded cards: %w", err)
			return
		}
		defaultCatalog, defaultErr = New(cards)
	})
	return defaultCatalog, defaultErr
}

// Len 卡牌数量
func (c *Catalog) Len() int {
	return len(c.cards)
}

// At 按原始下标取卡牌
func (c *Catalog) At(i int) (Card, bool) {
	if i < 0 || i >= len(c.cards) {
		return Card{}, false
	}
	return c.cards[i], true
}

// Cards 返回牌库副本
func (c *Catalog) Cards() []Card {
	out := make([]Card, len(c.cards))
	copy(out, c.cards)
	return out
}

// IndexOf 通过 (name, displayName) 反查卡牌在原始牌库中的下标，
// 找不到时返回 Unresolved
func (c *Catalog) IndexOf(name, displayName string) int {
	if i, ok := c.index[cardKey{name, displayName}]; ok {
		return i
	}
	return Unresolved
}

// Lookup 按英文名查找
func (c *Catalog) Lookup(name string) (Card, error) {
	i, ok := c.names[name]
	if !ok {
		return Card{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return c.cards[i], nil
}

// Search 卡牌库搜索：名称或本地化名称包含关键字（不区分大小写），
// suit 为空或 "all" 时不过滤分类
func (c *Catalog) Search(query string, suit Suit) []Card {
	q := strings.ToLower(strings.TrimSpace(query))
	all := suit == "" || strings.EqualFold(string(suit), "all")

	out := make([]Card, 0, len(c.cards))
	for _, card := range c.cards {
		if !all && card.Suit != suit {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(card.Name), q) &&
			!strings.Contains(strings.ToLower(card.DisplayName), q) {
			continue
		}
		out = append(out, card)
	}
	return out
}
