// Package deck 负责单次会话的洗牌与正逆位分配
package deck

import (
	"tarott/pkg/catalog"
)

// Deck 一次会话内的牌序与正逆位
type Deck struct {
	Order    []catalog.Card // 牌库的一个排列
	Reversed []bool         // 与 Order 一一对应，true 表示逆位
}

// New 洗牌并分配正逆位。
// 洗牌为 Fisher-Yates：从最后一个下标往前，与 [0, i] 中均匀选取的位置交换。
func New(cat *catalog.Catalog, reversedEnabled bool, src Source) *Deck {
	order := cat.Cards()
	for i := len(order) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		order[i], order[j] = order[j], order[i]
	}

	d := &Deck{Order: order}
	d.Reorient(reversedEnabled, src)
	return d
}

// Reorient 只重新分配正逆位，不改变牌序。
// 开启逆位时每张牌独立以 1/2 概率为逆位，否则全部正位。
func (d *Deck) Reorient(reversedEnabled bool, src Source) {
	reversed := make([]bool, len(d.Order))
	if reversedEnabled {
		for i := range reversed {
			reversed[i] = src.Intn(2) == 1
		}
	}
	d.Reversed = reversed
}

// Len 牌数
func (d *Deck) Len() int {
	return len(d.Order)
}

// Card 返回洗牌后 pos 位置的卡牌
func (d *Deck) Card(pos int) (catalog.Card, bool) {
	if pos < 0 || pos >= len(d.Order) {
		return catalog.Card{}, false
	}
	return d.Order[pos], true
}

// IsReversed pos 位置是否逆位，越界返回 false
func (d *Deck) IsReversed(pos int) bool {
	if pos < 0 || pos >= len(d.Reversed) {
		return false
	}
	return d.Reversed[pos]
}
