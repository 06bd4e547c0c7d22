package card

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"tarott/pkg/catalog"
)

// Keywords 自定义类型用于处理关键词数组的 JSON 序列化
type Keywords []string

// Value 实现 driver.Valuer 接口
func (k Keywords) Value() (driver.Value, error) {
	if len(k) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(k)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 实现 sql.Scanner 接口
func (k *Keywords) Scan(value interface{}) error {
	if value == nil {
		*k = Keywords{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("invalid type for keywords")
	}

	return json.Unmarshal(bytes, k)
}

// Validate 验证记录
func (c *Card) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.Position < 0 {
		return errors.New("position must not be negative")
	}
	if !catalog.Suit(c.Suit).Valid() {
		return errors.New("invalid suit: " + c.Suit)
	}
	return nil
}

// FromCatalogCard 由牌库中的牌生成数据表记录
func FromCatalogCard(position int, c catalog.Card) Card {
	return Card{
		Position:        position,
		Name:            c.Name,
		DisplayName:     c.DisplayName,
		Number:          c.Number,
		Suit:            string(c.Suit),
		Keywords:        append(Keywords(nil), c.Keywords...),
		UprightMeaning:  c.UprightMeaning,
		ReversedMeaning: c.ReversedMeaning,
		DetailedMeaning: c.DetailedMeaning,
		Advice:          c.Advice,
		Symbolism:       c.Symbolism,
		Image:           c.Image,
	}
}

// ToCatalogCard 转换为牌库使用的类型
func (c Card) ToCatalogCard() catalog.Card {
	return catalog.Card{
		Name:            c.Name,
		DisplayName:     c.DisplayName,
		Number:          c.Number,
		Suit:            catalog.Suit(c.Suit),
		Keywords:        append([]string(nil), c.Keywords...),
		UprightMeaning:  c.UprightMeaning,
		ReversedMeaning: c.ReversedMeaning,
		DetailedMeaning: c.DetailedMeaning,
		Advice:          c.Advice,
		Symbolism:       c.Symbolism,
		Image:           c.Image,
	}
}
