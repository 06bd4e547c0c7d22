package catalog

// Suit 卡牌分类
type Suit string

const (
	SuitMajor     Suit = "Major Arcana"
	SuitCups      Suit = "Cups"
	SuitWands     Suit = "Wands"
	SuitSwords    Suit = "Swords"
	SuitPentacles Suit = "Pentacles"
)

// Suits 牌库中允许出现的全部分类，顺序即卡牌库页面的筛选顺序
var Suits = []Suit{SuitMajor, SuitCups, SuitWands, SuitSwords, SuitPentacles}

// Valid 检查分类是否合法
func (s Suit) Valid() bool {
	for _, suit := range Suits {
		if s == suit {
			return true
		}
	}
	return false
}

// Card 单张塔罗牌的静态定义，加载后不可变
type Card struct {
	Name            string   `json:"name"`         // 英文名，牌库内唯一
	DisplayName     string   `json:"turkish_name"` // 本地化名称
	Number          int      `json:"number"`
	Suit            Suit     `json:"suit"`
	Keywords        []string `json:"keywords"`
	UprightMeaning  string   `json:"meaning_upright"`
	ReversedMeaning string   `json:"meaning_reversed"`
	DetailedMeaning string   `json:"detailed_meaning"`
	Advice          string   `json:"advice"`
	Symbolism       string   `json:"symbolism"`
	Image           string   `json:"image"` // 图片资源标识，由前端解析
}

// Meaning 按正逆位返回牌义
func (c Card) Meaning(reversed bool) string {
	if reversed {
		return c.ReversedMeaning
	}
	return c.UprightMeaning
}

// Label 返回 "The Fool (Deli)" 形式的双语名称
func (c Card) Label() string {
	if c.DisplayName == "" {
		return c.Name
	}
	return c.Name + " (" + c.DisplayName + ")"
}

// positionLabels 三张牌阵中的位置：过去、现在、未来
var positionLabels = []string{"Geçmiş", "Şimdi", "Gelecek"}

// PositionLabel 返回牌阵位置名称，越界时返回 "Bilinmeyen"
func PositionLabel(i int) string {
	if i < 0 || i >= len(positionLabels) {
		return "Bilinmeyen"
	}
	return positionLabels[i]
}

// OrientationLabel 正位 "Düz"，逆位 "Ters"
func OrientationLabel(reversed bool) string {
	if reversed {
		return "Ters"
	}
	return "Düz"
}
