// Package card 牌库数据表模型
package card

import (
	"gorm.io/gorm"

	"tarott/app/models"
)

// Card 牌库中的一张牌，Position 即在牌库中的下标，也就是解读请求里发送的编号
type Card struct {
	models.BaseModel

	Position        int      `gorm:"uniqueIndex;not null" json:"position"`
	Name            string   `gorm:"type:varchar(64);uniqueIndex;not null" json:"name"`
	DisplayName     string   `gorm:"type:varchar(64)" json:"turkish_name"`
	Number          int      `json:"number"`
	Suit            string   `gorm:"type:varchar(20);index" json:"suit"`
	Keywords        Keywords `gorm:"type:json" json:"keywords"`
	UprightMeaning  string   `gorm:"type:text" json:"meaning_upright"`
	ReversedMeaning string   `gorm:"type:text" json:"meaning_reversed"`
	DetailedMeaning string   `gorm:"type:text" json:"detailed_meaning"`
	Advice          string   `gorm:"type:text" json:"advice"`
	Symbolism       string   `gorm:"type:text" json:"symbolism"`
	Image           string   `gorm:"type:varchar(255)" json:"image"`

	models.CommonTimestampsField
}

// TableName 指定表名
func (Card) TableName() string {
	return "tarot_cards"
}

// BeforeSave GORM 钩子
func (c *Card) BeforeSave(*gorm.DB) error {
	return c.Validate()
}
