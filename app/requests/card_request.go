package requests

import (
	"github.com/gin-gonic/gin"
	"github.com/thedevsaddam/govalidator"
)

// CardSearchRequest 卡牌库搜索
type CardSearchRequest struct {
	Query string `form:"q" valid:"q"`
	Suit  string `form:"suit" valid:"suit"`
}

// CardSearch 验证卡牌库搜索参数
func CardSearch(data interface{}, c *gin.Context) map[string][]string {
	rules := govalidator.MapData{
		"q":    []string{"max:100"},
		"suit": []string{"in:all,Major Arcana,Cups,Wands,Swords,Pentacles"},
	}
	messages := govalidator.MapData{
		"q": []string{
			"max:搜索关键词不能超过 100 个字符",
		},
		"suit": []string{
			"in:分类必须是 all、Major Arcana、Cups、Wands、Swords 或 Pentacles",
		},
	}
	return validate(data, rules, messages)
}
