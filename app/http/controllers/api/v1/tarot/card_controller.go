package tarot

import (
	"errors"

	"github.com/gin-gonic/gin"

	"tarott/app/requests"
	"tarott/pkg/catalog"
	"tarott/pkg/response"
)

// CardController 卡牌库
type CardController struct {
	catalog *catalog.Catalog
}

// NewCardController 创建控制器
func NewCardController(cat *catalog.Catalog) *CardController {
	return &CardController{catalog: cat}
}

// Index 搜索卡牌，q 匹配英文名或本地化名称，suit 按分类过滤
func (cc *CardController) Index(c *gin.Context) {
	request := requests.CardSearchRequest{}
	if ok := requests.Validate(c, &request, requests.CardSearch); !ok {
		return
	}

	cards := cc.catalog.Search(request.Query, catalog.Suit(request.Suit))
	response.Data(c, gin.H{
		"cards": cards,
		"total": len(cards),
	})
}

// Show 按英文名获取单张牌
func (cc *CardController) Show(c *gin.Context) {
	card, err := cc.catalog.Lookup(c.Param("name"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			response.Abort404(c, "卡牌不存在")
			return
		}
		response.Abort500(c)
		return
	}
	response.Data(c, card)
}
