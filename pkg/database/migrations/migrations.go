package migrations

import (
	"tarott/app/models/card"
)

// RegisterTables 返回需要迁移的表的模型列表
func RegisterTables() []interface{} {
	return []interface{}{
		&card.Card{},
	}
}
