package config

import "tarott/pkg/config"

func init() {
	config.Add("catalog", func() map[string]interface{} {
		return map[string]interface{}{
			// 牌库来源：
			// "embedded" 使用内置的 78 张牌
			// "database" 从数据库 tarot_cards 表读取，表为空时写入内置牌库
			"source": config.Env("CATALOG_SOURCE", "embedded"),
		}
	})
}
