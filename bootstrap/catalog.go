package bootstrap

import (
	"context"
	"fmt"

	"tarott/app/repositories"
	"tarott/pkg/catalog"
	"tarott/pkg/config"
	"tarott/pkg/logger"
)

// SetupCatalog 加载牌库
// - embedded: 使用内置牌库
// - database: 从 tarot_cards 表读取，表为空时写入内置牌库
func SetupCatalog(ctx context.Context) (*catalog.Catalog, error) {
	embedded, err := catalog.Default()
	if err != nil {
		return nil, err
	}

	source := config.GetString("catalog.source", "embedded")
	switch source {
	case "embedded":
		logger.InfoString("牌库", "Setup", fmt.Sprintf("使用内置牌库，共 %d 张", embedded.Len()))
		return embedded, nil
	case "database":
		if err := SetupDB(); err != nil {
			return nil, err
		}
		cat, err := repositories.NewCardRepository(nil).LoadCatalog(ctx, embedded)
		if err != nil {
			return nil, err
		}
		logger.InfoString("牌库", "Setup", fmt.Sprintf("从数据库加载牌库，共 %d 张", cat.Len()))
		return cat, nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", source)
	}
}
