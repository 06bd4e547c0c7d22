package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"tarott/app/models/card"
	"tarott/pkg/catalog"
	"tarott/pkg/database"
	"tarott/pkg/logger"
)

// CardRepository 牌库数据表仓库
type CardRepository struct {
	db *gorm.DB
}

// NewCardRepository 创建仓库实例，db 为空时使用全局连接
func NewCardRepository(db *gorm.DB) *CardRepository {
	if db == nil {
		db = database.DB
	}
	return &CardRepository{
		db: db,
	}
}

// All 按牌库下标顺序返回全部记录
func (r *CardRepository) All(ctx context.Context) ([]card.Card, error) {
	var cards []card.Card
	err := r.db.WithContext(ctx).Order("position ASC").Find(&cards).Error
	return cards, err
}

// Count 记录总数
func (r *CardRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&card.Card{}).Count(&total).Error
	return total, err
}

// SeedIfEmpty 表为空时写入 cat 中的全部牌，返回写入的条数
func (r *CardRepository) SeedIfEmpty(ctx context.Context, cat *catalog.Catalog) (int, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return 0, err
	}
	if total > 0 {
		return 0, nil
	}

	rows := make([]card.Card, 0, cat.Len())
	for i, c := range cat.Cards() {
		rows = append(rows, card.FromCatalogCard(i, c))
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&rows, 100).Error
	})
	if err != nil {
		return 0, err
	}

	logger.InfoString("牌库", "初始化", fmt.Sprintf("写入 %d 张牌", len(rows)))
	return len(rows), nil
}

// LoadCatalog 从数据表构建牌库，表为空时先用 seed 初始化
func (r *CardRepository) LoadCatalog(ctx context.Context, seed *catalog.Catalog) (*catalog.Catalog, error) {
	if seed != nil {
		if _, err := r.SeedIfEmpty(ctx, seed); err != nil {
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
	}

	rows, err := r.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	cards := make([]catalog.Card, 0, len(rows))
	for i, row := range rows {
		if row.Position != i {
			return nil, fmt.Errorf("load catalog: position gap at %d (found %d)", i, row.Position)
		}
		cards = append(cards, row.ToCatalogCard())
	}
	return catalog.New(cards)
}
