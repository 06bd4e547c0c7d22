// Package database 数据库操作
package database

import (
	"database/sql"
	"fmt"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"tarott/pkg/logger"
)

// DB 对象
var DB *gorm.DB
var SQLDB *sql.DB

// Connect 连接数据库，结果保存在 DB 和 SQLDB 中
func Connect(dbConfig gorm.Dialector, _logger gormlogger.Interface) error {
	db, err := Open(dbConfig, _logger)
	if err != nil {
		return err
	}

	// 获取底层的 sqlDB
	sqlDB, err := db.DB()
	if err != nil {
		logger.ErrorString("数据库", "获取底层SQL", err.Error())
		return fmt.Errorf("database: %w", err)
	}

	DB, SQLDB = db, sqlDB
	return nil
}

// Open 打开一个独立的 gorm 连接，不修改全局对象
func Open(dbConfig gorm.Dialector, _logger gormlogger.Interface) (*gorm.DB, error) {
	db, err := gorm.Open(dbConfig, &gorm.Config{
		Logger: _logger,
	})
	if err != nil {
		logger.ErrorString("数据库", "连接", err.Error())
		return nil, fmt.Errorf("database: %w", err)
	}
	return db, nil
}

// AutoMigrate 自动迁移所有数据表
func AutoMigrate(db *gorm.DB, tables []interface{}) error {
	return db.AutoMigrate(tables...)
}
