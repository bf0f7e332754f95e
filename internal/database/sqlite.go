package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openSQLite(dsn string, gormLogger logger.Interface) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormLogger, TranslateError: true})
	if err != nil {
		return nil, err
	}
	// SQLite 单写者；内存库每个连接各自一份数据，只能用一个连接
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// OpenMemory 打开一个已建好全部表的内存 SQLite 库（测试与本地试用）
func OpenMemory() (*gorm.DB, error) {
	db, err := openSQLite(":memory:", logger.Default.LogMode(logger.Silent))
	if err != nil {
		return nil, fmt.Errorf("打开内存库失败: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
