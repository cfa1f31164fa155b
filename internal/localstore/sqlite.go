package localstore

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"inventory_console/internal/model"
)

// KVEntry 单表键值存储，一行对应一个键。
type KVEntry struct {
	Key   string `gorm:"primarykey;size:64"`
	Value string `gorm:"not null"`
}

func (KVEntry) TableName() string { return "kv_entries" }

// SQLite 默认的持久化后端：gorm + sqlite 文件，扮演 localStorage。
type SQLite struct {
	db *gorm.DB
}

// NewSQLite 创建 sqlite 后端。调用方负责 gorm.Open 与 AutoMigrate(&KVEntry{})。
func NewSQLite(db *gorm.DB) *SQLite {
	return &SQLite{db: db}
}

// Load 读出整个兜底订单集合；键不存在视为空集合。
func (s *SQLite) Load(ctx context.Context) ([]model.Order, error) {
	var entry KVEntry
	err := s.db.WithContext(ctx).Where("key = ?", OrdersKey).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []model.Order{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decode([]byte(entry.Value))
}

// Save 整体覆盖写（upsert 单行）。
func (s *SQLite) Save(ctx context.Context, orders []model.Order) error {
	b, err := encode(orders)
	if err != nil {
		return err
	}
	entry := KVEntry{Key: OrdersKey, Value: string(b)}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&entry).Error
}
