package repository

import (
	"context"

	"OlympicsHub/internal/model"

	"gorm.io/gorm"
)

// SettingRepository key/value 配置仓储
type SettingRepository interface {
	// GetSetting 不存在时返回 gorm.ErrRecordNotFound
	GetSetting(ctx context.Context, key string) (*model.Setting, error)
	ListSettings(ctx context.Context) ([]*model.Setting, error)
	PutSetting(ctx context.Context, key, value string) error
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) GetSetting(ctx context.Context, key string) (*model.Setting, error) {
	var s model.Setting
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingRepository) ListSettings(ctx context.Context) ([]*model.Setting, error) {
	var list []*model.Setting
	if err := r.db.WithContext(ctx).Order("key ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *settingRepository) PutSetting(ctx context.Context, key, value string) error {
	return upsertSetting(r.db.WithContext(ctx), key, value)
}
