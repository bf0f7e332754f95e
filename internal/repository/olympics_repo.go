package repository

import (
	"context"
	"fmt"
	"strconv"

	"OlympicsHub/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OlympicsRepository 奥运会届次仓储
type OlympicsRepository interface {
	ListOlympics(ctx context.Context) ([]*model.Olympics, error)
	GetOlympics(ctx context.Context, id uint64) (*model.Olympics, error)
	// GetFlaggedActive 返回 is_active=true 的那一届；没有时返回 gorm.ErrRecordNotFound
	GetFlaggedActive(ctx context.Context) (*model.Olympics, error)
	CreateOlympics(ctx context.Context, o *model.Olympics) error
	UpdateOlympics(ctx context.Context, o *model.Olympics) error
	// DeleteOlympics 级联删除其下全部小项（含轮次、对阵、成绩、报名、奖牌）
	DeleteOlympics(ctx context.Context, id uint64) (int64, error)
	// Activate 在一个事务里：全部置 false → 目标置 true → 写 active_olympics_id
	Activate(ctx context.Context, id uint64) error
}

type olympicsRepository struct {
	db *gorm.DB
}

func NewOlympicsRepository(db *gorm.DB) OlympicsRepository {
	return &olympicsRepository{db: db}
}

func (r *olympicsRepository) ListOlympics(ctx context.Context) ([]*model.Olympics, error) {
	var list []*model.Olympics
	if err := r.db.WithContext(ctx).Order("year DESC, id DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *olympicsRepository) GetOlympics(ctx context.Context, id uint64) (*model.Olympics, error) {
	var o model.Olympics
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *olympicsRepository) GetFlaggedActive(ctx context.Context) (*model.Olympics, error) {
	var o model.Olympics
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("id ASC").First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *olympicsRepository) CreateOlympics(ctx context.Context, o *model.Olympics) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *olympicsRepository) UpdateOlympics(ctx context.Context, o *model.Olympics) error {
	return r.db.WithContext(ctx).Model(&model.Olympics{}).
		Where("id = ?", o.ID).
		Updates(map[string]interface{}{
			"name":       o.Name,
			"year":       o.Year,
			"type":       o.Type,
			"city":       o.City,
			"country":    o.Country,
			"logo_url":   o.LogoURL,
			"start_date": o.StartDate,
			"end_date":   o.EndDate,
		}).Error
}

func (r *olympicsRepository) DeleteOlympics(ctx context.Context, id uint64) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var eventIDs []uint64
		if err := tx.Model(&model.MedalEvent{}).Where("olympics_id = ?", id).Pluck("id", &eventIDs).Error; err != nil {
			return err
		}
		if err := cascadeDeleteMedalEvents(tx, eventIDs); err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Olympics{})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		// 被删的是当前届时清掉设置，避免解析到悬空 id
		return tx.Where("key = ? AND value = ?", model.SettingActiveOlympicsID, strconv.FormatUint(id, 10)).
			Delete(&model.Setting{}).Error
	})
	return affected, err
}

func (r *olympicsRepository) Activate(ctx context.Context, id uint64) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("开启事务失败: %w", tx.Error)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := tx.Model(&model.Olympics{}).Where("is_active = ?", true).Update("is_active", false).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("清除当前届标记失败: %w", err)
	}
	res := tx.Model(&model.Olympics{}).Where("id = ?", id).Update("is_active", true)
	if res.Error != nil {
		tx.Rollback()
		return fmt.Errorf("设置当前届失败: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return gorm.ErrRecordNotFound
	}
	if err := upsertSetting(tx, model.SettingActiveOlympicsID, strconv.FormatUint(id, 10)); err != nil {
		tx.Rollback()
		return fmt.Errorf("写入 active_olympics_id 失败: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("提交事务失败: %w", err)
	}
	return nil
}

func upsertSetting(db *gorm.DB, key, value string) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&model.Setting{Key: key, Value: value}).Error
}
