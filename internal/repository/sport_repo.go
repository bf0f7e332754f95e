package repository

import (
	"context"
	"fmt"

	"OlympicsHub/internal/model"

	"gorm.io/gorm"
)

// SportRepository 运动大项仓储
type SportRepository interface {
	ListSports(ctx context.Context) ([]*model.Sport, error)
	GetSport(ctx context.Context, id uint64) (*model.Sport, error)
	GetSportByName(ctx context.Context, name string) (*model.Sport, error)
	CreateSport(ctx context.Context, s *model.Sport) error
	UpdateSport(ctx context.Context, s *model.Sport) error
	// DeleteSport 删除大项，并把其下小项的 sport_id 置空（同一事务）
	DeleteSport(ctx context.Context, id uint64) (int64, error)
	CountSports(ctx context.Context) (int64, error)
}

type sportRepository struct {
	db *gorm.DB
}

func NewSportRepository(db *gorm.DB) SportRepository {
	return &sportRepository{db: db}
}

func (r *sportRepository) ListSports(ctx context.Context) ([]*model.Sport, error) {
	var list []*model.Sport
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *sportRepository) GetSport(ctx context.Context, id uint64) (*model.Sport, error) {
	var s model.Sport
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sportRepository) GetSportByName(ctx context.Context, name string) (*model.Sport, error) {
	var s model.Sport
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sportRepository) CreateSport(ctx context.Context, s *model.Sport) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sportRepository) UpdateSport(ctx context.Context, s *model.Sport) error {
	return r.db.WithContext(ctx).Model(&model.Sport{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{"name": s.Name, "icon": s.Icon}).Error
}

func (r *sportRepository) DeleteSport(ctx context.Context, id uint64) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.MedalEvent{}).
			Where("sport_id = ?", id).
			Update("sport_id", nil).Error; err != nil {
			return fmt.Errorf("解除小项关联失败: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&model.Sport{})
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}

func (r *sportRepository) CountSports(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Sport{}).Count(&n).Error
	return n, err
}
