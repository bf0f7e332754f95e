package repository

import (
	"context"

	"OlympicsHub/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CountryRepository 国家/地区仓储
type CountryRepository interface {
	ListCountries(ctx context.Context) ([]*model.Country, error)
	GetCountry(ctx context.Context, id uint64) (*model.Country, error)
	GetCountryByCode(ctx context.Context, code string) (*model.Country, error)
	GetCountriesByIDs(ctx context.Context, ids []uint64) ([]*model.Country, error)
	CreateCountry(ctx context.Context, c *model.Country) error
	UpdateCountry(ctx context.Context, c *model.Country) error
	// DeleteCountry 返回实际删除行数
	DeleteCountry(ctx context.Context, id uint64) (int64, error)
	// CountCountryReferences 奖牌/对阵/成绩/报名中对该国家的引用数
	CountCountryReferences(ctx context.Context, id uint64) (int64, error)
	// UpsertCountryByCode 按 code 幂等写入（种子数据用）
	UpsertCountryByCode(ctx context.Context, c *model.Country) error
	CountCountries(ctx context.Context) (int64, error)
}

type countryRepository struct {
	db *gorm.DB
}

func NewCountryRepository(db *gorm.DB) CountryRepository {
	return &countryRepository{db: db}
}

func (r *countryRepository) ListCountries(ctx context.Context) ([]*model.Country, error) {
	var list []*model.Country
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *countryRepository) GetCountry(ctx context.Context, id uint64) (*model.Country, error) {
	var c model.Country
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *countryRepository) GetCountryByCode(ctx context.Context, code string) (*model.Country, error) {
	var c model.Country
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *countryRepository) GetCountriesByIDs(ctx context.Context, ids []uint64) ([]*model.Country, error) {
	if len(ids) == 0 {
		return []*model.Country{}, nil
	}
	var list []*model.Country
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *countryRepository) CreateCountry(ctx context.Context, c *model.Country) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *countryRepository) UpdateCountry(ctx context.Context, c *model.Country) error {
	return r.db.WithContext(ctx).Model(&model.Country{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"name":     c.Name,
			"code":     c.Code,
			"flag_url": c.FlagURL,
		}).Error
}

func (r *countryRepository) DeleteCountry(ctx context.Context, id uint64) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Country{})
	return res.RowsAffected, res.Error
}

func (r *countryRepository) CountCountryReferences(ctx context.Context, id uint64) (int64, error) {
	db := r.db.WithContext(ctx)
	var total int64
	counters := []func() (int64, error){
		func() (int64, error) {
			var n int64
			err := db.Model(&model.Medal{}).Where("country_id = ?", id).Count(&n).Error
			return n, err
		},
		func() (int64, error) {
			var n int64
			err := db.Model(&model.Match{}).
				Where("team_a_country_id = ? OR team_b_country_id = ? OR winner_country_id = ?", id, id, id).
				Count(&n).Error
			return n, err
		},
		func() (int64, error) {
			var n int64
			err := db.Model(&model.RoundResult{}).Where("country_id = ?", id).Count(&n).Error
			return n, err
		},
		func() (int64, error) {
			var n int64
			err := db.Model(&model.EventParticipant{}).Where("country_id = ?", id).Count(&n).Error
			return n, err
		},
	}
	for _, count := range counters {
		n, err := count()
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func (r *countryRepository) UpsertCountryByCode(ctx context.Context, c *model.Country) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "flag_url"}),
	}).Create(c).Error
}

func (r *countryRepository) CountCountries(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Country{}).Count(&n).Error
	return n, err
}
