package repository

import (
	"context"

	"OlympicsHub/internal/model"

	"gorm.io/gorm"
)

// MedalFilter 奖牌列表过滤条件
type MedalFilter struct {
	OlympicsID   *uint64
	CountryID    *uint64
	MedalEventID *uint64
}

// MedalRow 奖牌 + 国家/小项信息
type MedalRow struct {
	model.Medal `gorm:"embedded"`
	CountryName string        `gorm:"column:country_name" json:"country_name"`
	CountryCode string        `gorm:"column:country_code" json:"country_code"`
	FlagURL     *string       `gorm:"column:flag_url" json:"flag_url"`
	EventName   string        `gorm:"column:event_name" json:"event_name"`
	EventGender *model.Gender `gorm:"column:event_gender" json:"event_gender"`
	OlympicsID  uint64        `gorm:"column:olympics_id" json:"olympics_id"`
	SportName   *string       `gorm:"column:sport_name" json:"sport_name"`
}

// MedalTally 某国家按奖牌类型的计数（未排名）
type MedalTally struct {
	CountryID uint64  `gorm:"column:country_id"`
	Name      string  `gorm:"column:name"`
	Code      string  `gorm:"column:code"`
	FlagURL   *string `gorm:"column:flag_url"`
	Gold      int64   `gorm:"column:gold"`
	Silver    int64   `gorm:"column:silver"`
	Bronze    int64   `gorm:"column:bronze"`
}

// MedalRepository 奖牌仓储；奖牌榜只从 medals 表实时统计，不落任何汇总
type MedalRepository interface {
	ListMedals(ctx context.Context, filter MedalFilter) ([]*MedalRow, error)
	GetMedal(ctx context.Context, id uint64) (*model.Medal, error)
	CreateMedal(ctx context.Context, m *model.Medal) error
	DeleteMedal(ctx context.Context, id uint64) (int64, error)
	// TallyByCountry olympicsID 为 nil 时统计全部届次
	TallyByCountry(ctx context.Context, olympicsID *uint64) ([]*MedalTally, error)
	CountMedals(ctx context.Context, olympicsID *uint64) (int64, error)
}

type medalRepository struct {
	db *gorm.DB
}

func NewMedalRepository(db *gorm.DB) MedalRepository {
	return &medalRepository{db: db}
}

const medalRowSelect = `medals.*, countries.name AS country_name, countries.code AS country_code,
countries.flag_url AS flag_url, medal_events.name AS event_name, medal_events.gender AS event_gender,
medal_events.olympics_id AS olympics_id, sports.name AS sport_name`

// ListMedals 最新颁发的在前
func (r *medalRepository) ListMedals(ctx context.Context, filter MedalFilter) ([]*MedalRow, error) {
	db := r.db.WithContext(ctx).
		Table("medals").
		Select(medalRowSelect).
		Joins("JOIN countries ON countries.id = medals.country_id").
		Joins("JOIN medal_events ON medal_events.id = medals.medal_event_id").
		Joins("LEFT JOIN sports ON sports.id = medal_events.sport_id")

	if filter.OlympicsID != nil {
		db = db.Where("medal_events.olympics_id = ?", *filter.OlympicsID)
	}
	if filter.CountryID != nil {
		db = db.Where("medals.country_id = ?", *filter.CountryID)
	}
	if filter.MedalEventID != nil {
		db = db.Where("medals.medal_event_id = ?", *filter.MedalEventID)
	}

	var list []*MedalRow
	if err := db.Order("medals.created_at DESC, medals.id DESC").Scan(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *medalRepository) GetMedal(ctx context.Context, id uint64) (*model.Medal, error) {
	var m model.Medal
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *medalRepository) CreateMedal(ctx context.Context, m *model.Medal) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *medalRepository) DeleteMedal(ctx context.Context, id uint64) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Medal{})
	return res.RowsAffected, res.Error
}

func (r *medalRepository) TallyByCountry(ctx context.Context, olympicsID *uint64) ([]*MedalTally, error) {
	db := r.db.WithContext(ctx).
		Table("medals").
		Select(`countries.id AS country_id, countries.name AS name, countries.code AS code, countries.flag_url AS flag_url,
SUM(CASE WHEN medals.medal_type = ? THEN 1 ELSE 0 END) AS gold,
SUM(CASE WHEN medals.medal_type = ? THEN 1 ELSE 0 END) AS silver,
SUM(CASE WHEN medals.medal_type = ? THEN 1 ELSE 0 END) AS bronze`,
			model.MedalGold, model.MedalSilver, model.MedalBronze).
		Joins("JOIN countries ON countries.id = medals.country_id")

	if olympicsID != nil {
		db = db.Joins("JOIN medal_events ON medal_events.id = medals.medal_event_id").
			Where("medal_events.olympics_id = ?", *olympicsID)
	}

	var list []*MedalTally
	err := db.Group("countries.id, countries.name, countries.code, countries.flag_url").
		Order("countries.id ASC").
		Scan(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *medalRepository) CountMedals(ctx context.Context, olympicsID *uint64) (int64, error) {
	db := r.db.WithContext(ctx).Model(&model.Medal{})
	if olympicsID != nil {
		db = db.Joins("JOIN medal_events ON medal_events.id = medals.medal_event_id").
			Where("medal_events.olympics_id = ?", *olympicsID)
	}
	var n int64
	err := db.Count(&n).Error
	return n, err
}
