package repository

import (
	"context"

	"OlympicsHub/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ParticipantFilter 报名关系过滤条件
type ParticipantFilter struct {
	MedalEventID *uint64
	CountryID    *uint64
	OlympicsID   *uint64
}

// ParticipantRow 报名关系 + 国家/小项信息
type ParticipantRow struct {
	model.EventParticipant `gorm:"embedded"`
	CountryName            string        `gorm:"column:country_name" json:"country_name"`
	CountryCode            string        `gorm:"column:country_code" json:"country_code"`
	FlagURL                *string       `gorm:"column:flag_url" json:"flag_url"`
	EventName              string        `gorm:"column:event_name" json:"event_name"`
	EventGender            *model.Gender `gorm:"column:event_gender" json:"event_gender"`
	OlympicsID             uint64        `gorm:"column:olympics_id" json:"olympics_id"`
	SportName              *string       `gorm:"column:sport_name" json:"sport_name"`
}

// ParticipantRepository 小项报名仓储
type ParticipantRepository interface {
	ListParticipants(ctx context.Context, filter ParticipantFilter) ([]*ParticipantRow, error)
	// AddParticipants 重复的 (event, country) 对静默忽略
	AddParticipants(ctx context.Context, medalEventID uint64, countryIDs []uint64) error
	// ReplaceParticipants 用给定国家集合整体替换该小项的报名
	ReplaceParticipants(ctx context.Context, medalEventID uint64, countryIDs []uint64) error
	DeleteParticipant(ctx context.Context, id uint64) (int64, error)
}

type participantRepository struct {
	db *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &participantRepository{db: db}
}

const participantRowSelect = `event_participants.*, countries.name AS country_name, countries.code AS country_code,
countries.flag_url AS flag_url, medal_events.name AS event_name, medal_events.gender AS event_gender,
medal_events.olympics_id AS olympics_id, sports.name AS sport_name`

func (r *participantRepository) ListParticipants(ctx context.Context, filter ParticipantFilter) ([]*ParticipantRow, error) {
	db := r.db.WithContext(ctx).
		Table("event_participants").
		Select(participantRowSelect).
		Joins("JOIN countries ON countries.id = event_participants.country_id").
		Joins("JOIN medal_events ON medal_events.id = event_participants.medal_event_id").
		Joins("LEFT JOIN sports ON sports.id = medal_events.sport_id")

	if filter.MedalEventID != nil {
		db = db.Where("event_participants.medal_event_id = ?", *filter.MedalEventID)
	}
	if filter.CountryID != nil {
		db = db.Where("event_participants.country_id = ?", *filter.CountryID)
	}
	if filter.OlympicsID != nil {
		db = db.Where("medal_events.olympics_id = ?", *filter.OlympicsID)
	}

	var list []*ParticipantRow
	if err := db.Order("countries.name ASC, medal_events.name ASC, event_participants.id ASC").Scan(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *participantRepository) AddParticipants(ctx context.Context, medalEventID uint64, countryIDs []uint64) error {
	return insertParticipants(r.db.WithContext(ctx), medalEventID, countryIDs)
}

func (r *participantRepository) ReplaceParticipants(ctx context.Context, medalEventID uint64, countryIDs []uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("medal_event_id = ?", medalEventID).Delete(&model.EventParticipant{}).Error; err != nil {
			return err
		}
		return insertParticipants(tx, medalEventID, countryIDs)
	})
}

func (r *participantRepository) DeleteParticipant(ctx context.Context, id uint64) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.EventParticipant{})
	return res.RowsAffected, res.Error
}

func insertParticipants(db *gorm.DB, medalEventID uint64, countryIDs []uint64) error {
	if len(countryIDs) == 0 {
		return nil
	}
	rows := make([]*model.EventParticipant, 0, len(countryIDs))
	for _, cid := range countryIDs {
		rows = append(rows, &model.EventParticipant{MedalEventID: medalEventID, CountryID: cid})
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "medal_event_id"}, {Name: "country_id"}},
		DoNothing: true,
	}).Create(&rows).Error
}
