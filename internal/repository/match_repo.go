package repository

import (
	"context"

	"OlympicsHub/internal/model"

	"gorm.io/gorm"
)

// MatchFilter 对阵列表过滤条件
type MatchFilter struct {
	ID           *uint64
	EventRoundID *uint64
	MedalEventID *uint64
	OlympicsID   *uint64
	CountryID    *uint64 // 任一方为该国家
}

// MatchRow 对阵 + 轮次/小项/双方国家信息
type MatchRow struct {
	model.Match      `gorm:"embedded"`
	MedalEventID     uint64          `gorm:"column:medal_event_id" json:"medal_event_id"`
	OlympicsID       uint64          `gorm:"column:olympics_id" json:"olympics_id"`
	EventName        string          `gorm:"column:event_name" json:"event_name"`
	EventGender      *model.Gender   `gorm:"column:event_gender" json:"event_gender"`
	RoundType        model.RoundType `gorm:"column:round_type" json:"round_type"`
	RoundNumber      int             `gorm:"column:round_number" json:"round_number"`
	RoundName        *string         `gorm:"column:round_name" json:"round_name"`
	TeamACountryName *string         `gorm:"column:team_a_country_name" json:"team_a_country_name"`
	TeamACountryCode *string         `gorm:"column:team_a_country_code" json:"team_a_country_code"`
	TeamBCountryName *string         `gorm:"column:team_b_country_name" json:"team_b_country_name"`
	TeamBCountryCode *string         `gorm:"column:team_b_country_code" json:"team_b_country_code"`
}

// MatchRepository 对阵仓储
type MatchRepository interface {
	ListMatches(ctx context.Context, filter MatchFilter) ([]*MatchRow, error)
	GetMatch(ctx context.Context, id uint64) (*model.Match, error)
	CreateMatch(ctx context.Context, m *model.Match) error
	UpdateMatch(ctx context.Context, m *model.Match) error
	UpdateMatchStatus(ctx context.Context, id uint64, status model.Status) (int64, error)
	DeleteMatch(ctx context.Context, id uint64) (int64, error)
}

type matchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

const matchRowSelect = `matches.*, event_rounds.medal_event_id AS medal_event_id, medal_events.olympics_id AS olympics_id,
medal_events.name AS event_name, medal_events.gender AS event_gender,
event_rounds.round_type AS round_type, event_rounds.round_number AS round_number, event_rounds.round_name AS round_name,
ca.name AS team_a_country_name, ca.code AS team_a_country_code,
cb.name AS team_b_country_name, cb.code AS team_b_country_code`

func (r *matchRepository) ListMatches(ctx context.Context, filter MatchFilter) ([]*MatchRow, error) {
	db := r.db.WithContext(ctx).
		Table("matches").
		Select(matchRowSelect).
		Joins("JOIN event_rounds ON event_rounds.id = matches.event_round_id").
		Joins("JOIN medal_events ON medal_events.id = event_rounds.medal_event_id").
		Joins("LEFT JOIN countries AS ca ON ca.id = matches.team_a_country_id").
		Joins("LEFT JOIN countries AS cb ON cb.id = matches.team_b_country_id")

	if filter.ID != nil {
		db = db.Where("matches.id = ?", *filter.ID)
	}
	if filter.EventRoundID != nil {
		db = db.Where("matches.event_round_id = ?", *filter.EventRoundID)
	}
	if filter.MedalEventID != nil {
		db = db.Where("event_rounds.medal_event_id = ?", *filter.MedalEventID)
	}
	if filter.OlympicsID != nil {
		db = db.Where("medal_events.olympics_id = ?", *filter.OlympicsID)
	}
	if filter.CountryID != nil {
		db = db.Where("matches.team_a_country_id = ? OR matches.team_b_country_id = ?", *filter.CountryID, *filter.CountryID)
	}

	var list []*MatchRow
	err := db.Order("CASE WHEN matches.start_time IS NULL THEN 1 ELSE 0 END ASC, matches.start_time ASC, matches.id ASC").
		Scan(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *matchRepository) GetMatch(ctx context.Context, id uint64) (*model.Match, error) {
	var m model.Match
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *matchRepository) CreateMatch(ctx context.Context, m *model.Match) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *matchRepository) UpdateMatch(ctx context.Context, m *model.Match) error {
	return r.db.WithContext(ctx).Model(&model.Match{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"event_round_id":    m.EventRoundID,
			"match_name":        m.MatchName,
			"team_a_country_id": m.TeamACountryID,
			"team_b_country_id": m.TeamBCountryID,
			"team_a_name":       m.TeamAName,
			"team_b_name":       m.TeamBName,
			"team_a_score":      m.TeamAScore,
			"team_b_score":      m.TeamBScore,
			"winner_country_id": m.WinnerCountryID,
			"start_time":        m.StartTime,
			"status":            m.Status,
			"notes":             m.Notes,
		}).Error
}

func (r *matchRepository) UpdateMatchStatus(ctx context.Context, id uint64, status model.Status) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Match{}).Where("id = ?", id).Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *matchRepository) DeleteMatch(ctx context.Context, id uint64) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Match{})
	return res.RowsAffected, res.Error
}
