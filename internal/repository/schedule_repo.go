package repository

import (
	"context"
	"time"

	"OlympicsHub/internal/model"

	"gorm.io/gorm"
)

// ScheduleFilter 赛程过滤条件，各条件之间为 AND
type ScheduleFilter struct {
	OlympicsID   *uint64
	SportID      *uint64
	MedalEventID *uint64
	Status       model.Status
	// [From, To) 均为 UTC
	From  *time.Time
	To    *time.Time
	Limit int
}

// ScheduleRow 轮次 ⋈ 小项 ⋈ 大项 的扁平行
type ScheduleRow struct {
	RoundID      uint64          `gorm:"column:round_id"`
	MedalEventID uint64          `gorm:"column:medal_event_id"`
	OlympicsID   uint64          `gorm:"column:olympics_id"`
	SportID      *uint64         `gorm:"column:sport_id"`
	SportName    *string         `gorm:"column:sport_name"`
	SportIcon    *string         `gorm:"column:sport_icon"`
	EventName    string          `gorm:"column:event_name"`
	EventGender  *model.Gender   `gorm:"column:event_gender"`
	EventType    model.EventType `gorm:"column:event_type"`
	EventVenue   *string         `gorm:"column:event_venue"`
	RoundType    model.RoundType `gorm:"column:round_type"`
	RoundNumber  int             `gorm:"column:round_number"`
	RoundName    *string         `gorm:"column:round_name"`
	StartTime    time.Time       `gorm:"column:start_time"`
	EndTime      *time.Time      `gorm:"column:end_time"`
	RoundVenue   *string         `gorm:"column:round_venue"`
	Status       model.Status    `gorm:"column:status"`
	Notes        *string         `gorm:"column:notes"`
}

// ScheduleRepository 赛程查询（只读投影）
type ScheduleRepository interface {
	ListSchedule(ctx context.Context, filter ScheduleFilter) ([]*ScheduleRow, error)
}

type scheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

const scheduleSelect = `r.id AS round_id, r.medal_event_id AS medal_event_id, e.olympics_id AS olympics_id,
e.sport_id AS sport_id, s.name AS sport_name, s.icon AS sport_icon,
e.name AS event_name, e.gender AS event_gender, e.event_type AS event_type, e.venue AS event_venue,
r.round_type AS round_type, r.round_number AS round_number, r.round_name AS round_name,
r.start_time AS start_time, r.end_time AS end_time, r.venue AS round_venue, r.status AS status, r.notes AS notes`

// ListSchedule 按开始时间、大项名、小项名排序
func (r *scheduleRepository) ListSchedule(ctx context.Context, filter ScheduleFilter) ([]*ScheduleRow, error) {
	db := r.db.WithContext(ctx).
		Table("event_rounds AS r").
		Select(scheduleSelect).
		Joins("JOIN medal_events AS e ON e.id = r.medal_event_id").
		Joins("LEFT JOIN sports AS s ON s.id = e.sport_id")

	if filter.OlympicsID != nil {
		db = db.Where("e.olympics_id = ?", *filter.OlympicsID)
	}
	if filter.SportID != nil {
		db = db.Where("e.sport_id = ?", *filter.SportID)
	}
	if filter.MedalEventID != nil {
		db = db.Where("r.medal_event_id = ?", *filter.MedalEventID)
	}
	if filter.Status != "" {
		db = db.Where("r.status = ?", filter.Status)
	}
	if filter.From != nil {
		db = db.Where("r.start_time >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		db = db.Where("r.start_time < ?", filter.To.UTC())
	}
	if filter.Limit > 0 {
		db = db.Limit(filter.Limit)
	}

	var list []*ScheduleRow
	err := db.Order("r.start_time ASC, COALESCE(s.name, '') ASC, e.name ASC, r.id ASC").Scan(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
