package repository

import (
	"context"
	"strings"

	"OlympicsHub/internal/model"

	"gorm.io/gorm"
)

// MedalEventFilter 小项列表过滤条件；字段为空表示不过滤
type MedalEventFilter struct {
	OlympicsID *uint64
	SportID    *uint64
	Gender     string
	Query      string // 小项名或大项名模糊匹配（不区分大小写）
}

// MedalEventRow 小项 + 大项信息 + 已颁奖牌数
type MedalEventRow struct {
	model.MedalEvent `gorm:"embedded"`
	SportName        *string `gorm:"column:sport_name" json:"sport_name"`
	SportIcon        *string `gorm:"column:sport_icon" json:"sport_icon"`
	MedalCount       int64   `gorm:"column:medal_count" json:"medal_count"`
}

// MedalEventRepository 小项仓储
type MedalEventRepository interface {
	ListMedalEvents(ctx context.Context, filter MedalEventFilter) ([]*MedalEventRow, error)
	GetMedalEvent(ctx context.Context, id uint64) (*model.MedalEvent, error)
	GetMedalEventRow(ctx context.Context, id uint64) (*MedalEventRow, error)
	CreateMedalEvent(ctx context.Context, e *model.MedalEvent) error
	UpdateMedalEvent(ctx context.Context, e *model.MedalEvent) error
	// DeleteMedalEvent 级联删除轮次、对阵、成绩、报名与奖牌
	DeleteMedalEvent(ctx context.Context, id uint64) (int64, error)
	CountMedalEvents(ctx context.Context, olympicsID *uint64) (int64, error)
}

type medalEventRepository struct {
	db *gorm.DB
}

func NewMedalEventRepository(db *gorm.DB) MedalEventRepository {
	return &medalEventRepository{db: db}
}

const medalEventRowSelect = `medal_events.*, sports.name AS sport_name, sports.icon AS sport_icon,
(SELECT COUNT(*) FROM medals WHERE medals.medal_event_id = medal_events.id) AS medal_count`

func (r *medalEventRepository) rowQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("medal_events").
		Select(medalEventRowSelect).
		Joins("LEFT JOIN sports ON sports.id = medal_events.sport_id")
}

func (r *medalEventRepository) ListMedalEvents(ctx context.Context, filter MedalEventFilter) ([]*MedalEventRow, error) {
	db := r.rowQuery(ctx)
	if filter.OlympicsID != nil {
		db = db.Where("medal_events.olympics_id = ?", *filter.OlympicsID)
	}
	if filter.SportID != nil {
		db = db.Where("medal_events.sport_id = ?", *filter.SportID)
	}
	if filter.Gender != "" {
		db = db.Where("medal_events.gender = ?", filter.Gender)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		db = db.Where("LOWER(medal_events.name) LIKE ? OR LOWER(COALESCE(sports.name, '')) LIKE ?", like, like)
	}

	var list []*MedalEventRow
	err := db.Order("COALESCE(sports.name, '') ASC, medal_events.name ASC, medal_events.id ASC").
		Scan(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *medalEventRepository) GetMedalEvent(ctx context.Context, id uint64) (*model.MedalEvent, error) {
	var e model.MedalEvent
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *medalEventRepository) GetMedalEventRow(ctx context.Context, id uint64) (*MedalEventRow, error) {
	var list []*MedalEventRow
	if err := r.rowQuery(ctx).Where("medal_events.id = ?", id).Limit(1).Scan(&list).Error; err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return list[0], nil
}

func (r *medalEventRepository) CreateMedalEvent(ctx context.Context, e *model.MedalEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *medalEventRepository) UpdateMedalEvent(ctx context.Context, e *model.MedalEvent) error {
	return r.db.WithContext(ctx).Model(&model.MedalEvent{}).
		Where("id = ?", e.ID).
		Updates(map[string]interface{}{
			"olympics_id": e.OlympicsID,
			"sport_id":    e.SportID,
			"name":        e.Name,
			"gender":      e.Gender,
			"event_type":  e.EventType,
			"venue":       e.Venue,
			"event_date":  e.EventDate,
		}).Error
}

func (r *medalEventRepository) DeleteMedalEvent(ctx context.Context, id uint64) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&model.MedalEvent{}).Where("id = ?", id).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return nil
		}
		affected = exists
		return cascadeDeleteMedalEvents(tx, []uint64{id})
	})
	return affected, err
}

func (r *medalEventRepository) CountMedalEvents(ctx context.Context, olympicsID *uint64) (int64, error) {
	db := r.db.WithContext(ctx).Model(&model.MedalEvent{})
	if olympicsID != nil {
		db = db.Where("olympics_id = ?", *olympicsID)
	}
	var n int64
	err := db.Count(&n).Error
	return n, err
}

// cascadeDeleteMedalEvents 在调用方事务内删除小项及其全部下属数据
func cascadeDeleteMedalEvents(tx *gorm.DB, eventIDs []uint64) error {
	if len(eventIDs) == 0 {
		return nil
	}
	var roundIDs []uint64
	if err := tx.Model(&model.EventRound{}).Where("medal_event_id IN ?", eventIDs).Pluck("id", &roundIDs).Error; err != nil {
		return err
	}
	if _, err := cascadeDeleteRounds(tx, roundIDs); err != nil {
		return err
	}
	if err := tx.Where("medal_event_id IN ?", eventIDs).Delete(&model.Medal{}).Error; err != nil {
		return err
	}
	if err := tx.Where("medal_event_id IN ?", eventIDs).Delete(&model.EventParticipant{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", eventIDs).Delete(&model.MedalEvent{}).Error
}

// cascadeDeleteRounds 在调用方事务内删除轮次及其对阵、成绩
func cascadeDeleteRounds(tx *gorm.DB, roundIDs []uint64) (int64, error) {
	if len(roundIDs) == 0 {
		return 0, nil
	}
	if err := tx.Where("event_round_id IN ?", roundIDs).Delete(&model.Match{}).Error; err != nil {
		return 0, err
	}
	if err := tx.Where("event_round_id IN ?", roundIDs).Delete(&model.RoundResult{}).Error; err != nil {
		return 0, err
	}
	res := tx.Where("id IN ?", roundIDs).Delete(&model.EventRound{})
	return res.RowsAffected, res.Error
}
