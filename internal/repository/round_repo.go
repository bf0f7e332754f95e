package repository

import (
	"context"

	"OlympicsHub/internal/model"

	"gorm.io/gorm"
)

// RoundRepository 轮次与无对阵成绩仓储
type RoundRepository interface {
	GetRound(ctx context.Context, id uint64) (*model.EventRound, error)
	ListRoundsByMedalEvent(ctx context.Context, medalEventID uint64) ([]*model.EventRound, error)
	CreateRound(ctx context.Context, r *model.EventRound) error
	UpdateRound(ctx context.Context, r *model.EventRound) error
	UpdateRoundStatus(ctx context.Context, id uint64, status model.Status) (int64, error)
	// DeleteRound 级联删除其对阵与成绩
	DeleteRound(ctx context.Context, id uint64) (int64, error)
	CountRounds(ctx context.Context, olympicsID *uint64) (int64, error)

	ListResults(ctx context.Context, roundID uint64) ([]*model.RoundResult, error)
	GetResult(ctx context.Context, id uint64) (*model.RoundResult, error)
	CreateResult(ctx context.Context, res *model.RoundResult) error
	UpdateResult(ctx context.Context, res *model.RoundResult) error
	DeleteResult(ctx context.Context, id uint64) (int64, error)
}

type roundRepository struct {
	db *gorm.DB
}

func NewRoundRepository(db *gorm.DB) RoundRepository {
	return &roundRepository{db: db}
}

func (r *roundRepository) GetRound(ctx context.Context, id uint64) (*model.EventRound, error) {
	var round model.EventRound
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&round).Error; err != nil {
		return nil, err
	}
	return &round, nil
}

func (r *roundRepository) ListRoundsByMedalEvent(ctx context.Context, medalEventID uint64) ([]*model.EventRound, error) {
	var list []*model.EventRound
	err := r.db.WithContext(ctx).
		Where("medal_event_id = ?", medalEventID).
		Order("start_time ASC, round_number ASC, id ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *roundRepository) CreateRound(ctx context.Context, round *model.EventRound) error {
	return r.db.WithContext(ctx).Create(round).Error
}

func (r *roundRepository) UpdateRound(ctx context.Context, round *model.EventRound) error {
	return r.db.WithContext(ctx).Model(&model.EventRound{}).
		Where("id = ?", round.ID).
		Updates(map[string]interface{}{
			"medal_event_id": round.MedalEventID,
			"round_type":     round.RoundType,
			"round_number":   round.RoundNumber,
			"round_name":     round.RoundName,
			"start_time":     round.StartTime,
			"end_time":       round.EndTime,
			"venue":          round.Venue,
			"status":         round.Status,
			"notes":          round.Notes,
		}).Error
}

func (r *roundRepository) UpdateRoundStatus(ctx context.Context, id uint64, status model.Status) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.EventRound{}).Where("id = ?", id).Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *roundRepository) DeleteRound(ctx context.Context, id uint64) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := cascadeDeleteRounds(tx, []uint64{id})
		affected = n
		return err
	})
	return affected, err
}

func (r *roundRepository) CountRounds(ctx context.Context, olympicsID *uint64) (int64, error) {
	db := r.db.WithContext(ctx).Model(&model.EventRound{})
	if olympicsID != nil {
		db = db.Joins("JOIN medal_events ON medal_events.id = event_rounds.medal_event_id").
			Where("medal_events.olympics_id = ?", *olympicsID)
	}
	var n int64
	err := db.Count(&n).Error
	return n, err
}

// ListResults 按最终名次升序，未定名次的排在最后
func (r *roundRepository) ListResults(ctx context.Context, roundID uint64) ([]*model.RoundResult, error) {
	var list []*model.RoundResult
	err := r.db.WithContext(ctx).
		Where("event_round_id = ?", roundID).
		Order("CASE WHEN final_position IS NULL THEN 1 ELSE 0 END ASC, final_position ASC, id ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *roundRepository) GetResult(ctx context.Context, id uint64) (*model.RoundResult, error) {
	var res model.RoundResult
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&res).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *roundRepository) CreateResult(ctx context.Context, res *model.RoundResult) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *roundRepository) UpdateResult(ctx context.Context, res *model.RoundResult) error {
	return r.db.WithContext(ctx).Model(&model.RoundResult{}).
		Where("id = ?", res.ID).
		Updates(map[string]interface{}{
			"country_id":     res.CountryID,
			"athlete_name":   res.AthleteName,
			"result_value":   res.ResultValue,
			"final_position": res.FinalPosition,
			"notes":          res.Notes,
		}).Error
}

func (r *roundRepository) DeleteResult(ctx context.Context, id uint64) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.RoundResult{})
	return res.RowsAffected, res.Error
}
