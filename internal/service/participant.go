package service

import (
	"context"
	"fmt"

	"OlympicsHub/internal/repository"

	"github.com/sirupsen/logrus"
)

// ParticipantRequest 单个报名
type ParticipantRequest struct {
	MedalEventID uint64 `json:"medal_event_id"`
	CountryID    uint64 `json:"country_id"`
}

// ParticipantSetRequest 整体替换某小项的报名国家
type ParticipantSetRequest struct {
	CountryIDs []uint64 `json:"country_ids"`
}

// ParticipantFilter 报名列表过滤
type ParticipantFilter struct {
	Scope        Scope
	MedalEventID *uint64
	CountryID    *uint64
}

// ParticipantService 小项报名（无对阵时用于展示参赛国）
type ParticipantService struct {
	entrants  repository.ParticipantRepository
	events    repository.MedalEventRepository
	countries repository.CountryRepository
	logger    *logrus.Logger
}

func NewParticipantService(entrants repository.ParticipantRepository, events repository.MedalEventRepository, countries repository.CountryRepository, logger *logrus.Logger) *ParticipantService {
	return &ParticipantService{entrants: entrants, events: events, countries: countries, logger: logger}
}

func (s *ParticipantService) ListParticipants(ctx context.Context, filter ParticipantFilter) ([]*repository.ParticipantRow, error) {
	if filter.Scope.Empty() {
		return []*repository.ParticipantRow{}, nil
	}
	rows, err := s.entrants.ListParticipants(ctx, repository.ParticipantFilter{
		MedalEventID: filter.MedalEventID,
		CountryID:    filter.CountryID,
		OlympicsID:   filter.Scope.Filter(),
	})
	if err != nil {
		return nil, fmt.Errorf("查询报名失败: %w", err)
	}
	return rows, nil
}

// ListForEvent 单个小项的报名（小项须存在）
func (s *ParticipantService) ListForEvent(ctx context.Context, medalEventID uint64) ([]*repository.ParticipantRow, error) {
	if _, err := requireMedalEvent(ctx, s.events, medalEventID); err != nil {
		return nil, err
	}
	return s.ListParticipants(ctx, ParticipantFilter{Scope: GlobalScope, MedalEventID: &medalEventID})
}

// checkCountries 去重并校验国家都存在
func (s *ParticipantService) checkCountries(ctx context.Context, ids []uint64) ([]uint64, error) {
	seen := make(map[uint64]bool, len(ids))
	unique := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			return nil, invalid("country_ids", "must not contain 0")
		}
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	found, err := s.countries.GetCountriesByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(found) != len(unique) {
		known := make(map[uint64]bool, len(found))
		for _, c := range found {
			known[c.ID] = true
		}
		for _, id := range unique {
			if !known[id] {
				return nil, &NotFoundError{Entity: "country", ID: id}
			}
		}
	}
	return unique, nil
}

// AddParticipant 已报名时静默成功
func (s *ParticipantService) AddParticipant(ctx context.Context, req ParticipantRequest) error {
	if _, err := requireMedalEvent(ctx, s.events, req.MedalEventID); err != nil {
		return err
	}
	if req.CountryID == 0 {
		return invalid("country_id", "is required")
	}
	ids, err := s.checkCountries(ctx, []uint64{req.CountryID})
	if err != nil {
		return err
	}
	if err := s.entrants.AddParticipants(ctx, req.MedalEventID, ids); err != nil {
		return fmt.Errorf("添加报名失败: %w", err)
	}
	return nil
}

// SetParticipants 一个事务内整体替换
func (s *ParticipantService) SetParticipants(ctx context.Context, medalEventID uint64, req ParticipantSetRequest) ([]*repository.ParticipantRow, error) {
	if _, err := requireMedalEvent(ctx, s.events, medalEventID); err != nil {
		return nil, err
	}
	ids, err := s.checkCountries(ctx, req.CountryIDs)
	if err != nil {
		return nil, err
	}
	if err := s.entrants.ReplaceParticipants(ctx, medalEventID, ids); err != nil {
		return nil, fmt.Errorf("替换报名失败: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"medal_event_id": medalEventID,
		"countries":      len(ids),
	}).Info("小项报名已更新")
	return s.ListForEvent(ctx, medalEventID)
}

func (s *ParticipantService) RemoveParticipant(ctx context.Context, id uint64) error {
	affected, err := s.entrants.DeleteParticipant(ctx, id)
	if err != nil {
		return fmt.Errorf("删除报名失败: %w", err)
	}
	if affected == 0 {
		return &NotFoundError{Entity: "participant", ID: id}
	}
	return nil
}
