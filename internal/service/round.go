package service

import (
	"context"
	"fmt"

	"OlympicsHub/internal/model"
	"OlympicsHub/internal/repository"

	"github.com/sirupsen/logrus"
)

// RoundRequest 新建/编辑轮次。缺省值见 roundDefaults
type RoundRequest struct {
	MedalEventID uint64  `json:"medal_event_id"`
	RoundType    string  `json:"round_type"`
	RoundNumber  *int    `json:"round_number"`
	RoundName    *string `json:"round_name"`
	StartTime    *string `json:"start_time_utc"`
	EndTime      *string `json:"end_time_utc"`
	Venue        *string `json:"venue"`
	Status       string  `json:"status"`
	Notes        *string `json:"notes"`
}

var roundDefaults = struct {
	RoundType   model.RoundType
	RoundNumber int
	Status      model.Status
}{
	RoundType:   model.RoundHeat,
	RoundNumber: 1,
	Status:      model.StatusScheduled,
}

// RoundResultRequest 无对阵轮次的一条成绩
type RoundResultRequest struct {
	EventRoundID  uint64  `json:"event_round_id"`
	CountryID     *uint64 `json:"country_id"`
	AthleteName   *string `json:"athlete_name"`
	ResultValue   *string `json:"result_value"`
	FinalPosition *int    `json:"final_position"`
	Notes         *string `json:"notes"`
}

// RoundFilter 轮次列表过滤
type RoundFilter struct {
	Scope        Scope
	MedalEventID *uint64
	Status       string
}

// RoundService 轮次调度、状态流转与轮次成绩
type RoundService struct {
	rounds    repository.RoundRepository
	events    repository.MedalEventRepository
	matches   repository.MatchRepository
	countries repository.CountryRepository
	schedule  *ScheduleService
	strict    bool
	logger    *logrus.Logger
}

func NewRoundService(
	rounds repository.RoundRepository,
	events repository.MedalEventRepository,
	matches repository.MatchRepository,
	countries repository.CountryRepository,
	schedule *ScheduleService,
	strictTransitions bool,
	logger *logrus.Logger,
) *RoundService {
	return &RoundService{
		rounds:    rounds,
		events:    events,
		matches:   matches,
		countries: countries,
		schedule:  schedule,
		strict:    strictTransitions,
		logger:    logger,
	}
}

// ListRounds 与赛程同一投影
func (s *RoundService) ListRounds(ctx context.Context, filter RoundFilter) ([]*ScheduleItem, error) {
	return s.schedule.Schedule(ctx, ScheduleQuery{
		Scope:        filter.Scope,
		MedalEventID: filter.MedalEventID,
		Status:       filter.Status,
	})
}

// GetRound 轮次 + 对阵 + 成绩
func (s *RoundService) GetRound(ctx context.Context, id uint64) (*RoundDetail, error) {
	r, err := s.rounds.GetRound(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "round", id)
	}
	rows, err := s.matches.ListMatches(ctx, repository.MatchFilter{EventRoundID: &id})
	if err != nil {
		return nil, fmt.Errorf("查询对阵失败: %w", err)
	}
	matches := make([]*MatchView, 0, len(rows))
	for _, row := range rows {
		matches = append(matches, newMatchView(row))
	}
	results, err := s.rounds.ListResults(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("查询轮次成绩失败: %w", err)
	}
	return &RoundDetail{EventRound: r, Label: r.Label(), Matches: matches, Results: results}, nil
}

func (s *RoundService) toModel(ctx context.Context, req RoundRequest) (*model.EventRound, error) {
	if _, err := requireMedalEvent(ctx, s.events, req.MedalEventID); err != nil {
		return nil, err
	}
	rt := roundDefaults.RoundType
	if req.RoundType != "" {
		rt = model.RoundType(req.RoundType)
	}
	if !rt.Valid() {
		return nil, invalid("round_type", "unknown round type %q", req.RoundType)
	}
	number := intOr(req.RoundNumber, roundDefaults.RoundNumber)
	if number < 1 {
		return nil, invalid("round_number", "must be at least 1")
	}
	status := roundDefaults.Status
	if req.Status != "" {
		st, err := parseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}
	start, err := parseInstant("start_time_utc", req.StartTime)
	if err != nil {
		return nil, err
	}
	if start == nil {
		return nil, invalid("start_time_utc", "is required")
	}
	end, err := parseInstant("end_time_utc", req.EndTime)
	if err != nil {
		return nil, err
	}
	if end != nil && end.Before(*start) {
		return nil, invalid("end_time_utc", "must not precede start_time_utc")
	}
	return &model.EventRound{
		MedalEventID: req.MedalEventID,
		RoundType:    rt,
		RoundNumber:  number,
		RoundName:    trimmed(req.RoundName),
		StartTime:    *start,
		EndTime:      end,
		Venue:        trimmed(req.Venue),
		Status:       status,
		Notes:        trimmed(req.Notes),
	}, nil
}

func (s *RoundService) CreateRound(ctx context.Context, req RoundRequest) (*RoundDetail, error) {
	r, err := s.toModel(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.rounds.CreateRound(ctx, r); err != nil {
		return nil, fmt.Errorf("创建轮次失败: %w", err)
	}
	return s.GetRound(ctx, r.ID)
}

func (s *RoundService) UpdateRound(ctx context.Context, id uint64, req RoundRequest) (*RoundDetail, error) {
	existing, err := s.rounds.GetRound(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "round", id)
	}
	if req.MedalEventID == 0 {
		req.MedalEventID = existing.MedalEventID
	}
	if req.Status == "" {
		req.Status = string(existing.Status)
	}
	if req.RoundType == "" {
		req.RoundType = string(existing.RoundType)
	}
	if req.RoundNumber == nil {
		n := existing.RoundNumber
		req.RoundNumber = &n
	}
	r, err := s.toModel(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(s.strict, "round", existing.Status, r.Status); err != nil {
		return nil, err
	}
	r.ID = id
	if err := s.rounds.UpdateRound(ctx, r); err != nil {
		return nil, fmt.Errorf("更新轮次失败: %w", err)
	}
	return s.GetRound(ctx, id)
}

// SetRoundStatus 运营手动切换状态；系统从不根据开始时间推断状态
func (s *RoundService) SetRoundStatus(ctx context.Context, id uint64, status string) (*RoundDetail, error) {
	existing, err := s.rounds.GetRound(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "round", id)
	}
	next, err := parseStatus(status)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(s.strict, "round", existing.Status, next); err != nil {
		return nil, err
	}
	if _, err := s.rounds.UpdateRoundStatus(ctx, id, next); err != nil {
		return nil, fmt.Errorf("更新轮次状态失败: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"round_id": id,
		"from":     existing.Status,
		"to":       next,
	}).Info("轮次状态已变更")
	return s.GetRound(ctx, id)
}

// DeleteRound 级联删除对阵与成绩
func (s *RoundService) DeleteRound(ctx context.Context, id uint64) error {
	affected, err := s.rounds.DeleteRound(ctx, id)
	if err != nil {
		return fmt.Errorf("删除轮次失败: %w", err)
	}
	if affected == 0 {
		return &NotFoundError{Entity: "round", ID: id}
	}
	return nil
}

func (s *RoundService) CountRounds(ctx context.Context, scope Scope) (int64, error) {
	if scope.Empty() {
		return 0, nil
	}
	return s.rounds.CountRounds(ctx, scope.Filter())
}

func (s *RoundService) ListResults(ctx context.Context, roundID uint64) ([]*model.RoundResult, error) {
	if _, err := s.rounds.GetRound(ctx, roundID); err != nil {
		return nil, notFoundOr(err, "round", roundID)
	}
	return s.rounds.ListResults(ctx, roundID)
}

func (s *RoundService) resultModel(ctx context.Context, req RoundResultRequest) (*model.RoundResult, error) {
	if req.EventRoundID == 0 {
		return nil, invalid("event_round_id", "is required")
	}
	if _, err := s.rounds.GetRound(ctx, req.EventRoundID); err != nil {
		return nil, notFoundOr(err, "round", req.EventRoundID)
	}
	athlete := trimmed(req.AthleteName)
	if req.CountryID == nil && athlete == nil {
		return nil, invalid("athlete_name", "a country or an athlete name is required")
	}
	if req.CountryID != nil {
		if _, err := s.countries.GetCountry(ctx, *req.CountryID); err != nil {
			return nil, notFoundOr(err, "country", *req.CountryID)
		}
	}
	if req.FinalPosition != nil && *req.FinalPosition < 1 {
		return nil, invalid("final_position", "must be at least 1")
	}
	return &model.RoundResult{
		EventRoundID:  req.EventRoundID,
		CountryID:     req.CountryID,
		AthleteName:   athlete,
		ResultValue:   trimmed(req.ResultValue),
		FinalPosition: req.FinalPosition,
		Notes:         trimmed(req.Notes),
	}, nil
}

func (s *RoundService) CreateResult(ctx context.Context, req RoundResultRequest) (*model.RoundResult, error) {
	res, err := s.resultModel(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.rounds.CreateResult(ctx, res); err != nil {
		return nil, fmt.Errorf("创建轮次成绩失败: %w", err)
	}
	return res, nil
}

func (s *RoundService) UpdateResult(ctx context.Context, id uint64, req RoundResultRequest) (*model.RoundResult, error) {
	existing, err := s.rounds.GetResult(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "round result", id)
	}
	req.EventRoundID = existing.EventRoundID
	res, err := s.resultModel(ctx, req)
	if err != nil {
		return nil, err
	}
	res.ID = id
	if err := s.rounds.UpdateResult(ctx, res); err != nil {
		return nil, fmt.Errorf("更新轮次成绩失败: %w", err)
	}
	return s.rounds.GetResult(ctx, id)
}

func (s *RoundService) DeleteResult(ctx context.Context, id uint64) error {
	affected, err := s.rounds.DeleteResult(ctx, id)
	if err != nil {
		return fmt.Errorf("删除轮次成绩失败: %w", err)
	}
	if affected == 0 {
		return &NotFoundError{Entity: "round result", ID: id}
	}
	return nil
}
