package service

import (
	"context"
	"fmt"

	"OlympicsHub/internal/model"
	"OlympicsHub/internal/repository"

	"github.com/sirupsen/logrus"
)

// MatchView 对阵 + 展示名
type MatchView struct {
	*repository.MatchRow
	TeamADisplay string `json:"team_a_display"`
	TeamBDisplay string `json:"team_b_display"`
	RoundLabel   string `json:"round_label"`
	EventDisplay string `json:"event_display_name"`
}

func newMatchView(row *repository.MatchRow) *MatchView {
	return &MatchView{
		MatchRow:     row,
		TeamADisplay: model.SideName(countryRef(row.TeamACountryName, row.TeamACountryCode), row.TeamAName),
		TeamBDisplay: model.SideName(countryRef(row.TeamBCountryName, row.TeamBCountryCode), row.TeamBName),
		RoundLabel:   model.RoundLabel(row.RoundName, row.RoundType, row.RoundNumber),
		EventDisplay: model.EventDisplayName(row.EventGender, row.EventName),
	}
}

func countryRef(name, code *string) *model.Country {
	if name == nil {
		return nil
	}
	c := &model.Country{Name: *name}
	if code != nil {
		c.Code = *code
	}
	return c
}

// MatchRequest 新建/编辑对阵。缺省值：status → scheduled
type MatchRequest struct {
	EventRoundID    uint64  `json:"event_round_id"`
	MatchName       *string `json:"match_name"`
	TeamACountryID  *uint64 `json:"team_a_country_id"`
	TeamBCountryID  *uint64 `json:"team_b_country_id"`
	TeamAName       *string `json:"team_a_name"`
	TeamBName       *string `json:"team_b_name"`
	TeamAScore      *string `json:"team_a_score"`
	TeamBScore      *string `json:"team_b_score"`
	WinnerCountryID *uint64 `json:"winner_country_id"`
	StartTime       *string `json:"start_time_utc"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes"`
}

// MatchFilter 列表过滤
type MatchFilter struct {
	Scope        Scope
	EventRoundID *uint64
	MedalEventID *uint64
	CountryID    *uint64
}

// MatchService 对阵记录
type MatchService struct {
	matches   repository.MatchRepository
	rounds    repository.RoundRepository
	countries repository.CountryRepository
	strict    bool
	logger    *logrus.Logger
}

func NewMatchService(matches repository.MatchRepository, rounds repository.RoundRepository, countries repository.CountryRepository, strictTransitions bool, logger *logrus.Logger) *MatchService {
	return &MatchService{matches: matches, rounds: rounds, countries: countries, strict: strictTransitions, logger: logger}
}

func (s *MatchService) ListMatches(ctx context.Context, filter MatchFilter) ([]*MatchView, error) {
	if filter.Scope.Empty() {
		return []*MatchView{}, nil
	}
	rows, err := s.matches.ListMatches(ctx, repository.MatchFilter{
		EventRoundID: filter.EventRoundID,
		MedalEventID: filter.MedalEventID,
		OlympicsID:   filter.Scope.Filter(),
		CountryID:    filter.CountryID,
	})
	if err != nil {
		return nil, fmt.Errorf("查询对阵失败: %w", err)
	}
	views := make([]*MatchView, 0, len(rows))
	for _, row := range rows {
		views = append(views, newMatchView(row))
	}
	return views, nil
}

func (s *MatchService) GetMatch(ctx context.Context, id uint64) (*MatchView, error) {
	rows, err := s.matches.ListMatches(ctx, repository.MatchFilter{ID: &id})
	if err != nil {
		return nil, fmt.Errorf("查询对阵失败: %w", err)
	}
	if len(rows) == 0 {
		return nil, &NotFoundError{Entity: "match", ID: id}
	}
	return newMatchView(rows[0]), nil
}

func (s *MatchService) toModel(ctx context.Context, req MatchRequest) (*model.Match, error) {
	if req.EventRoundID == 0 {
		return nil, invalid("event_round_id", "is required")
	}
	if _, err := s.rounds.GetRound(ctx, req.EventRoundID); err != nil {
		return nil, notFoundOr(err, "round", req.EventRoundID)
	}
	m := &model.Match{
		EventRoundID:    req.EventRoundID,
		MatchName:       trimmed(req.MatchName),
		TeamACountryID:  req.TeamACountryID,
		TeamBCountryID:  req.TeamBCountryID,
		TeamAName:       trimmed(req.TeamAName),
		TeamBName:       trimmed(req.TeamBName),
		TeamAScore:      trimmed(req.TeamAScore),
		TeamBScore:      trimmed(req.TeamBScore),
		WinnerCountryID: req.WinnerCountryID,
		Notes:           trimmed(req.Notes),
	}
	if m.TeamACountryID == nil && m.TeamAName == nil {
		return nil, invalid("team_a", "needs a country or a team name")
	}
	if m.TeamBCountryID == nil && m.TeamBName == nil {
		return nil, invalid("team_b", "needs a country or a team name")
	}
	for _, cid := range []*uint64{m.TeamACountryID, m.TeamBCountryID} {
		if cid == nil {
			continue
		}
		if _, err := s.countries.GetCountry(ctx, *cid); err != nil {
			return nil, notFoundOr(err, "country", *cid)
		}
	}
	if m.WinnerCountryID != nil && !m.Involves(*m.WinnerCountryID) {
		return nil, invalid("winner_country_id", "must be one of the two sides")
	}

	start, err := parseInstant("start_time_utc", req.StartTime)
	if err != nil {
		return nil, err
	}
	m.StartTime = start
	m.Status = model.StatusScheduled
	if req.Status != "" {
		m.Status = model.Status(req.Status)
	}
	if !m.Status.Valid() {
		return nil, invalid("status", "must be one of scheduled, delayed, live, completed, cancelled")
	}
	return m, nil
}

func (s *MatchService) CreateMatch(ctx context.Context, req MatchRequest) (*MatchView, error) {
	m, err := s.toModel(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.matches.CreateMatch(ctx, m); err != nil {
		return nil, fmt.Errorf("创建对阵失败: %w", err)
	}
	return s.GetMatch(ctx, m.ID)
}

func (s *MatchService) UpdateMatch(ctx context.Context, id uint64, req MatchRequest) (*MatchView, error) {
	existing, err := s.matches.GetMatch(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "match", id)
	}
	if req.EventRoundID == 0 {
		req.EventRoundID = existing.EventRoundID
	}
	if req.Status == "" {
		req.Status = string(existing.Status)
	}
	m, err := s.toModel(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(s.strict, "match", existing.Status, m.Status); err != nil {
		return nil, err
	}
	m.ID = id
	if err := s.matches.UpdateMatch(ctx, m); err != nil {
		return nil, fmt.Errorf("更新对阵失败: %w", err)
	}
	return s.GetMatch(ctx, id)
}

func (s *MatchService) SetMatchStatus(ctx context.Context, id uint64, status string) (*MatchView, error) {
	existing, err := s.matches.GetMatch(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "match", id)
	}
	next, err := parseStatus(status)
	if err != nil {
		return nil, err
	}
	if err := checkTransition(s.strict, "match", existing.Status, next); err != nil {
		return nil, err
	}
	if _, err := s.matches.UpdateMatchStatus(ctx, id, next); err != nil {
		return nil, fmt.Errorf("更新对阵状态失败: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"match_id": id,
		"from":     existing.Status,
		"to":       next,
	}).Info("对阵状态已变更")
	return s.GetMatch(ctx, id)
}

func (s *MatchService) DeleteMatch(ctx context.Context, id uint64) error {
	affected, err := s.matches.DeleteMatch(ctx, id)
	if err != nil {
		return fmt.Errorf("删除对阵失败: %w", err)
	}
	if affected == 0 {
		return &NotFoundError{Entity: "match", ID: id}
	}
	return nil
}

func parseStatus(raw string) (model.Status, error) {
	st := model.Status(raw)
	if !st.Valid() {
		return "", invalid("status", "must be one of scheduled, delayed, live, completed, cancelled")
	}
	return st, nil
}

// checkTransition strict=false 时任意合法状态之间都可切换
func checkTransition(strict bool, entity string, from, to model.Status) error {
	if !strict || model.CanTransition(from, to) {
		return nil
	}
	return conflict("%s status cannot change from %s to %s", entity, from, to)
}
