package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"OlympicsHub/internal/model"
	"OlympicsHub/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// 小项进度（界面约定：满 3 枚奖牌视为完赛）
const (
	ProgressUpcoming   = "upcoming"
	ProgressInProgress = "in_progress"
	ProgressCompleted  = "completed"
)

// EventProgress 按已颁奖牌数推断小项进度
func EventProgress(medalCount int64) string {
	switch {
	case medalCount >= model.MedalsPerCompleteEvent:
		return ProgressCompleted
	case medalCount > 0:
		return ProgressInProgress
	default:
		return ProgressUpcoming
	}
}

// MedalEventView 列表/详情中的小项
type MedalEventView struct {
	*repository.MedalEventRow
	DisplayName string `json:"display_name"`
	Progress    string `json:"progress"`
}

func newMedalEventView(row *repository.MedalEventRow) *MedalEventView {
	return &MedalEventView{
		MedalEventRow: row,
		DisplayName:   row.MedalEvent.DisplayName(),
		Progress:      EventProgress(row.MedalCount),
	}
}

// RoundDetail 详情页中的一个轮次
type RoundDetail struct {
	*model.EventRound
	Label   string               `json:"label"`
	Matches []*MatchView         `json:"matches"`
	Results []*model.RoundResult `json:"results"`
}

// PhaseGroup 同一赛事阶段的轮次
type PhaseGroup struct {
	RoundType model.RoundType `json:"round_type"`
	Label     string          `json:"label"`
	Rounds    []*RoundDetail  `json:"rounds"`
}

// MedalEventDetail 小项详情
type MedalEventDetail struct {
	Event        *MedalEventView              `json:"event"`
	Phases       []*PhaseGroup                `json:"phases"`
	Medals       []*repository.MedalRow       `json:"medals"`
	Participants []*repository.ParticipantRow `json:"participants"`
}

// MedalEventRequest 新建/编辑小项。缺省值：olympics_id → 当前届，event_type → individual
type MedalEventRequest struct {
	OlympicsID uint64  `json:"olympics_id"`
	SportID    *uint64 `json:"sport_id"`
	Name       string  `json:"name"`
	Gender     *string `json:"gender"`
	EventType  string  `json:"event_type"`
	Venue      *string `json:"venue"`
	EventDate  *string `json:"event_date"`
}

// MedalEventFilter 列表过滤
type MedalEventFilter struct {
	Scope   Scope
	SportID *uint64
	Gender  string
	Query   string
}

// MedalEventService 小项目录
type MedalEventService struct {
	events   repository.MedalEventRepository
	sports   repository.SportRepository
	rounds   repository.RoundRepository
	matches  repository.MatchRepository
	medals   repository.MedalRepository
	entrants repository.ParticipantRepository
	olympics *OlympicsService
	logger   *logrus.Logger
}

func NewMedalEventService(
	events repository.MedalEventRepository,
	sports repository.SportRepository,
	rounds repository.RoundRepository,
	matches repository.MatchRepository,
	medals repository.MedalRepository,
	entrants repository.ParticipantRepository,
	olympics *OlympicsService,
	logger *logrus.Logger,
) *MedalEventService {
	return &MedalEventService{
		events:   events,
		sports:   sports,
		rounds:   rounds,
		matches:  matches,
		medals:   medals,
		entrants: entrants,
		olympics: olympics,
		logger:   logger,
	}
}

func (s *MedalEventService) ListMedalEvents(ctx context.Context, filter MedalEventFilter) ([]*MedalEventView, error) {
	if filter.Scope.Empty() {
		return []*MedalEventView{}, nil
	}
	if filter.Gender != "" && !model.Gender(filter.Gender).Valid() {
		return nil, invalid("gender", "must be one of men, women, mixed")
	}
	rows, err := s.events.ListMedalEvents(ctx, repository.MedalEventFilter{
		OlympicsID: filter.Scope.Filter(),
		SportID:    filter.SportID,
		Gender:     filter.Gender,
		Query:      filter.Query,
	})
	if err != nil {
		return nil, fmt.Errorf("查询小项失败: %w", err)
	}
	views := make([]*MedalEventView, 0, len(rows))
	for _, row := range rows {
		views = append(views, newMedalEventView(row))
	}
	return views, nil
}

func (s *MedalEventService) GetMedalEvent(ctx context.Context, id uint64) (*MedalEventView, error) {
	row, err := s.events.GetMedalEventRow(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "medal event", id)
	}
	return newMedalEventView(row), nil
}

// GetMedalEventDetail 小项 + 按阶段分组的轮次（含对阵与成绩）+ 奖牌 + 报名
func (s *MedalEventService) GetMedalEventDetail(ctx context.Context, id uint64) (*MedalEventDetail, error) {
	event, err := s.GetMedalEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	rounds, err := s.rounds.ListRoundsByMedalEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("查询轮次失败: %w", err)
	}
	matchRows, err := s.matches.ListMatches(ctx, repository.MatchFilter{MedalEventID: &id})
	if err != nil {
		return nil, fmt.Errorf("查询对阵失败: %w", err)
	}
	byRound := make(map[uint64][]*MatchView)
	for _, m := range matchRows {
		byRound[m.EventRoundID] = append(byRound[m.EventRoundID], newMatchView(m))
	}

	details := make([]*RoundDetail, 0, len(rounds))
	for _, r := range rounds {
		results, err := s.rounds.ListResults(ctx, r.ID)
		if err != nil {
			return nil, fmt.Errorf("查询轮次成绩失败: %w", err)
		}
		matches := byRound[r.ID]
		if matches == nil {
			matches = []*MatchView{}
		}
		details = append(details, &RoundDetail{EventRound: r, Label: r.Label(), Matches: matches, Results: results})
	}

	medals, err := s.medals.ListMedals(ctx, repository.MedalFilter{MedalEventID: &id})
	if err != nil {
		return nil, fmt.Errorf("查询奖牌失败: %w", err)
	}
	participants, err := s.entrants.ListParticipants(ctx, repository.ParticipantFilter{MedalEventID: &id})
	if err != nil {
		return nil, fmt.Errorf("查询报名失败: %w", err)
	}
	return &MedalEventDetail{
		Event:        event,
		Phases:       GroupByPhase(details),
		Medals:       medals,
		Participants: participants,
	}, nil
}

// GroupByPhase 按赛事阶段顺序分组；阶段内按 round_number、开始时间排序
func GroupByPhase(rounds []*RoundDetail) []*PhaseGroup {
	sorted := make([]*RoundDetail, len(rounds))
	copy(sorted, rounds)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if pa, pb := a.RoundType.Phase(), b.RoundType.Phase(); pa != pb {
			return pa < pb
		}
		if a.RoundType != b.RoundType {
			return a.RoundType < b.RoundType
		}
		if a.RoundNumber != b.RoundNumber {
			return a.RoundNumber < b.RoundNumber
		}
		return a.StartTime.Before(b.StartTime)
	})

	groups := []*PhaseGroup{}
	for _, r := range sorted {
		if n := len(groups); n > 0 && groups[n-1].RoundType == r.RoundType {
			groups[n-1].Rounds = append(groups[n-1].Rounds, r)
			continue
		}
		groups = append(groups, &PhaseGroup{RoundType: r.RoundType, Label: r.RoundType.Label(), Rounds: []*RoundDetail{r}})
	}
	return groups
}

func (s *MedalEventService) toModel(ctx context.Context, req MedalEventRequest) (*model.MedalEvent, error) {
	name, err := required("name", req.Name)
	if err != nil {
		return nil, err
	}
	olympicsID := req.OlympicsID
	if olympicsID == 0 {
		active, err := s.olympics.ResolveActive(ctx, nil)
		if err != nil {
			return nil, err
		}
		if active == nil {
			return nil, invalid("olympics_id", "is required when no olympics is active")
		}
		olympicsID = *active
	} else if _, err := s.olympics.GetOlympics(ctx, olympicsID); err != nil {
		return nil, err
	}
	if req.SportID != nil {
		if _, err := s.sports.GetSport(ctx, *req.SportID); err != nil {
			return nil, notFoundOr(err, "sport", *req.SportID)
		}
	}

	var gender *model.Gender
	if g := trimmed(req.Gender); g != nil {
		v := model.Gender(*g)
		if !v.Valid() {
			return nil, invalid("gender", "must be one of men, women, mixed")
		}
		gender = &v
	}
	eventType := model.EventIndividual
	if req.EventType != "" {
		eventType = model.EventType(req.EventType)
	}
	if !eventType.Valid() {
		return nil, invalid("event_type", "must be one of individual, team")
	}
	date, err := parseDay("event_date", req.EventDate)
	if err != nil {
		return nil, err
	}
	return &model.MedalEvent{
		OlympicsID: olympicsID,
		SportID:    req.SportID,
		Name:       name,
		Gender:     gender,
		EventType:  eventType,
		Venue:      trimmed(req.Venue),
		EventDate:  toDate(date),
	}, nil
}

func (s *MedalEventService) CreateMedalEvent(ctx context.Context, req MedalEventRequest) (*MedalEventView, error) {
	e, err := s.toModel(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.events.CreateMedalEvent(ctx, e); err != nil {
		return nil, fmt.Errorf("创建小项失败: %w", err)
	}
	return s.GetMedalEvent(ctx, e.ID)
}

func (s *MedalEventService) UpdateMedalEvent(ctx context.Context, id uint64, req MedalEventRequest) (*MedalEventView, error) {
	existing, err := s.events.GetMedalEvent(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "medal event", id)
	}
	if req.OlympicsID == 0 {
		req.OlympicsID = existing.OlympicsID
	}
	e, err := s.toModel(ctx, req)
	if err != nil {
		return nil, err
	}
	e.ID = id
	if err := s.events.UpdateMedalEvent(ctx, e); err != nil {
		return nil, fmt.Errorf("更新小项失败: %w", err)
	}
	return s.GetMedalEvent(ctx, id)
}

// DeleteMedalEvent 级联删除轮次、对阵、成绩、报名与奖牌
func (s *MedalEventService) DeleteMedalEvent(ctx context.Context, id uint64) error {
	affected, err := s.events.DeleteMedalEvent(ctx, id)
	if err != nil {
		return fmt.Errorf("删除小项失败: %w", err)
	}
	if affected == 0 {
		return &NotFoundError{Entity: "medal event", ID: id}
	}
	s.logger.WithField("medal_event_id", id).Info("小项及其下属数据已删除")
	return nil
}

// CountMedalEvents 空范围返回 0
func (s *MedalEventService) CountMedalEvents(ctx context.Context, scope Scope) (int64, error) {
	if scope.Empty() {
		return 0, nil
	}
	return s.events.CountMedalEvents(ctx, scope.Filter())
}

// requireMedalEvent 校验小项存在
func requireMedalEvent(ctx context.Context, events repository.MedalEventRepository, id uint64) (*model.MedalEvent, error) {
	if id == 0 {
		return nil, invalid("medal_event_id", "is required")
	}
	e, err := events.GetMedalEvent(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: "medal event", ID: id}
	}
	return e, err
}
