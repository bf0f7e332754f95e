package service

import (
	"context"
	"fmt"

	"OlympicsHub/internal/model"
	"OlympicsHub/internal/repository"

	"github.com/sirupsen/logrus"
)

// 奖牌榜展示排序
const (
	StandingsSortRank = "rank"
	StandingsSortName = "name"
)

// MedalRequest 颁发一枚奖牌
type MedalRequest struct {
	MedalEventID uint64  `json:"medal_event_id"`
	CountryID    uint64  `json:"country_id"`
	AthleteName  string  `json:"athlete_name"`
	MedalType    string  `json:"medal_type"`
	ResultValue  *string `json:"result_value"`
	RecordType   *string `json:"record_type"`
}

// MedalFilter 奖牌列表过滤
type MedalFilter struct {
	Scope        Scope
	CountryID    *uint64
	MedalEventID *uint64
}

// MedalView 奖牌 + 展示名
type MedalView struct {
	*repository.MedalRow
	EventDisplayName string `json:"event_display_name"`
}

// MedalService 奖牌记录与奖牌榜
type MedalService struct {
	medals    repository.MedalRepository
	events    repository.MedalEventRepository
	countries repository.CountryRepository
	logger    *logrus.Logger
}

func NewMedalService(medals repository.MedalRepository, events repository.MedalEventRepository, countries repository.CountryRepository, logger *logrus.Logger) *MedalService {
	return &MedalService{medals: medals, events: events, countries: countries, logger: logger}
}

// ListMedals 最新颁发的在前
func (s *MedalService) ListMedals(ctx context.Context, filter MedalFilter) ([]*MedalView, error) {
	if filter.Scope.Empty() {
		return []*MedalView{}, nil
	}
	rows, err := s.medals.ListMedals(ctx, repository.MedalFilter{
		OlympicsID:   filter.Scope.Filter(),
		CountryID:    filter.CountryID,
		MedalEventID: filter.MedalEventID,
	})
	if err != nil {
		return nil, fmt.Errorf("查询奖牌失败: %w", err)
	}
	views := make([]*MedalView, 0, len(rows))
	for _, row := range rows {
		views = append(views, &MedalView{MedalRow: row, EventDisplayName: model.EventDisplayName(row.EventGender, row.EventName)})
	}
	return views, nil
}

func (s *MedalService) AwardMedal(ctx context.Context, req MedalRequest) (*model.Medal, error) {
	mt := model.MedalType(req.MedalType)
	if !mt.Valid() {
		return nil, invalid("medal_type", "must be one of gold, silver, bronze")
	}
	athlete, err := required("athlete_name", req.AthleteName)
	if err != nil {
		return nil, err
	}
	var record *model.RecordType
	if r := trimmed(req.RecordType); r != nil {
		rt := model.RecordType(*r)
		if !rt.Valid() {
			return nil, invalid("record_type", "must be one of WR, OR, PB")
		}
		record = &rt
	}
	if req.CountryID == 0 {
		return nil, invalid("country_id", "is required")
	}
	if _, err := requireMedalEvent(ctx, s.events, req.MedalEventID); err != nil {
		return nil, err
	}
	if _, err := s.countries.GetCountry(ctx, req.CountryID); err != nil {
		return nil, notFoundOr(err, "country", req.CountryID)
	}

	m := &model.Medal{
		MedalEventID: req.MedalEventID,
		CountryID:    req.CountryID,
		AthleteName:  athlete,
		MedalType:    mt,
		ResultValue:  trimmed(req.ResultValue),
		RecordType:   record,
	}
	if err := s.medals.CreateMedal(ctx, m); err != nil {
		return nil, fmt.Errorf("创建奖牌失败: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"medal_event_id": m.MedalEventID,
		"country_id":     m.CountryID,
		"medal_type":     m.MedalType,
	}).Info("奖牌已录入")
	return m, nil
}

func (s *MedalService) DeleteMedal(ctx context.Context, id uint64) error {
	affected, err := s.medals.DeleteMedal(ctx, id)
	if err != nil {
		return fmt.Errorf("删除奖牌失败: %w", err)
	}
	if affected == 0 {
		return &NotFoundError{Entity: "medal", ID: id}
	}
	s.logger.WithField("medal_id", id).Info("奖牌已删除")
	return nil
}

// Standings 实时统计奖牌榜；limit<=0 不截断，sortBy=name 仅改变展示顺序
func (s *MedalService) Standings(ctx context.Context, scope Scope, limit int, sortBy string) ([]*StandingsRow, error) {
	if scope.Empty() {
		return []*StandingsRow{}, nil
	}
	switch sortBy {
	case "", StandingsSortRank, StandingsSortName:
	default:
		return nil, invalid("sort", "must be rank or name")
	}
	tallies, err := s.medals.TallyByCountry(ctx, scope.Filter())
	if err != nil {
		return nil, fmt.Errorf("统计奖牌榜失败: %w", err)
	}
	rows := RankStandings(tallies)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	if sortBy == StandingsSortName {
		rows = SortStandingsByName(rows)
	}
	return rows, nil
}

func (s *MedalService) CountMedals(ctx context.Context, scope Scope) (int64, error) {
	if scope.Empty() {
		return 0, nil
	}
	return s.medals.CountMedals(ctx, scope.Filter())
}
