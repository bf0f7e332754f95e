package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// StatsCounts 看板计数；countries/sports 永远是全局数
type StatsCounts struct {
	Countries   int64 `json:"countries"`
	Sports      int64 `json:"sports"`
	MedalEvents int64 `json:"medal_events"`
	Rounds      int64 `json:"rounds"`
	Medals      int64 `json:"medals"`
}

// StatsSnapshot 首页看板
type StatsSnapshot struct {
	OlympicsID   *uint64         `json:"olympics_id"`
	Counts       StatsCounts     `json:"counts"`
	TopStandings []*StandingsRow `json:"top_standings"`
	Upcoming     []*ScheduleItem `json:"upcoming"`
	Live         []*ScheduleItem `json:"live"`
}

// StatsLimits 看板条数
type StatsLimits struct {
	TopStandings int
	Upcoming     int
}

// StatsService 解析届次后并发汇总各项数据
type StatsService struct {
	olympics  *OlympicsService
	reference *ReferenceService
	events    *MedalEventService
	rounds    *RoundService
	medals    *MedalService
	schedule  *ScheduleService
	limits    StatsLimits
	now       func() time.Time
	logger    *logrus.Logger
}

func NewStatsService(
	olympics *OlympicsService,
	reference *ReferenceService,
	events *MedalEventService,
	rounds *RoundService,
	medals *MedalService,
	schedule *ScheduleService,
	limits StatsLimits,
	logger *logrus.Logger,
) *StatsService {
	if limits.TopStandings <= 0 {
		limits.TopStandings = 5
	}
	if limits.Upcoming <= 0 {
		limits.Upcoming = 10
	}
	return &StatsService{
		olympics:  olympics,
		reference: reference,
		events:    events,
		rounds:    rounds,
		medals:    medals,
		schedule:  schedule,
		limits:    limits,
		now:       time.Now,
		logger:    logger,
	}
}

// Snapshot 未解析到届次时，按届次统计的数字为 0、列表为空
func (s *StatsService) Snapshot(ctx context.Context, explicit *uint64) (*StatsSnapshot, error) {
	scope, err := s.olympics.ResolveScope(ctx, explicit, false)
	if err != nil {
		return nil, err
	}
	snap := &StatsSnapshot{OlympicsID: scope.OlympicsID}
	now := s.now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Counts.Countries, err = s.reference.CountCountries(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Counts.Sports, err = s.reference.CountSports(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Counts.MedalEvents, err = s.events.CountMedalEvents(gctx, scope)
		return err
	})
	g.Go(func() (err error) {
		snap.Counts.Rounds, err = s.rounds.CountRounds(gctx, scope)
		return err
	})
	g.Go(func() (err error) {
		snap.Counts.Medals, err = s.medals.CountMedals(gctx, scope)
		return err
	})
	g.Go(func() (err error) {
		snap.TopStandings, err = s.medals.Standings(gctx, scope, s.limits.TopStandings, "")
		return err
	})
	g.Go(func() (err error) {
		snap.Upcoming, err = s.schedule.Upcoming(gctx, scope, now, s.limits.Upcoming)
		return err
	})
	g.Go(func() error {
		live, err := s.schedule.LiveRounds(gctx, scope)
		if err != nil {
			return err
		}
		snap.Live = live.Rounds
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.WithError(err).Error("汇总看板数据失败")
		return nil, err
	}
	return snap, nil
}
