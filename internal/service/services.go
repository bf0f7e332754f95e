package service

import (
	"time"

	"OlympicsHub/internal/config"
	"OlympicsHub/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Options 影响业务行为的配置项
type Options struct {
	StrictTransitions bool
	LivePollInterval  time.Duration
	UpcomingLimit     int
	TopStandingsLimit int
}

// OptionsFromConfig 从全局配置取业务参数
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		StrictTransitions: cfg.Rounds.StrictTransitions,
		LivePollInterval:  cfg.Schedule.LivePollInterval,
		UpcomingLimit:     cfg.Schedule.UpcomingLimit,
		TopStandingsLimit: cfg.Schedule.TopStandingsLimit,
	}
}

// Services 全部业务服务，由 serve 命令组装一次后注入 handler
type Services struct {
	Reference    *ReferenceService
	Olympics     *OlympicsService
	Events       *MedalEventService
	Rounds       *RoundService
	Matches      *MatchService
	Participants *ParticipantService
	Medals       *MedalService
	Schedule     *ScheduleService
	Stats        *StatsService
	Profile      *ProfileService
	Settings     *SettingsService
}

// New 基于同一个 *gorm.DB 组装仓储与服务
func New(db *gorm.DB, opts Options, logger *logrus.Logger) *Services {
	countries := repository.NewCountryRepository(db)
	sports := repository.NewSportRepository(db)
	olympicsRepo := repository.NewOlympicsRepository(db)
	settings := repository.NewSettingRepository(db)
	events := repository.NewMedalEventRepository(db)
	rounds := repository.NewRoundRepository(db)
	matches := repository.NewMatchRepository(db)
	entrants := repository.NewParticipantRepository(db)
	medals := repository.NewMedalRepository(db)
	schedule := repository.NewScheduleRepository(db)

	s := &Services{}
	s.Reference = NewReferenceService(countries, sports, logger)
	s.Olympics = NewOlympicsService(olympicsRepo, settings, logger)
	s.Schedule = NewScheduleService(schedule, opts.LivePollInterval, logger)
	s.Events = NewMedalEventService(events, sports, rounds, matches, medals, entrants, s.Olympics, logger)
	s.Rounds = NewRoundService(rounds, events, matches, countries, s.Schedule, opts.StrictTransitions, logger)
	s.Matches = NewMatchService(matches, rounds, countries, opts.StrictTransitions, logger)
	s.Participants = NewParticipantService(entrants, events, countries, logger)
	s.Medals = NewMedalService(medals, events, countries, logger)
	s.Stats = NewStatsService(s.Olympics, s.Reference, s.Events, s.Rounds, s.Medals, s.Schedule,
		StatsLimits{TopStandings: opts.TopStandingsLimit, Upcoming: opts.UpcomingLimit}, logger)
	s.Profile = NewProfileService(s.Reference, s.Medals, s.Matches, s.Participants, s.Schedule)
	s.Settings = NewSettingsService(settings, s.Olympics, logger)
	return s
}
