package service

import (
	"context"
	"fmt"
	"time"

	"OlympicsHub/internal/model"
	"OlympicsHub/internal/repository"

	"github.com/sirupsen/logrus"
)

// ScheduleItem 赛程中的一个轮次；时间一律为 UTC，由调用方按本地时区渲染
type ScheduleItem struct {
	ID               uint64          `json:"id"`
	MedalEventID     uint64          `json:"medal_event_id"`
	OlympicsID       uint64          `json:"olympics_id"`
	EventName        string          `json:"event_name"`
	EventDisplayName string          `json:"event_display_name"`
	Gender           *model.Gender   `json:"gender"`
	EventType        model.EventType `json:"event_type"`
	SportID          *uint64         `json:"sport_id"`
	SportName        *string         `json:"sport_name"`
	SportIcon        *string         `json:"sport_icon"`
	RoundType        model.RoundType `json:"round_type"`
	RoundNumber      int             `json:"round_number"`
	RoundName        *string         `json:"round_name"`
	RoundLabel       string          `json:"round_label"`
	StartTime        time.Time       `json:"start_time_utc"`
	EndTime          *time.Time      `json:"end_time_utc"`
	Venue            *string         `json:"venue"`
	Status           model.Status    `json:"status"`
	Notes            *string         `json:"notes"`
}

func newScheduleItem(row *repository.ScheduleRow) *ScheduleItem {
	venue := row.RoundVenue
	if venue == nil {
		venue = row.EventVenue
	}
	return &ScheduleItem{
		ID:               row.RoundID,
		MedalEventID:     row.MedalEventID,
		OlympicsID:       row.OlympicsID,
		EventName:        row.EventName,
		EventDisplayName: model.EventDisplayName(row.EventGender, row.EventName),
		Gender:           row.EventGender,
		EventType:        row.EventType,
		SportID:          row.SportID,
		SportName:        row.SportName,
		SportIcon:        row.SportIcon,
		RoundType:        row.RoundType,
		RoundNumber:      row.RoundNumber,
		RoundName:        row.RoundName,
		RoundLabel:       model.RoundLabel(row.RoundName, row.RoundType, row.RoundNumber),
		StartTime:        row.StartTime.UTC(),
		EndTime:          utcPtr(row.EndTime),
		Venue:            venue,
		Status:           row.Status,
		Notes:            row.Notes,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// ScheduleQuery 赛程过滤；所有条件 AND，空值不约束
type ScheduleQuery struct {
	Scope        Scope
	Date         string         // YYYY-MM-DD
	Location     *time.Location // Date 所在时区，nil 时用服务器本地时区
	SportID      *uint64
	MedalEventID *uint64
	Status       string
	From         *time.Time // start_time >= From
	Limit        int
}

// LiveRounds 直播轮次 + 客户端轮询间隔约定
type LiveRounds struct {
	Rounds              []*ScheduleItem `json:"rounds"`
	PollIntervalSeconds int             `json:"poll_interval_seconds"`
}

// ScheduleService 赛程投影（只读，每次查询实时计算）
type ScheduleService struct {
	repo         repository.ScheduleRepository
	pollInterval time.Duration
	logger       *logrus.Logger
}

func NewScheduleService(repo repository.ScheduleRepository, pollInterval time.Duration, logger *logrus.Logger) *ScheduleService {
	if pollInterval <= 0 {
		pollInterval = 30 * time.Second
	}
	return &ScheduleService{repo: repo, pollInterval: pollInterval, logger: logger}
}

// DayRange 日历日在 loc 中的 [当天 0 点, 次日 0 点)，转成 UTC
func DayRange(date string, loc *time.Location) (time.Time, time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	day, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, invalid("date", "must be a date in YYYY-MM-DD format")
	}
	next := time.Date(day.Year(), day.Month(), day.Day()+1, 0, 0, 0, 0, loc)
	return day.UTC(), next.UTC(), nil
}

func (s *ScheduleService) Schedule(ctx context.Context, q ScheduleQuery) ([]*ScheduleItem, error) {
	if q.Scope.Empty() {
		return []*ScheduleItem{}, nil
	}
	filter := repository.ScheduleFilter{
		OlympicsID:   q.Scope.Filter(),
		SportID:      q.SportID,
		MedalEventID: q.MedalEventID,
		Limit:        q.Limit,
	}
	if q.Status != "" {
		st, err := parseStatus(q.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = st
	}
	if q.Date != "" {
		from, to, err := DayRange(q.Date, q.Location)
		if err != nil {
			return nil, err
		}
		filter.From, filter.To = &from, &to
	}
	if q.From != nil {
		from := q.From.UTC()
		if filter.From == nil || from.After(*filter.From) {
			filter.From = &from
		}
	}

	rows, err := s.repo.ListSchedule(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("查询赛程失败: %w", err)
	}
	items := make([]*ScheduleItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, newScheduleItem(row))
	}
	return items, nil
}

// LiveRounds status=live，不带日期条件
func (s *ScheduleService) LiveRounds(ctx context.Context, scope Scope) (*LiveRounds, error) {
	rounds, err := s.Schedule(ctx, ScheduleQuery{Scope: scope, Status: string(model.StatusLive)})
	if err != nil {
		return nil, err
	}
	return &LiveRounds{Rounds: rounds, PollIntervalSeconds: int(s.pollInterval / time.Second)}, nil
}

// Upcoming start_time >= now 的前 limit 个轮次
func (s *ScheduleService) Upcoming(ctx context.Context, scope Scope, now time.Time, limit int) ([]*ScheduleItem, error) {
	return s.Schedule(ctx, ScheduleQuery{Scope: scope, From: &now, Limit: limit})
}
