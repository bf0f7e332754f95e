package service

import (
	"context"
	"sort"

	"OlympicsHub/internal/model"
	"OlympicsHub/internal/repository"
)

// CountryProfile 国家页：奖牌、对阵与报名的赛程
type CountryProfile struct {
	Country  *model.Country               `json:"country"`
	Standing *StandingsRow                `json:"standing"`
	Medals   []*MedalView                 `json:"medals"`
	Matches  []*MatchView                 `json:"matches"`
	Entries  []*repository.ParticipantRow `json:"entries"`
	Rounds   []*ScheduleItem              `json:"rounds"`
}

// ProfileService 组合各服务得到国家视图
type ProfileService struct {
	reference    *ReferenceService
	medals       *MedalService
	matches      *MatchService
	participants *ParticipantService
	schedule     *ScheduleService
}

func NewProfileService(reference *ReferenceService, medals *MedalService, matches *MatchService, participants *ParticipantService, schedule *ScheduleService) *ProfileService {
	return &ProfileService{
		reference:    reference,
		medals:       medals,
		matches:      matches,
		participants: participants,
		schedule:     schedule,
	}
}

// CountryProfile Rounds 只包含报名小项中没有该国直接对阵的轮次
func (s *ProfileService) CountryProfile(ctx context.Context, code string, scope Scope) (*CountryProfile, error) {
	country, err := s.reference.GetCountryByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	profile := &CountryProfile{
		Country:  country,
		Standing: &StandingsRow{CountryID: country.ID, CountryName: country.Name, CountryCode: country.Code, FlagURL: country.FlagURL},
	}

	standings, err := s.medals.Standings(ctx, scope, 0, "")
	if err != nil {
		return nil, err
	}
	for _, row := range standings {
		if row.CountryID == country.ID {
			profile.Standing = row
			break
		}
	}

	if profile.Medals, err = s.medals.ListMedals(ctx, MedalFilter{Scope: scope, CountryID: &country.ID}); err != nil {
		return nil, err
	}
	if profile.Matches, err = s.matches.ListMatches(ctx, MatchFilter{Scope: scope, CountryID: &country.ID}); err != nil {
		return nil, err
	}
	if profile.Entries, err = s.participants.ListParticipants(ctx, ParticipantFilter{Scope: scope, CountryID: &country.ID}); err != nil {
		return nil, err
	}

	withMatch := make(map[uint64]bool, len(profile.Matches))
	for _, m := range profile.Matches {
		withMatch[m.EventRoundID] = true
	}
	profile.Rounds = []*ScheduleItem{}
	for _, entry := range profile.Entries {
		eventID := entry.MedalEventID
		items, err := s.schedule.Schedule(ctx, ScheduleQuery{Scope: GlobalScope, MedalEventID: &eventID})
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if !withMatch[item.ID] {
				profile.Rounds = append(profile.Rounds, item)
			}
		}
	}
	sort.SliceStable(profile.Rounds, func(i, j int) bool {
		return profile.Rounds[i].StartTime.Before(profile.Rounds[j].StartTime)
	})
	return profile, nil
}
