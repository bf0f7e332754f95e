package service

import (
	"sort"
	"strings"

	"OlympicsHub/internal/repository"
)

// StandingsRow 奖牌榜一行
type StandingsRow struct {
	Rank        int     `json:"rank"`
	CountryID   uint64  `json:"country_id"`
	CountryName string  `json:"country_name"`
	CountryCode string  `json:"country_code"`
	FlagURL     *string `json:"flag_url"`
	Gold        int64   `json:"gold"`
	Silver      int64   `json:"silver"`
	Bronze      int64   `json:"bronze"`
	Total       int64   `json:"total"`
}

// RankStandings 按 金 → 银 → 铜 降序排名；0 枚的国家不出现。
// 三项完全相同的国家名次相同（1,1,3），顺序保持输入顺序。
func RankStandings(tallies []*repository.MedalTally) []*StandingsRow {
	rows := make([]*StandingsRow, 0, len(tallies))
	for _, t := range tallies {
		total := t.Gold + t.Silver + t.Bronze
		if total == 0 {
			continue
		}
		rows = append(rows, &StandingsRow{
			CountryID:   t.CountryID,
			CountryName: t.Name,
			CountryCode: t.Code,
			FlagURL:     t.FlagURL,
			Gold:        t.Gold,
			Silver:      t.Silver,
			Bronze:      t.Bronze,
			Total:       total,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Gold != b.Gold {
			return a.Gold > b.Gold
		}
		if a.Silver != b.Silver {
			return a.Silver > b.Silver
		}
		return a.Bronze > b.Bronze
	})

	for i, r := range rows {
		if i > 0 && sameMedals(rows[i-1], r) {
			r.Rank = rows[i-1].Rank
		} else {
			r.Rank = i + 1
		}
	}
	return rows
}

func sameMedals(a, b *StandingsRow) bool {
	return a.Gold == b.Gold && a.Silver == b.Silver && a.Bronze == b.Bronze
}

// SortStandingsByName 展示用的按国家名重排，不改变 rank
func SortStandingsByName(rows []*StandingsRow) []*StandingsRow {
	out := make([]*StandingsRow, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].CountryName) < strings.ToLower(out[j].CountryName)
	})
	return out
}
