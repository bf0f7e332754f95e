package service

import (
	"testing"

	"OlympicsHub/internal/repository"
)

func tally(id uint64, name string, g, s, b int64) *repository.MedalTally {
	return &repository.MedalTally{CountryID: id, Name: name, Code: name[:3], Gold: g, Silver: s, Bronze: b}
}

func TestRankStandings(t *testing.T) {
	tests := []struct {
		name      string
		in        []*repository.MedalTally
		wantCodes []string
		wantRanks []int
	}{
		{
			name:      "gold beats higher total",
			in:        []*repository.MedalTally{tally(1, "Bravo", 0, 3, 0), tally(2, "Alpha", 2, 0, 0)},
			wantCodes: []string{"Alp", "Bra"},
			wantRanks: []int{1, 2},
		},
		{
			name:      "two gold beats one gold ten silver",
			in:        []*repository.MedalTally{tally(1, "Bravo", 1, 10, 0), tally(2, "Alpha", 2, 0, 0)},
			wantCodes: []string{"Alp", "Bra"},
			wantRanks: []int{1, 2},
		},
		{
			name:      "silver then bronze break ties",
			in:        []*repository.MedalTally{tally(1, "Aaa", 1, 1, 1), tally(2, "Bbb", 1, 1, 2), tally(3, "Ccc", 1, 2, 0)},
			wantCodes: []string{"Ccc", "Bbb", "Aaa"},
			wantRanks: []int{1, 2, 3},
		},
		{
			name:      "identical triples share rank and keep input order",
			in:        []*repository.MedalTally{tally(1, "Zed", 1, 0, 0), tally(2, "Abc", 1, 0, 0), tally(3, "Mid", 0, 0, 1)},
			wantCodes: []string{"Zed", "Abc", "Mid"},
			wantRanks: []int{1, 1, 3},
		},
		{
			name:      "zero totals are dropped",
			in:        []*repository.MedalTally{tally(1, "Nil", 0, 0, 0), tally(2, "One", 0, 0, 1)},
			wantCodes: []string{"One"},
			wantRanks: []int{1},
		},
		{
			name: "empty input",
			in:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RankStandings(tt.in)
			if len(got) != len(tt.wantCodes) {
				t.Fatalf("got %d rows, want %d", len(got), len(tt.wantCodes))
			}
			for i, row := range got {
				if row.CountryCode != tt.wantCodes[i] || row.Rank != tt.wantRanks[i] {
					t.Errorf("row %d = %s rank %d, want %s rank %d", i, row.CountryCode, row.Rank, tt.wantCodes[i], tt.wantRanks[i])
				}
				if row.Total != row.Gold+row.Silver+row.Bronze {
					t.Errorf("row %d total %d != sum", i, row.Total)
				}
			}
		})
	}
}

func TestRankStandings_LexicographicOrder(t *testing.T) {
	in := []*repository.MedalTally{
		tally(1, "Aaa", 0, 0, 5), tally(2, "Bbb", 3, 1, 0), tally(3, "Ccc", 3, 0, 9),
		tally(4, "Ddd", 0, 4, 0), tally(5, "Eee", 3, 1, 1), tally(6, "Fff", 0, 4, 0),
	}
	got := RankStandings(in)
	for i := 1; i < len(got); i++ {
		a, b := got[i-1], got[i]
		if a.Gold < b.Gold ||
			(a.Gold == b.Gold && a.Silver < b.Silver) ||
			(a.Gold == b.Gold && a.Silver == b.Silver && a.Bronze < b.Bronze) {
			t.Errorf("%s placed before %s", a.CountryCode, b.CountryCode)
		}
		if a.Rank > b.Rank {
			t.Errorf("rank decreased at %d", i)
		}
	}
}

func TestSortStandingsByName_KeepsRank(t *testing.T) {
	ranked := RankStandings([]*repository.MedalTally{tally(1, "Zambia", 2, 0, 0), tally(2, "Austria", 1, 0, 0)})
	byName := SortStandingsByName(ranked)
	if byName[0].CountryName != "Austria" || byName[0].Rank != 2 {
		t.Errorf("first = %+v", byName[0])
	}
	if ranked[0].CountryName != "Zambia" {
		t.Error("input slice must not be reordered")
	}
}

func TestEventProgress(t *testing.T) {
	tests := []struct {
		count int64
		want  string
	}{
		{0, ProgressUpcoming},
		{1, ProgressInProgress},
		{2, ProgressInProgress},
		{3, ProgressCompleted},
		{5, ProgressCompleted},
	}
	for _, tt := range tests {
		if got := EventProgress(tt.count); got != tt.want {
			t.Errorf("EventProgress(%d) = %s, want %s", tt.count, got, tt.want)
		}
	}
}
