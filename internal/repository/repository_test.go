package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"OlympicsHub/internal/database"
	"OlympicsHub/internal/model"

	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func mustCreate(t *testing.T, db *gorm.DB, v interface{}) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
}

func u64(v uint64) *uint64 { return &v }
func str(s string) *string { return &s }

type fixture struct {
	olympics   *model.Olympics
	other      *model.Olympics
	swimming   *model.Sport
	usa, chn   *model.Country
	freestyle  *model.MedalEvent
	relay      *model.MedalEvent
	otherEvent *model.MedalEvent
}

func seedFixture(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	f := &fixture{
		olympics: &model.Olympics{Name: "Paris 2024", Year: 2024, Type: model.OlympicsSummer},
		other:    &model.Olympics{Name: "Tokyo 2020", Year: 2021, Type: model.OlympicsSummer},
		swimming: &model.Sport{Name: "Swimming"},
		usa:      &model.Country{Name: "United States", Code: "USA"},
		chn:      &model.Country{Name: "China", Code: "CHN"},
	}
	mustCreate(t, db, f.olympics)
	mustCreate(t, db, f.other)
	mustCreate(t, db, f.swimming)
	mustCreate(t, db, f.usa)
	mustCreate(t, db, f.chn)

	men := model.GenderMen
	f.freestyle = &model.MedalEvent{OlympicsID: f.olympics.ID, SportID: &f.swimming.ID, Name: "100m Freestyle", Gender: &men, EventType: model.EventIndividual}
	f.relay = &model.MedalEvent{OlympicsID: f.olympics.ID, SportID: &f.swimming.ID, Name: "4x100m Relay", EventType: model.EventTeam}
	f.otherEvent = &model.MedalEvent{OlympicsID: f.other.ID, Name: "Marathon", EventType: model.EventIndividual}
	mustCreate(t, db, f.freestyle)
	mustCreate(t, db, f.relay)
	mustCreate(t, db, f.otherEvent)
	return f
}

func TestCountryRepository_ReferencesAndUpsert(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	repo := NewCountryRepository(db)
	ctx := context.Background()

	n, err := repo.CountCountryReferences(ctx, f.usa.ID)
	if err != nil || n != 0 {
		t.Fatalf("references = %d, %v; want 0", n, err)
	}
	mustCreate(t, db, &model.Medal{MedalEventID: f.freestyle.ID, CountryID: f.usa.ID, AthleteName: "A", MedalType: model.MedalGold})
	mustCreate(t, db, &model.Match{EventRoundID: 1, TeamBCountryID: &f.usa.ID, Status: model.StatusScheduled})
	if n, _ = repo.CountCountryReferences(ctx, f.usa.ID); n != 2 {
		t.Errorf("references = %d, want 2", n)
	}

	if err := repo.UpsertCountryByCode(ctx, &model.Country{Name: "USA Renamed", Code: "USA"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, err := repo.GetCountryByCode(ctx, "USA")
	if err != nil {
		t.Fatalf("get by code: %v", err)
	}
	if got.ID != f.usa.ID || got.Name != "USA Renamed" {
		t.Errorf("upsert should update in place, got %+v", got)
	}
	if total, _ := repo.CountCountries(ctx); total != 2 {
		t.Errorf("countries = %d, want 2", total)
	}
}

func TestSportRepository_DeleteDetachesEvents(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	ctx := context.Background()

	affected, err := NewSportRepository(db).DeleteSport(ctx, f.swimming.ID)
	if err != nil || affected != 1 {
		t.Fatalf("DeleteSport = %d, %v", affected, err)
	}
	ev, err := NewMedalEventRepository(db).GetMedalEvent(ctx, f.freestyle.ID)
	if err != nil {
		t.Fatalf("event should survive sport deletion: %v", err)
	}
	if ev.SportID != nil {
		t.Errorf("sport_id = %v, want nil", *ev.SportID)
	}
}

func TestOlympicsRepository_Activate(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	repo := NewOlympicsRepository(db)
	settings := NewSettingRepository(db)
	ctx := context.Background()

	if err := repo.Activate(ctx, f.other.ID); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if err := repo.Activate(ctx, f.olympics.ID); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	var active []model.Olympics
	db.Where("is_active = ?", true).Find(&active)
	if len(active) != 1 || active[0].ID != f.olympics.ID {
		t.Fatalf("active rows = %+v", active)
	}
	s, err := settings.GetSetting(ctx, model.SettingActiveOlympicsID)
	if err != nil {
		t.Fatalf("setting: %v", err)
	}
	if s.Value != "1" {
		t.Errorf("active_olympics_id = %q, want 1", s.Value)
	}

	if err := repo.Activate(ctx, 999); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("activate missing = %v, want ErrRecordNotFound", err)
	}
	if flagged, _ := repo.GetFlaggedActive(ctx); flagged == nil || flagged.ID != f.olympics.ID {
		t.Error("failed activation must roll back")
	}
}

func TestOlympicsRepository_DeleteCascades(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	ctx := context.Background()
	repo := NewOlympicsRepository(db)

	round := &model.EventRound{MedalEventID: f.freestyle.ID, RoundType: model.RoundFinal, RoundNumber: 1, StartTime: time.Date(2024, 7, 28, 18, 0, 0, 0, time.UTC), Status: model.StatusScheduled}
	mustCreate(t, db, round)
	mustCreate(t, db, &model.Match{EventRoundID: round.ID, Status: model.StatusScheduled})
	mustCreate(t, db, &model.RoundResult{EventRoundID: round.ID})
	mustCreate(t, db, &model.Medal{MedalEventID: f.freestyle.ID, CountryID: f.usa.ID, AthleteName: "A", MedalType: model.MedalGold})
	mustCreate(t, db, &model.EventParticipant{MedalEventID: f.freestyle.ID, CountryID: f.usa.ID})
	if err := repo.Activate(ctx, f.olympics.ID); err != nil {
		t.Fatal(err)
	}

	affected, err := repo.DeleteOlympics(ctx, f.olympics.ID)
	if err != nil || affected != 1 {
		t.Fatalf("DeleteOlympics = %d, %v", affected, err)
	}
	for _, m := range []interface{}{&model.EventRound{}, &model.Match{}, &model.RoundResult{}, &model.Medal{}, &model.EventParticipant{}} {
		var n int64
		db.Model(m).Count(&n)
		if n != 0 {
			t.Errorf("%T rows left: %d", m, n)
		}
	}
	var events int64
	db.Model(&model.MedalEvent{}).Count(&events)
	if events != 1 {
		t.Errorf("medal events = %d, want only the other olympics' event", events)
	}
	if _, err := NewSettingRepository(db).GetSetting(ctx, model.SettingActiveOlympicsID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("active setting should be cleared, got %v", err)
	}
}

func TestMedalEventRepository_List(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	repo := NewMedalEventRepository(db)
	ctx := context.Background()

	mustCreate(t, db, &model.Medal{MedalEventID: f.freestyle.ID, CountryID: f.usa.ID, AthleteName: "A", MedalType: model.MedalGold})
	mustCreate(t, db, &model.Medal{MedalEventID: f.freestyle.ID, CountryID: f.chn.ID, AthleteName: "B", MedalType: model.MedalSilver})

	tests := []struct {
		name   string
		filter MedalEventFilter
		want   []string
	}{
		{"scoped", MedalEventFilter{OlympicsID: &f.olympics.ID}, []string{"100m Freestyle", "4x100m Relay"}},
		{"search event name", MedalEventFilter{Query: "RELAY"}, []string{"4x100m Relay"}},
		{"search sport name", MedalEventFilter{Query: "swim"}, []string{"100m Freestyle", "4x100m Relay"}},
		{"gender", MedalEventFilter{Gender: "men"}, []string{"100m Freestyle"}},
		{"sport", MedalEventFilter{SportID: &f.swimming.ID, OlympicsID: &f.other.ID}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := repo.ListMedalEvents(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListMedalEvents: %v", err)
			}
			if len(rows) != len(tt.want) {
				t.Fatalf("got %d rows, want %d", len(rows), len(tt.want))
			}
			for i, row := range rows {
				if row.Name != tt.want[i] {
					t.Errorf("row %d = %q, want %q", i, row.Name, tt.want[i])
				}
			}
		})
	}

	row, err := repo.GetMedalEventRow(ctx, f.freestyle.ID)
	if err != nil {
		t.Fatalf("GetMedalEventRow: %v", err)
	}
	if row.MedalCount != 2 || row.SportName == nil || *row.SportName != "Swimming" {
		t.Errorf("row = %+v", row)
	}
	if _, err := repo.GetMedalEventRow(ctx, 999); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("missing row err = %v", err)
	}
}

func TestRoundRepository_ResultsOrdering(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	repo := NewRoundRepository(db)
	ctx := context.Background()

	round := &model.EventRound{MedalEventID: f.freestyle.ID, RoundType: model.RoundHeat, RoundNumber: 1, StartTime: time.Date(2024, 7, 27, 9, 0, 0, 0, time.UTC), Status: model.StatusScheduled}
	if err := repo.CreateRound(ctx, round); err != nil {
		t.Fatal(err)
	}
	pos := func(p int) *int { return &p }
	for _, res := range []*model.RoundResult{
		{EventRoundID: round.ID, AthleteName: str("unranked")},
		{EventRoundID: round.ID, AthleteName: str("third"), FinalPosition: pos(3)},
		{EventRoundID: round.ID, AthleteName: str("first"), FinalPosition: pos(1)},
	} {
		if err := repo.CreateResult(ctx, res); err != nil {
			t.Fatal(err)
		}
	}
	list, err := repo.ListResults(ctx, round.ID)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"first", "third", "unranked"}
	for i, res := range list {
		if *res.AthleteName != want[i] {
			t.Errorf("result %d = %q, want %q", i, *res.AthleteName, want[i])
		}
	}

	if n, _ := repo.CountRounds(ctx, &f.olympics.ID); n != 1 {
		t.Errorf("scoped rounds = %d, want 1", n)
	}
	if n, _ := repo.CountRounds(ctx, &f.other.ID); n != 0 {
		t.Errorf("other olympics rounds = %d, want 0", n)
	}

	if affected, err := repo.DeleteRound(ctx, round.ID); err != nil || affected != 1 {
		t.Fatalf("DeleteRound = %d, %v", affected, err)
	}
	var left int64
	db.Model(&model.RoundResult{}).Count(&left)
	if left != 0 {
		t.Errorf("results left after round delete: %d", left)
	}
}

func TestParticipantRepository_AddAndReplace(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	repo := NewParticipantRepository(db)
	ctx := context.Background()

	if err := repo.AddParticipants(ctx, f.freestyle.ID, []uint64{f.usa.ID}); err != nil {
		t.Fatal(err)
	}
	if err := repo.AddParticipants(ctx, f.freestyle.ID, []uint64{f.usa.ID, f.chn.ID}); err != nil {
		t.Fatalf("duplicate pair should be ignored: %v", err)
	}
	rows, err := repo.ListParticipants(ctx, ParticipantFilter{MedalEventID: &f.freestyle.ID})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[0].CountryCode != "CHN" || rows[1].CountryCode != "USA" {
		t.Fatalf("participants = %+v", rows)
	}

	if err := repo.ReplaceParticipants(ctx, f.freestyle.ID, []uint64{f.chn.ID}); err != nil {
		t.Fatal(err)
	}
	rows, _ = repo.ListParticipants(ctx, ParticipantFilter{MedalEventID: &f.freestyle.ID})
	if len(rows) != 1 || rows[0].CountryID != f.chn.ID {
		t.Errorf("after replace = %+v", rows)
	}
	byCountry, _ := repo.ListParticipants(ctx, ParticipantFilter{CountryID: &f.usa.ID})
	if len(byCountry) != 0 {
		t.Errorf("usa participations = %d, want 0", len(byCountry))
	}
}

func TestMedalRepository_Tally(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	repo := NewMedalRepository(db)
	ctx := context.Background()

	for _, m := range []*model.Medal{
		{MedalEventID: f.freestyle.ID, CountryID: f.usa.ID, AthleteName: "A", MedalType: model.MedalGold},
		{MedalEventID: f.relay.ID, CountryID: f.usa.ID, AthleteName: "Team", MedalType: model.MedalBronze},
		{MedalEventID: f.freestyle.ID, CountryID: f.chn.ID, AthleteName: "B", MedalType: model.MedalSilver},
		{MedalEventID: f.otherEvent.ID, CountryID: f.chn.ID, AthleteName: "C", MedalType: model.MedalGold},
	} {
		if err := repo.CreateMedal(ctx, m); err != nil {
			t.Fatal(err)
		}
	}

	scoped, err := repo.TallyByCountry(ctx, &f.olympics.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(scoped) != 2 {
		t.Fatalf("scoped tally rows = %d", len(scoped))
	}
	usa, chn := scoped[0], scoped[1]
	if usa.Code != "USA" || usa.Gold != 1 || usa.Silver != 0 || usa.Bronze != 1 {
		t.Errorf("usa = %+v", usa)
	}
	if chn.Code != "CHN" || chn.Gold != 0 || chn.Silver != 1 {
		t.Errorf("chn = %+v", chn)
	}

	global, _ := repo.TallyByCountry(ctx, nil)
	if global[1].Gold != 1 {
		t.Errorf("global chn gold = %d, want 1", global[1].Gold)
	}

	if n, _ := repo.CountMedals(ctx, &f.other.ID); n != 1 {
		t.Errorf("other olympics medals = %d", n)
	}
	rows, err := repo.ListMedals(ctx, MedalFilter{CountryID: &f.usa.ID})
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[0].EventName != "4x100m Relay" {
		t.Errorf("usa medals newest first = %+v", rows)
	}
}

func TestScheduleRepository_FiltersAndOrder(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)
	repo := NewScheduleRepository(db)
	ctx := context.Background()

	day := time.Date(2024, 7, 28, 0, 0, 0, 0, time.UTC)
	rounds := []*model.EventRound{
		{MedalEventID: f.relay.ID, RoundType: model.RoundFinal, RoundNumber: 1, StartTime: day.Add(19 * time.Hour), Status: model.StatusScheduled},
		{MedalEventID: f.freestyle.ID, RoundType: model.RoundFinal, RoundNumber: 1, StartTime: day.Add(19 * time.Hour), Status: model.StatusLive, Venue: str("Pool B")},
		{MedalEventID: f.freestyle.ID, RoundType: model.RoundHeat, RoundNumber: 1, StartTime: day.Add(9 * time.Hour), Status: model.StatusCompleted},
		{MedalEventID: f.otherEvent.ID, RoundType: model.RoundFinal, RoundNumber: 1, StartTime: day.Add(30 * time.Hour), Status: model.StatusScheduled},
	}
	for _, r := range rounds {
		mustCreate(t, db, r)
	}

	all, err := repo.ListSchedule(ctx, ScheduleFilter{})
	if err != nil {
		t.Fatal(err)
	}
	wantOrder := []uint64{rounds[2].ID, rounds[1].ID, rounds[0].ID, rounds[3].ID}
	if len(all) != len(wantOrder) {
		t.Fatalf("rows = %d", len(all))
	}
	for i, row := range all {
		if row.RoundID != wantOrder[i] {
			t.Errorf("row %d = round %d, want %d", i, row.RoundID, wantOrder[i])
		}
	}
	if all[1].RoundVenue == nil || *all[1].RoundVenue != "Pool B" || all[1].SportName == nil {
		t.Errorf("joined row = %+v", all[1])
	}

	to := day.Add(24 * time.Hour)
	tests := []struct {
		name   string
		filter ScheduleFilter
		want   int
	}{
		{"one day", ScheduleFilter{From: &day, To: &to}, 3},
		{"live", ScheduleFilter{Status: model.StatusLive}, 1},
		{"olympics", ScheduleFilter{OlympicsID: &f.other.ID}, 1},
		{"event and status", ScheduleFilter{MedalEventID: &f.freestyle.ID, Status: model.StatusScheduled}, 0},
		{"sport", ScheduleFilter{SportID: &f.swimming.ID}, 3},
		{"limit", ScheduleFilter{Limit: 2}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := repo.ListSchedule(ctx, tt.filter)
			if err != nil {
				t.Fatal(err)
			}
			if len(rows) != tt.want {
				t.Errorf("rows = %d, want %d", len(rows), tt.want)
			}
		})
	}
}
