package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	_ "time/tzdata"

	"OlympicsHub/internal/config"
	"OlympicsHub/internal/database"
	"OlympicsHub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const testPassword = "s3cret"

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := database.OpenMemory()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := &config.Config{Auth: config.AuthConfig{AdminPassword: testPassword}}
	svc := service.New(db, service.Options{}, logger)
	return &testServer{t: t, router: NewRouter(db, svc, cfg, logger)}
}

// do 发请求；admin 为 true 时带正确口令
func (s *testServer) do(method, path string, body interface{}, admin bool) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			s.t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set("Authorization", "Bearer "+testPassword)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// mustDo 断言状态码并把响应解到 out
func (s *testServer) mustDo(method, path string, body interface{}, want int, out interface{}) {
	s.t.Helper()
	w := s.do(method, path, body, true)
	if w.Code != want {
		s.t.Fatalf("%s %s = %d, want %d: %s", method, path, w.Code, want, w.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			s.t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
}

type idResp struct {
	ID uint64 `json:"id"`
}

func path(format string, id uint64) string {
	return format + "/" + strconv.FormatUint(id, 10)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/api/healthz", nil, false)
	if w.Code != http.StatusOK {
		t.Fatalf("healthz = %d", w.Code)
	}
}

func TestBearerAuth(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name   string
		header string
		want   bool
	}{
		{"missing", "", false},
		{"wrong scheme", "Basic " + testPassword, false},
		{"wrong password", "Bearer nope", false},
		{"ok", "Bearer " + testPassword, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/check", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			s.router.ServeHTTP(w, req)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			var body struct {
				Authenticated bool `json:"authenticated"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Authenticated != tt.want {
				t.Errorf("authenticated = %v, want %v", body.Authenticated, tt.want)
			}

			req = httptest.NewRequest(http.MethodPost, "/api/sports", strings.NewReader(`{"name":"Judo"}`))
			req.Header.Set("Content-Type", "application/json")
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w = httptest.NewRecorder()
			s.router.ServeHTTP(w, req)
			if tt.want && w.Code == http.StatusUnauthorized || !tt.want && w.Code != http.StatusUnauthorized {
				t.Errorf("write status = %d", w.Code)
			}
		})
	}

	w := s.do(http.MethodPost, "/api/countries", gin.H{"name": "France", "code": "FRA"}, false)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated write = %d", w.Code)
	}
	if w := s.do(http.MethodGet, "/api/countries", nil, false); w.Code != http.StatusOK {
		t.Errorf("public read = %d", w.Code)
	}
}

func TestBearerAuth_NoPasswordConfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/x", BearerAuth(""), func(c *gin.Context) { c.Status(http.StatusOK) })
	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	req.Header.Set("Authorization", "Bearer ")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/sports", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if got := w.Header().Get(requestIDHeader); got != "abc-123" {
		t.Errorf("echoed request id = %q", got)
	}
	w = s.do(http.MethodGet, "/api/sports", nil, false)
	if len(w.Header().Get(requestIDHeader)) != 36 {
		t.Errorf("generated request id = %q", w.Header().Get(requestIDHeader))
	}
}

func TestErrorMapping(t *testing.T) {
	s := newTestServer(t)
	var country idResp
	s.mustDo(http.MethodPost, "/api/countries", gin.H{"name": "France", "code": "fra"}, http.StatusCreated, &country)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		want   int
	}{
		{"bad code", http.MethodPost, "/api/countries", gin.H{"name": "X", "code": "XX"}, http.StatusBadRequest},
		{"duplicate code", http.MethodPost, "/api/countries", gin.H{"name": "France 2", "code": "FRA"}, http.StatusConflict},
		{"missing country", http.MethodGet, "/api/countries/99", nil, http.StatusNotFound},
		{"bad id", http.MethodGet, "/api/countries/abc", nil, http.StatusBadRequest},
		{"malformed body", http.MethodPost, "/api/sports", "not an object", http.StatusBadRequest},
		{"bad medal type", http.MethodPost, "/api/medals", gin.H{"medal_event_id": 1, "country_id": country.ID, "athlete_name": "A", "medal_type": "platinum"}, http.StatusBadRequest},
		{"medal for missing event", http.MethodPost, "/api/medals", gin.H{"medal_event_id": 7, "country_id": country.ID, "athlete_name": "A", "medal_type": "gold"}, http.StatusNotFound},
		{"bad tz", http.MethodGet, "/api/schedule?olympics=all&tz=Nowhere/City", nil, http.StatusBadRequest},
		{"bad olympics param", http.MethodGet, "/api/medals?olympics=paris", nil, http.StatusBadRequest},
		{"bad sort", http.MethodGet, "/api/medals?olympics=all&sort=points", nil, http.StatusBadRequest},
		{"results need round", http.MethodGet, "/api/round-results", nil, http.StatusBadRequest},
		{"bad timezone setting", http.MethodPut, "/api/settings", gin.H{"default_timezone": "Mars/Base"}, http.StatusBadRequest},
		{"delete missing medal", http.MethodDelete, "/api/medals/5", nil, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(tt.method, tt.path, tt.body, true)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.want, w.Body.String())
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body["error"] == "" {
				t.Errorf("error body = %s", w.Body.String())
			}
		})
	}
}

func TestStandingsFlow(t *testing.T) {
	s := newTestServer(t)

	var paris, usa, chn, swim, event idResp
	s.mustDo(http.MethodPost, "/api/olympics", gin.H{"name": "Paris 2024", "year": 2024, "start_date": "2024-07-26"}, http.StatusCreated, &paris)
	s.mustDo(http.MethodPost, "/api/countries", gin.H{"name": "United States", "code": "USA"}, http.StatusCreated, &usa)
	s.mustDo(http.MethodPost, "/api/countries", gin.H{"name": "China", "code": "CHN"}, http.StatusCreated, &chn)
	s.mustDo(http.MethodPost, "/api/sports", gin.H{"name": "Swimming"}, http.StatusCreated, &swim)

	// 未激活时按当前届查询没有数据
	var empty []map[string]interface{}
	s.mustDo(http.MethodGet, "/api/medals", nil, http.StatusOK, &empty)
	if len(empty) != 0 {
		t.Fatalf("standings before activation = %v", empty)
	}
	s.mustDo(http.MethodGet, "/api/olympics/active", nil, http.StatusOK, nil)

	s.mustDo(http.MethodPost, path("/api/olympics", paris.ID)+"/activate", nil, http.StatusOK, nil)
	s.mustDo(http.MethodPost, "/api/medal-events", gin.H{"sport_id": swim.ID, "name": "100m Freestyle", "gender": "men"}, http.StatusCreated, &event)

	for _, m := range []struct {
		country uint64
		medal   string
	}{{usa.ID, "gold"}, {usa.ID, "gold"}, {chn.ID, "silver"}, {chn.ID, "silver"}, {chn.ID, "silver"}} {
		s.mustDo(http.MethodPost, "/api/medals", gin.H{"medal_event_id": event.ID, "country_id": m.country, "athlete_name": "x", "medal_type": m.medal}, http.StatusCreated, nil)
	}

	var rows []service.StandingsRow
	s.mustDo(http.MethodGet, "/api/medals", nil, http.StatusOK, &rows)
	if len(rows) != 2 || rows[0].CountryCode != "USA" || rows[0].Rank != 1 || rows[1].Total != 3 {
		t.Fatalf("standings = %+v", rows)
	}
	s.mustDo(http.MethodGet, "/api/medals?sort=name&limit=1", nil, http.StatusOK, &rows)
	if len(rows) != 1 || rows[0].CountryCode != "USA" {
		t.Errorf("limited standings = %+v", rows)
	}

	var medals []map[string]interface{}
	s.mustDo(http.MethodGet, "/api/medals/all?country="+strconv.FormatUint(chn.ID, 10), nil, http.StatusOK, &medals)
	if len(medals) != 3 || medals[0]["event_display_name"] != "Men's 100m Freestyle" {
		t.Errorf("medal list = %v", medals)
	}

	var detail struct {
		Event struct {
			MedalCount int64  `json:"medal_count"`
			Progress   string `json:"progress"`
		} `json:"event"`
	}
	s.mustDo(http.MethodGet, path("/api/medal-events", event.ID), nil, http.StatusOK, &detail)
	if detail.Event.MedalCount != 5 || detail.Event.Progress != service.ProgressCompleted {
		t.Errorf("event detail = %+v", detail.Event)
	}

	s.mustDo(http.MethodDelete, path("/api/countries", usa.ID), nil, http.StatusConflict, nil)
	s.mustDo(http.MethodDelete, path("/api/medal-events", event.ID), nil, http.StatusNoContent, nil)
	s.mustDo(http.MethodGet, "/api/medals?olympics=all", nil, http.StatusOK, &rows)
	if len(rows) != 0 {
		t.Errorf("standings after cascade delete = %+v", rows)
	}
}

func TestScheduleAndLive(t *testing.T) {
	s := newTestServer(t)

	var paris, swim, fence, butterfly, sabre idResp
	s.mustDo(http.MethodPost, "/api/olympics", gin.H{"name": "Paris 2024", "year": 2024}, http.StatusCreated, &paris)
	s.mustDo(http.MethodPost, "/api/sports", gin.H{"name": "Swimming"}, http.StatusCreated, &swim)
	s.mustDo(http.MethodPost, "/api/sports", gin.H{"name": "Fencing"}, http.StatusCreated, &fence)
	s.mustDo(http.MethodPost, "/api/medal-events", gin.H{"olympics_id": paris.ID, "sport_id": swim.ID, "name": "200m Butterfly", "gender": "women"}, http.StatusCreated, &butterfly)
	s.mustDo(http.MethodPost, "/api/medal-events", gin.H{"olympics_id": paris.ID, "sport_id": fence.ID, "name": "Sabre", "gender": "men"}, http.StatusCreated, &sabre)

	var heat idResp
	s.mustDo(http.MethodPost, "/api/rounds", gin.H{"medal_event_id": butterfly.ID, "start_time_utc": "2024-07-31T09:00:00Z"}, http.StatusCreated, &heat)
	s.mustDo(http.MethodPost, "/api/rounds", gin.H{"medal_event_id": sabre.ID, "round_type": "final", "start_time_utc": "2024-07-31T19:00:00Z", "status": "live"}, http.StatusCreated, nil)

	var status struct {
		Status string `json:"status"`
		Label  string `json:"label"`
	}
	s.mustDo(http.MethodPut, path("/api/rounds", heat.ID)+"/status", gin.H{"status": "live"}, http.StatusOK, &status)
	if status.Status != "live" || status.Label != "Heat" {
		t.Errorf("status response = %+v", status)
	}
	s.mustDo(http.MethodPut, path("/api/rounds", heat.ID)+"/status", gin.H{"status": "paused"}, http.StatusBadRequest, nil)

	var items []service.ScheduleItem
	q := "/api/schedule?olympics=" + strconv.FormatUint(paris.ID, 10) + "&sport=" + strconv.FormatUint(swim.ID, 10) + "&status=live"
	s.mustDo(http.MethodGet, q, nil, http.StatusOK, &items)
	if len(items) != 1 || items[0].ID != heat.ID || items[0].EventDisplayName != "Women's 200m Butterfly" {
		t.Errorf("sport+live schedule = %+v", items)
	}

	s.mustDo(http.MethodGet, "/api/schedule?olympics=all&date=2024-07-31&tz=Asia/Tokyo", nil, http.StatusOK, &items)
	if len(items) != 1 {
		t.Errorf("Tokyo day 2024-07-31 = %d rounds, want 1", len(items))
	}

	var live service.LiveRounds
	s.mustDo(http.MethodGet, "/api/rounds/live?olympics=all", nil, http.StatusOK, &live)
	if len(live.Rounds) != 2 || live.PollIntervalSeconds != 30 {
		t.Errorf("live = %d rounds, poll %d", len(live.Rounds), live.PollIntervalSeconds)
	}
	if live.Rounds[0].StartTime.Hour() != 9 {
		t.Errorf("live rounds should be ordered by start time: %+v", live.Rounds[0])
	}

	var stats service.StatsSnapshot
	s.mustDo(http.MethodGet, "/api/stats?olympics="+strconv.FormatUint(paris.ID, 10), nil, http.StatusOK, &stats)
	if stats.Counts.MedalEvents != 2 || stats.Counts.Rounds != 2 || len(stats.Live) != 2 {
		t.Errorf("stats = %+v", stats.Counts)
	}
}

func TestMatchesAndSettings(t *testing.T) {
	s := newTestServer(t)

	var paris, ita, fra, event, final idResp
	s.mustDo(http.MethodPost, "/api/olympics", gin.H{"name": "Paris 2024", "year": 2024}, http.StatusCreated, &paris)
	s.mustDo(http.MethodPut, "/api/settings", gin.H{"active_olympics_id": strconv.FormatUint(paris.ID, 10), "default_timezone": "Europe/Paris"}, http.StatusOK, nil)

	var settings map[string]string
	s.mustDo(http.MethodGet, "/api/settings", nil, http.StatusOK, &settings)
	if settings["default_timezone"] != "Europe/Paris" {
		t.Errorf("settings = %v", settings)
	}

	s.mustDo(http.MethodPost, "/api/countries", gin.H{"name": "Italy", "code": "ITA"}, http.StatusCreated, &ita)
	s.mustDo(http.MethodPost, "/api/countries", gin.H{"name": "France", "code": "FRA"}, http.StatusCreated, &fra)
	s.mustDo(http.MethodPost, "/api/medal-events", gin.H{"name": "Team Foil", "gender": "women", "event_type": "team"}, http.StatusCreated, &event)
	s.mustDo(http.MethodPost, "/api/rounds", gin.H{"medal_event_id": event.ID, "round_type": "final", "start_time_utc": "2024-08-01T19:00:00+02:00"}, http.StatusCreated, &final)

	s.mustDo(http.MethodPost, "/api/matches", gin.H{"event_round_id": final.ID, "team_a_country_id": ita.ID, "team_b_name": "USA", "winner_country_id": fra.ID}, http.StatusBadRequest, nil)

	var match struct {
		ID           uint64 `json:"id"`
		TeamADisplay string `json:"team_a_display"`
		TeamBDisplay string `json:"team_b_display"`
		RoundLabel   string `json:"round_label"`
	}
	s.mustDo(http.MethodPost, "/api/matches", gin.H{
		"event_round_id": final.ID, "team_a_country_id": ita.ID, "team_b_country_id": fra.ID,
		"team_a_score": "45", "team_b_score": "36", "winner_country_id": ita.ID,
	}, http.StatusCreated, &match)
	if match.TeamADisplay != "Italy" || match.TeamBDisplay != "France" || match.RoundLabel != "Final" {
		t.Errorf("match = %+v", match)
	}
	s.mustDo(http.MethodPut, path("/api/matches", match.ID)+"/status", gin.H{"status": "completed"}, http.StatusOK, nil)

	var list []map[string]interface{}
	s.mustDo(http.MethodGet, "/api/matches?country="+strconv.FormatUint(fra.ID, 10), nil, http.StatusOK, &list)
	if len(list) != 1 {
		t.Errorf("matches for FRA = %d", len(list))
	}

	s.mustDo(http.MethodPost, path("/api/medal-events", event.ID)+"/participants", gin.H{"country_ids": []uint64{ita.ID, fra.ID}}, http.StatusOK, &list)
	if len(list) != 2 {
		t.Errorf("participants = %d", len(list))
	}

	var profile service.CountryProfile
	s.mustDo(http.MethodGet, "/api/countries/code/ita/profile", nil, http.StatusOK, &profile)
	if profile.Country == nil || profile.Country.Code != "ITA" || len(profile.Matches) != 1 || len(profile.Entries) != 1 {
		t.Errorf("profile = %+v", profile)
	}
	if len(profile.Rounds) != 0 {
		t.Errorf("final has a direct match, profile rounds = %d", len(profile.Rounds))
	}
}
