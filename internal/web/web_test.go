package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"confsched/internal/config"
	"confsched/internal/schedule"
	"confsched/internal/sessions"
)

func strp(s string) *string { return &s }

func newTestServer(t *testing.T, auth *config.BasicAuthConfig, refresh RefreshFunc) *Server {
	t.Helper()
	date, _ := time.Parse("2006-01-02", "2024-06-10")
	in := schedule.Input{
		Year: 2024,
		Sources: [][]sessions.RawSession{{
			{ID: strp("w1"), Title: strp("Go Workshop"), Type: strp("workshop"), Track: strp("go")},
			{ID: strp("t1"), Title: strp("Talk"), Abstract: strp("About things."), Length: strp("45"),
				Speakers: []sessions.RawSpeaker{{ID: strp("p1"), Name: strp("Ada"), Bio: strp("Pioneer")}}},
			{ID: strp("spare"), Title: strp("Not placed")},
		}},
		Descriptor: &schedule.Descriptor{
			RoomNames: []string{"Lab", "Main"},
			Tracks:    map[string]schedule.TrackDescriptor{"go": {Name: "Go"}},
			Days: []schedule.DayDescriptor{{
				DayNum: 1, Day: "Monday", Date: date, AltLabel: "Workshops", Rooms: []int{0, 1},
				Timeslots: []schedule.TimeslotDescriptor{{
					Time:     []string{"09:00", "10:00"},
					Sessions: []schedule.RoomEntry{{SessionID: "w1"}, {SessionID: "t1"}},
				}},
			}},
		},
	}
	cache := schedule.NewCache()
	if _, err := cache.Refresh(in); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"
	cfg.BasicAuth = auth
	return NewServer(cfg, cache, refresh)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndYears(t *testing.T) {
	h := newTestServer(t, nil, nil).Handler()

	if rec := get(t, h, "/health"); rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Fatalf("/health = %d %q", rec.Code, rec.Body.String())
	}

	rec := get(t, h, "/api/years")
	var years yearsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &years); err != nil {
		t.Fatalf("decode years: %v", err)
	}
	if len(years.Years) != 1 || years.Years[0] != 2024 {
		t.Fatalf("years = %v", years.Years)
	}
}

func TestScheduleEndpoint(t *testing.T) {
	h := newTestServer(t, nil, nil).Handler()

	rec := get(t, h, "/api/schedule/2024")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	var got scheduleDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode schedule: %v", err)
	}
	if len(got.Days) != 1 || len(got.Days[0].Timeslots) != 1 {
		t.Fatalf("unexpected days: %+v", got.Days)
	}
	slots := got.Days[0].Timeslots[0].Slots
	if len(slots) != 2 || slots[1].Sessions[0].Room != "Main" || slots[0].Sessions[0].Track != "go" {
		t.Fatalf("unexpected slots: %+v", slots)
	}
	if len(got.Unscheduled) != 1 || got.Unscheduled[0] != "spare" {
		t.Fatalf("unscheduled = %v", got.Unscheduled)
	}
	if len(got.WorkshopGroups) != 1 || got.WorkshopGroups[0].DateRange != "Monday, 10 June 2024" {
		t.Fatalf("workshop groups = %+v", got.WorkshopGroups)
	}
}

func TestScheduleEndpointErrors(t *testing.T) {
	h := newTestServer(t, nil, nil).Handler()
	tests := []struct {
		path string
		code int
	}{
		{"/api/schedule/abc", http.StatusBadRequest},
		{"/api/schedule/1999", http.StatusNotFound},
		{"/api/schedule/2024/sessions/nope", http.StatusNotFound},
		{"/schedule/2024.txt", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if rec := get(t, h, tt.path); rec.Code != tt.code {
				t.Fatalf("GET %s = %d, want %d", tt.path, rec.Code, tt.code)
			}
		})
	}
}

func TestWorkshopsAndSessionEndpoints(t *testing.T) {
	h := newTestServer(t, nil, nil).Handler()

	var ws workshopsResponse
	rec := get(t, h, "/api/schedule/2024/workshops")
	if err := json.Unmarshal(rec.Body.Bytes(), &ws); err != nil {
		t.Fatalf("decode workshops: %v", err)
	}
	if len(ws.Groups) != 1 || ws.Groups[0].Name != "Workshops" || ws.Groups[0].Workshops[0].Slug != "go-workshop" {
		t.Fatalf("unexpected workshops: %+v", ws)
	}

	var detail sessionDetailDTO
	rec = get(t, h, "/api/schedule/2024/sessions/talk")
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if detail.Abstract != "About things." || detail.DurationMinutes != 60 || len(detail.Speakers) != 1 {
		t.Fatalf("unexpected detail: %+v", detail)
	}
	if detail.Speakers[0].ProfilePicPath != "/static/img/profiles/placeholder_face.png" {
		t.Fatalf("profile pic path = %q", detail.Speakers[0].ProfilePicPath)
	}
}

func TestICSEndpoint(t *testing.T) {
	h := newTestServer(t, nil, nil).Handler()
	rec := get(t, h, "/schedule/2024.ics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Fatalf("content type = %q", ct)
	}
	if body := rec.Body.String(); !strings.Contains(body, "BEGIN:VCALENDAR") || strings.Count(body, "BEGIN:VEVENT") != 2 {
		t.Fatalf("unexpected calendar:\n%s", body)
	}
}

func TestBasicAuth(t *testing.T) {
	h := newTestServer(t, &config.BasicAuthConfig{Username: "admin", Password: "secret"}, nil).Handler()

	if rec := get(t, h, "/health"); rec.Code != http.StatusOK {
		t.Fatalf("/health must stay open, got %d", rec.Code)
	}
	if rec := get(t, h, "/api/years"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/years", nil)
	req.SetBasicAuth("admin", "secret")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with credentials, got %d", rec.Code)
	}
}

func TestRefreshEndpoint(t *testing.T) {
	calls := 0
	fail := false
	h := newTestServer(t, nil, func(ctx context.Context) error {
		calls++
		if fail {
			return errors.New("boom")
		}
		return nil
	}).Handler()

	post := func() int {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/refresh", nil))
		return rec.Code
	}
	if code := post(); code != http.StatusOK {
		t.Fatalf("refresh = %d", code)
	}
	fail = true
	if code := post(); code != http.StatusInternalServerError {
		t.Fatalf("failing refresh = %d", code)
	}
	if calls != 2 {
		t.Fatalf("refresh called %d times", calls)
	}

	noRefresh := newTestServer(t, nil, nil).Handler()
	rec := httptest.NewRecorder()
	noRefresh.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/refresh", nil))
	if rec.Code == http.StatusOK {
		t.Fatal("refresh must not be served without a refresh func")
	}
}
