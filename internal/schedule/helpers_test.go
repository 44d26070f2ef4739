package schedule

import (
	"testing"
	"time"

	"confsched/internal/model"
	"confsched/internal/sessions"
)

func strp(s string) *string { return &s }
func boolp(b bool) *bool    { return &b }

type recOpt func(*sessions.RawSession)

func reusable() recOpt { return func(r *sessions.RawSession) { r.Reusable = boolp(true) } }
func multi() recOpt    { return func(r *sessions.RawSession) { r.Multi = boolp(true) } }
func kind(k string) recOpt {
	return func(r *sessions.RawSession) { r.Type = strp(k) }
}
func slug(s string) recOpt  { return func(r *sessions.RawSession) { r.Slug = strp(s) } }
func track(s string) recOpt { return func(r *sessions.RawSession) { r.Track = strp(s) } }

func rec(id, title string, opts ...recOpt) sessions.RawSession {
	r := sessions.RawSession{ID: strp(id), Title: strp(title)}
	for _, o := range opts {
		o(&r)
	}
	return r
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func row(start, end string, ids ...string) TimeslotDescriptor {
	ts := TimeslotDescriptor{Time: []string{start, end}}
	for _, id := range ids {
		ts.Sessions = append(ts.Sessions, RoomEntry{SessionID: id})
	}
	return ts
}

func mustBuild(t *testing.T, in Input) *model.Schedule {
	t.Helper()
	s, err := Build(in)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	return s
}

func times(ss ...string) []model.Time {
	out := make([]model.Time, 0, len(ss))
	for _, s := range ss {
		out = append(out, model.MustParseTime(s))
	}
	return out
}

func equalTimes(a, b []model.Time) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
