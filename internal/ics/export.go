// Package ics renders a built schedule as an iCalendar feed and reads such
// feeds back into concrete occurrences.
package ics

import (
	"errors"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	appLog "confsched/internal/log"
	"confsched/internal/model"
)

// uidNamespace scopes generated event UIDs so they stay stable across rebuilds.
var uidNamespace = uuid.MustParse("5b7f3c1e-6f0a-4c61-9a57-2f4d8a0c1e93")

const defaultProductID = "-//confsched//schedule//EN"

// ExportOptions controls feed rendering.
type ExportOptions struct {
	// Location is the conference timezone. Nil means UTC.
	Location *time.Location
	// ProductID overrides the PRODID line.
	ProductID string
	// Stamp is written as DTSTAMP on every event. Zero means now.
	Stamp time.Time
	// BaseURL, when set, adds a URL property pointing at BaseURL/<slug>.
	BaseURL string
}

// Export renders every non-break session of s as VEVENTs. A session held
// on consecutive days becomes one event with a daily RRULE; any other
// multi-day session gets one event per day.
func Export(s *model.Schedule, opts ExportOptions) (string, error) {
	if s == nil {
		return "", errors.New("ics: schedule is nil")
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	stamp := opts.Stamp
	if stamp.IsZero() {
		stamp = time.Now()
	}
	productID := opts.ProductID
	if productID == "" {
		productID = defaultProductID
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(fmt.Sprintf("Conference schedule %d", s.Year))
	cal.SetXWRTimezone(loc.String())

	events := 0
	for _, inst := range s.Instances() {
		if inst.Data.IsBreak() {
			continue
		}
		if len(inst.Days) == 0 {
			return "", fmt.Errorf("ics: session %q has no day", inst.Slug)
		}

		if len(inst.Days) > 1 && consecutive(inst.Days) {
			ev := addEvent(cal, s.Year, inst, inst.Days[0], loc, stamp, opts.BaseURL)
			rule := rrule.ROption{Freq: rrule.DAILY, Count: len(inst.Days)}
			ev.AddRrule(rule.RRuleString())
			events++
			continue
		}
		for _, day := range inst.Days {
			addEvent(cal, s.Year, inst, day, loc, stamp, opts.BaseURL)
			events++
		}
	}

	appLog.Debug("ics export", "year", s.Year, "events", events, "timezone", loc.String())
	return cal.Serialize(), nil
}

func addEvent(cal *ical.Calendar, year int, inst *model.SessionInstance, day *model.Day, loc *time.Location, stamp time.Time, baseURL string) *ical.VEvent {
	ev := cal.AddEvent(eventUID(year, inst.Slug, day))
	ev.SetDtStampTime(stamp)
	ev.SetStartAt(at(day, inst.StartTime, loc))
	ev.SetEndAt(at(day, inst.EndTime, loc))
	ev.SetSummary(inst.Data.TitlePrefix() + inst.Data.TitleWithNames)
	if inst.Data.Abstract != "" {
		ev.SetDescription(strings.TrimSpace(inst.Data.Abstract))
	}
	if inst.Room != "" {
		ev.SetLocation(inst.Room)
	}
	ev.AddProperty(ical.ComponentPropertyCategories, strings.ToUpper(inst.Data.Kind.String()))
	if inst.Track != nil {
		ev.AddProperty(ical.ComponentPropertyCategories, inst.Track.Name)
	}
	if baseURL != "" {
		ev.SetURL(strings.TrimRight(baseURL, "/") + "/" + inst.Slug)
	}
	return ev
}

// eventUID is derived from the year, slug and first date so that a rebuild
// of an unchanged schedule yields identical UIDs.
func eventUID(year int, slug string, day *model.Day) string {
	name := fmt.Sprintf("%d/%s/%s", year, slug, day.Date.Format("2006-01-02"))
	return uuid.NewSHA1(uidNamespace, []byte(name)).String()
}

func at(day *model.Day, t model.Time, loc *time.Location) time.Time {
	y, m, d := day.Date.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, 0, 0, loc)
}

func consecutive(days []*model.Day) bool {
	for i := 1; i < len(days); i++ {
		want := days[i-1].Date.AddDate(0, 0, 1)
		y1, m1, d1 := want.Date()
		y2, m2, d2 := days[i].Date.Date()
		if y1 != y2 || m1 != m2 || d1 != d2 {
			return false
		}
	}
	return true
}
