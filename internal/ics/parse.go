package ics

import (
	"errors"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "confsched/internal/log"
)

// Event is one VEVENT read back from a schedule feed. Recurrence is kept
// as the raw RRULE; Expand turns it into occurrences.
type Event struct {
	UID         string
	Summary     string
	Description string
	Location    string
	URL         string
	Categories  []string

	Start time.Time
	End   time.Time

	RawRRule string
}

// Parse reads a feed produced by Export (or any calendar of timed events).
// Events that cannot be read are logged and skipped.
func Parse(r io.Reader) ([]Event, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0)
	for _, comp := range cal.Events() {
		ev, perr := parseVEvent(comp)
		if perr != nil {
			appLog.Warn("ics vevent skipped", "error", perr.Error())
			continue
		}
		events = append(events, ev)
	}

	appLog.Debug("ics parse completed", "event_count", len(events))
	return events, nil
}

func parseVEvent(ve *ical.VEvent) (Event, error) {
	var out Event

	uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uidProp == nil || uidProp.Value == "" {
		return out, errors.New("missing UID")
	}
	out.UID = uidProp.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		out.Description = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		out.Location = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyUrl); p != nil {
		out.URL = p.Value
	}
	for _, p := range ve.GetProperties(ical.ComponentPropertyCategories) {
		for _, c := range strings.Split(p.Value, ",") {
			if c = strings.TrimSpace(c); c != "" {
				out.Categories = append(out.Categories, c)
			}
		}
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return out, err
	}
	end, err := ve.GetEndAt()
	if err != nil {
		return out, err
	}
	if end.Before(start) {
		return out, errors.New("DTEND before DTSTART")
	}
	out.Start = start
	out.End = end

	if rruleProp := ve.GetProperty(ical.ComponentPropertyRrule); rruleProp != nil {
		out.RawRRule = rruleProp.Value
	}

	return out, nil
}
