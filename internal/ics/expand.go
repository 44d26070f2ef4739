package ics

import (
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	appLog "confsched/internal/log"
)

const defaultMaxOccurrencesPerEvent = 64

// Occurrence is one concrete sitting of an event.
type Occurrence struct {
	UID      string
	Summary  string
	Location string
	Start    time.Time
	End      time.Time
}

// ExpandConfig controls recurrence expansion.
type ExpandConfig struct {
	// DisplayLocation is the zone occurrences are converted to. Nil means
	// time.Local.
	DisplayLocation *time.Location
	// MaxOccurrencesPerEvent caps a single RRULE. Zero uses the default.
	MaxOccurrencesPerEvent int
}

// Expand turns events into occurrences ordered by start time. Events with
// an unreadable RRULE fall back to their first sitting.
func Expand(events []Event, cfg ExpandConfig) []Occurrence {
	if cfg.DisplayLocation == nil {
		cfg.DisplayLocation = time.Local
	}
	if cfg.MaxOccurrencesPerEvent <= 0 {
		cfg.MaxOccurrencesPerEvent = defaultMaxOccurrencesPerEvent
	}

	out := make([]Occurrence, 0, len(events))
	for _, ev := range events {
		out = append(out, expandEvent(ev, cfg)...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

func expandEvent(ev Event, cfg ExpandConfig) []Occurrence {
	if ev.RawRRule == "" {
		return []Occurrence{makeOccurrence(ev, ev.Start, ev.End, cfg.DisplayLocation)}
	}

	r, err := rrule.StrToRRule(ev.RawRRule)
	if err != nil {
		appLog.Error("expand: failed to parse RRULE", err, "uid", ev.UID, "rrule", ev.RawRRule)
		return []Occurrence{makeOccurrence(ev, ev.Start, ev.End, cfg.DisplayLocation)}
	}
	r.DTStart(ev.Start)

	starts := r.All()
	if len(starts) > cfg.MaxOccurrencesPerEvent {
		appLog.Warn("expand: truncated occurrences", "uid", ev.UID, "cap", cfg.MaxOccurrencesPerEvent, "total", len(starts))
		starts = starts[:cfg.MaxOccurrencesPerEvent]
	}

	dur := ev.End.Sub(ev.Start)
	out := make([]Occurrence, 0, len(starts))
	for _, s := range starts {
		out = append(out, makeOccurrence(ev, s, s.Add(dur), cfg.DisplayLocation))
	}
	return out
}

func makeOccurrence(ev Event, start, end time.Time, displayLoc *time.Location) Occurrence {
	return Occurrence{
		UID:      ev.UID,
		Summary:  ev.Summary,
		Location: ev.Location,
		Start:    start.In(displayLoc),
		End:      end.In(displayLoc),
	}
}
