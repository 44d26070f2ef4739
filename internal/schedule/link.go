package schedule

import (
	"slices"

	appLog "confsched/internal/log"
	"confsched/internal/model"
)

// link fills the back-references of every instance once the whole tree
// exists: owning days, room name, track and rendered date range. Days are
// visited by day number, so inst.Days is chronological whatever the
// descriptor's order.
func (b *builder) link(days []*model.Day, tracks map[string]*model.Track) error {
	var ordered []*model.SessionInstance
	seen := make(map[*model.SessionInstance]struct{})

	for _, day := range byDayNum(days) {
		for _, ts := range day.Timeslots {
			for _, slot := range ts.SessionSlots {
				for _, inst := range slot.Sessions {
					if n := len(inst.Days); n == 0 || inst.Days[n-1] != day {
						inst.Days = append(inst.Days, day)
					}
					if inst.Room == "" && slot.Index < len(day.Rooms) {
						inst.Room = b.roomNames[day.Rooms[slot.Index]]
					}
					if inst.Track == nil && inst.Data.Track != "" {
						track, ok := tracks[inst.Data.Track]
						if ok {
							inst.Track = track
						} else if _, warned := seen[inst]; !warned {
							appLog.Warn("session names an unknown track", "slug", inst.Slug, "track", inst.Data.Track)
						}
					}
					if _, ok := seen[inst]; !ok {
						seen[inst] = struct{}{}
						ordered = append(ordered, inst)
					}
				}
			}
		}
	}

	for _, inst := range ordered {
		dr, err := formatDateRange(inst)
		if err != nil {
			return err
		}
		inst.DateRange = dr
	}
	return nil
}

// byDayNum returns days sorted by day number, keeping file order for ties.
func byDayNum(days []*model.Day) []*model.Day {
	out := slices.Clone(days)
	slices.SortStableFunc(out, func(a, b *model.Day) int {
		return a.DayNum - b.DayNum
	})
	return out
}

func buildTracks(in map[string]TrackDescriptor) map[string]*model.Track {
	out := make(map[string]*model.Track, len(in))
	for id, td := range in {
		out[id] = &model.Track{
			ID:          id,
			Name:        td.Name,
			Description: td.Description,
			Colour:      td.Colour,
		}
	}
	return out
}
