package schedule

import (
	"strings"

	appLog "confsched/internal/log"
	"confsched/internal/model"
	"confsched/internal/sessions"
)

// builder owns all mutable state of a single Build call.
type builder struct {
	registry  *sessions.Registry
	roomNames []string
	slugs     *slugResolver
}

func newBuilder(registry *sessions.Registry, roomNames []string) *builder {
	return &builder{
		registry:  registry,
		roomNames: roomNames,
		slugs:     newSlugResolver(),
	}
}

func (b *builder) readDays(days []DayDescriptor) ([]*model.Day, error) {
	out := make([]*model.Day, 0, len(days))
	for _, dd := range days {
		day, err := b.readDay(dd)
		if err != nil {
			return nil, err
		}
		out = append(out, day)
	}
	return out, nil
}

func (b *builder) readDay(dd DayDescriptor) (*model.Day, error) {
	for _, room := range dd.Rooms {
		if room < 0 || room >= len(b.roomNames) {
			return nil, &InvalidRoomIndexError{Day: dd.Day, Index: room, Rooms: len(b.roomNames)}
		}
	}

	day := &model.Day{
		DayNum:         dd.DayNum,
		Name:           dd.Day,
		Date:           dd.Date,
		DateStr:        dd.Date.Format("2 January 2006"),
		DateComponents: [3]int{dd.Date.Year(), int(dd.Date.Month()) - 1, dd.Date.Day()},
		Type:           orDefault(dd.Type, "normal"),
		Label:          dd.Label,
		AltLabel:       dd.AltLabel,
		Rooms:          append([]int(nil), dd.Rooms...),
	}

	for _, td := range dd.Timeslots {
		ts, err := b.readTimeslot(day, td)
		if err != nil {
			return nil, err
		}
		day.Timeslots = append(day.Timeslots, ts)
	}
	return day, nil
}

func (b *builder) readTimeslot(day *model.Day, td TimeslotDescriptor) (*model.Timeslot, error) {
	start, end, err := parsePair(td.Time)
	if err != nil {
		return nil, err
	}

	ts := &model.Timeslot{
		Type: orDefault(td.Type, "sessions"),
	}
	for index, entry := range td.Sessions {
		live := index < len(td.Live) && td.Live[index] == 1
		slot, err := b.readSessionSlot(day, index, entry, start, end, live)
		if err != nil {
			return nil, err
		}
		ts.SessionSlots = append(ts.SessionSlots, slot)
	}

	slotCount := len(ts.SessionSlots)
	if slotCount > 1 && slotCount != len(day.Rooms) {
		return nil, &RoomCountMismatchError{Day: day.Name, Time: start, Rooms: len(day.Rooms), Slots: slotCount}
	}

	times := []model.Time{start, end}
	for _, slot := range ts.SessionSlots {
		times = append(times, slot.Times...)
	}
	ts.Times = model.UniqueSorted(times)

	for _, slot := range ts.SessionSlots {
		slot.StartTimeIndex = model.IndexOf(ts.Times, slot.Times[0])
		slot.EndTimeIndex = model.IndexOf(ts.Times, slot.Times[len(slot.Times)-1])
	}
	return ts, nil
}

// placement is one grid occurrence of an instance: the times it occupies
// in this row and whether it continues an instance placed earlier.
type placement struct {
	inst       *model.SessionInstance
	start, end model.Time
	continued  bool
}

func (b *builder) readSessionSlot(day *model.Day, index int, entry RoomEntry, start, end model.Time, live bool) (*model.SessionSlot, error) {
	slot := &model.SessionSlot{Index: index}

	var placed []placement
	if !entry.IsExplicit() {
		p, err := b.makeSession(day, entry.SessionID, start, end, live)
		if err != nil {
			return nil, err
		}
		placed = append(placed, p)
	} else {
		for _, sub := range entry.Slots {
			subStart, subEnd := start, end
			if len(sub.Time) > 0 {
				var err error
				if subStart, subEnd, err = parsePair(sub.Time); err != nil {
					return nil, err
				}
			}
			p, err := b.makeSession(day, sub.Session, subStart, subEnd, live)
			if err != nil {
				return nil, err
			}
			placed = append(placed, p)
		}
	}

	// The room's local axis: occurrence boundaries inside the nominal slot.
	var times []model.Time
	for _, p := range placed {
		for _, t := range []model.Time{p.start, p.end} {
			if t.Within(start, end) {
				times = append(times, t)
			}
		}
	}
	// Occurrences overhanging both ends leave fewer than two points; the
	// axis always spans at least the nominal slot.
	if len(times) < 2 {
		times = append(times, start, end)
	}
	slot.Times = model.UniqueSorted(times)

	last := len(slot.Times) - 1
	for _, p := range placed {
		span := model.Span{
			StartTimeIndex: model.IndexOf(slot.Times, p.start),
			EndTimeIndex:   model.IndexOf(slot.Times, p.end),
		}
		if span.StartTimeIndex < 0 {
			appLog.Debug("start time outside room axis; clamping", "slug", p.inst.Slug, "start", p.start, "day", day.Name)
			span.StartTimeIndex = 0
		}
		if span.EndTimeIndex < 0 {
			appLog.Debug("end time outside room axis; clamping", "slug", p.inst.Slug, "end", p.end, "day", day.Name)
			span.EndTimeIndex = last
		}
		if !p.continued {
			p.inst.StartTimeIndex = span.StartTimeIndex
			p.inst.EndTimeIndex = span.EndTimeIndex
		}
		slot.Sessions = append(slot.Sessions, p.inst)
		slot.Spans = append(slot.Spans, span)
	}
	return slot, nil
}

// makeSession resolves one grid occurrence to its instance.
func (b *builder) makeSession(day *model.Day, id string, start, end model.Time, live bool) (placement, error) {
	data, ok := b.registry.Get(id)
	if !ok {
		return placement{}, &UnknownSessionReferenceError{SessionID: id, Day: day.Name}
	}

	candidate := &model.SessionInstance{
		ID:        id,
		Live:      live,
		Data:      data,
		StartTime: start,
		EndTime:   end,
	}
	inst, extend, err := b.slugs.resolve(data, candidate)
	if err != nil {
		return placement{}, err
	}
	if extend {
		inst.EndTime = end
	}
	data.Scheduled = true
	return placement{inst: inst, start: start, end: end, continued: extend}, nil
}

func parsePair(pair []string) (model.Time, model.Time, error) {
	if len(pair) != 2 {
		return model.Time{}, model.Time{}, &model.InvalidTimeFormatError{Value: strings.Join(pair, ",")}
	}
	start, err := model.ParseTime(pair[0])
	if err != nil {
		return model.Time{}, model.Time{}, err
	}
	end, err := model.ParseTime(pair[1])
	if err != nil {
		return model.Time{}, model.Time{}, err
	}
	return start, end, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
