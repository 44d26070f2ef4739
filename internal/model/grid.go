package model

import "time"

// Span locates one occurrence on its SessionSlot's Times.
type Span struct {
	StartTimeIndex int
	EndTimeIndex   int
}

// SessionSlot is one room column within a Timeslot. It usually holds a
// single session; several when the room runs back-to-back sub-sessions.
type SessionSlot struct {
	// Index is the position of the room within the day's Rooms.
	Index    int
	Sessions []*SessionInstance
	// Spans parallels Sessions. A multi session continuing from an earlier
	// row shares its instance with that row, so only the span is local.
	Spans []Span
	// Times is this room's local time axis.
	Times []Time

	StartTimeIndex int
	EndTimeIndex   int
}

func (s *SessionSlot) IsSingle() bool { return len(s.Sessions) == 1 }

// Timeslot is one row of a day's grid.
type Timeslot struct {
	// Times is the union of all room axes plus the nominal bounds.
	Times        []Time
	Type         string
	SessionSlots []*SessionSlot
}

// IsTrackless reports a row with one slot spanning every room (breaks,
// keynotes).
func (t *Timeslot) IsTrackless() bool { return len(t.SessionSlots) == 1 }

func (t *Timeslot) HasSpeakers() bool {
	for _, slot := range t.SessionSlots {
		for _, s := range slot.Sessions {
			if len(s.Data.Speakers) > 0 {
				return true
			}
		}
	}
	return false
}

// Day is one conference day.
type Day struct {
	DayNum int
	Name   string
	Date   time.Time
	// DateStr is the long form, e.g. "10 June 2024".
	DateStr string
	// DateComponents is [year, zero-based month, day] for script consumers.
	DateComponents [3]int

	Type     string
	Label    string
	AltLabel string

	// Rooms are indices into Schedule.RoomNames.
	Rooms     []int
	Timeslots []*Timeslot
}

// Track is a thematic grouping named by session records.
type Track struct {
	ID          string
	Name        string
	Description string
	Colour      string
}

// WorkshopGroup clusters workshops that share a rendered date range.
type WorkshopGroup struct {
	Name      string
	DateRange string
	Workshops []*SessionInstance
}

// Schedule is the built artifact for one conference year. It is not
// modified after Build returns.
type Schedule struct {
	Year          int
	RoomNames     []string
	DefaultHeader string
	Days          []*Day
	Tracks        map[string]*Track

	SessionsBySlug  map[string]*SessionInstance
	AllSessionsByID map[string]*SessionData
	SpeakersByID    map[string]*Speaker

	WorkshopGroups []*WorkshopGroup
}

// Instances walks the grid in tree order and returns each instance once.
func (s *Schedule) Instances() []*SessionInstance {
	seen := make(map[*SessionInstance]struct{})
	var out []*SessionInstance
	for _, day := range s.Days {
		for _, ts := range day.Timeslots {
			for _, slot := range ts.SessionSlots {
				for _, inst := range slot.Sessions {
					if _, ok := seen[inst]; ok {
						continue
					}
					seen[inst] = struct{}{}
					out = append(out, inst)
				}
			}
		}
	}
	return out
}
