package web

import (
	"sort"

	"confsched/internal/model"
)

// The schedule tree links instances back to their days, so responses are
// flattened into these shapes instead of encoding model types directly.

type yearsResponse struct {
	Years []int `json:"years"`
}

type workshopsResponse struct {
	Year   int                `json:"year"`
	Groups []workshopGroupDTO `json:"groups"`
}

type scheduleDTO struct {
	Year           int                `json:"year"`
	RoomNames      []string           `json:"room_names"`
	DefaultHeader  string             `json:"default_header,omitempty"`
	Tracks         []trackDTO         `json:"tracks"`
	Days           []dayDTO           `json:"days"`
	Speakers       []speakerDTO       `json:"speakers"`
	WorkshopGroups []workshopGroupDTO `json:"workshop_groups"`
	Unscheduled    []string           `json:"unscheduled,omitempty"`
}

type trackDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Colour      string `json:"colour,omitempty"`
}

type dayDTO struct {
	DayNum    int           `json:"day_num"`
	Name      string        `json:"name"`
	Date      string        `json:"date"`
	DateStr   string        `json:"date_str"`
	Type      string        `json:"type"`
	Label     string        `json:"label,omitempty"`
	AltLabel  string        `json:"alt_label,omitempty"`
	Rooms     []string      `json:"rooms"`
	Timeslots []timeslotDTO `json:"timeslots"`
}

type timeslotDTO struct {
	Times []string  `json:"times"`
	Type  string    `json:"type,omitempty"`
	Slots []slotDTO `json:"slots"`
}

type slotDTO struct {
	Index          int           `json:"index"`
	Times          []string      `json:"times"`
	StartTimeIndex int           `json:"start_time_index"`
	EndTimeIndex   int           `json:"end_time_index"`
	Sessions       []instanceDTO `json:"sessions"`
}

type instanceDTO struct {
	Slug              string   `json:"slug"`
	ID                string   `json:"id"`
	Kind              string   `json:"kind"`
	Title             string   `json:"title"`
	TitleWithNames    string   `json:"title_with_names"`
	Live              bool     `json:"live"`
	StartTime         string   `json:"start_time"`
	EndTime           string   `json:"end_time"`
	StartTimeIndex    int      `json:"start_time_index"`
	EndTimeIndex      int      `json:"end_time_index"`
	Room              string   `json:"room,omitempty"`
	Track             string   `json:"track,omitempty"`
	DateRange         string   `json:"date_range"`
	LengthDescription string   `json:"length_description,omitempty"`
	SpeakerIDs        []string `json:"speaker_ids,omitempty"`
}

type sessionDetailDTO struct {
	instanceDTO
	Abstract        string       `json:"abstract,omitempty"`
	Outline         string       `json:"outline,omitempty"`
	Audience        []string     `json:"audience,omitempty"`
	Tags            []string     `json:"tags,omitempty"`
	HeaderImagePath string       `json:"header_image_path,omitempty"`
	SpeakerImage    string       `json:"speaker_image,omitempty"`
	Speakers        []speakerDTO `json:"speakers"`
	DurationMinutes int          `json:"duration_minutes"`
}

type speakerDTO struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	FriendlyName    string        `json:"friendly_name,omitempty"`
	Bio             string        `json:"bio"`
	Links           []model.Link  `json:"links,omitempty"`
	ProfilePicPath  string        `json:"profile_pic_path"`
	HeaderImagePath string        `json:"header_image_path,omitempty"`
	TintColour      *model.Colour `json:"tint_colour,omitempty"`
	TintShade       string        `json:"tint_shade,omitempty"`
}

type workshopGroupDTO struct {
	Name      string        `json:"name"`
	DateRange string        `json:"date_range"`
	Workshops []instanceDTO `json:"workshops"`
}

func newScheduleDTO(s *model.Schedule) scheduleDTO {
	out := scheduleDTO{
		Year:          s.Year,
		RoomNames:     s.RoomNames,
		DefaultHeader: s.DefaultHeader,
		Tracks:        make([]trackDTO, 0, len(s.Tracks)),
		Days:          make([]dayDTO, 0, len(s.Days)),
		Speakers:      make([]speakerDTO, 0, len(s.SpeakersByID)),
	}
	for _, t := range s.Tracks {
		out.Tracks = append(out.Tracks, trackDTO{ID: t.ID, Name: t.Name, Description: t.Description, Colour: t.Colour})
	}
	sort.Slice(out.Tracks, func(i, j int) bool { return out.Tracks[i].ID < out.Tracks[j].ID })

	for _, d := range s.Days {
		out.Days = append(out.Days, newDayDTO(s, d))
	}
	for _, sp := range s.SpeakersByID {
		out.Speakers = append(out.Speakers, newSpeakerDTO(sp))
	}
	sort.Slice(out.Speakers, func(i, j int) bool { return out.Speakers[i].ID < out.Speakers[j].ID })

	out.WorkshopGroups = make([]workshopGroupDTO, 0, len(s.WorkshopGroups))
	for _, g := range s.WorkshopGroups {
		out.WorkshopGroups = append(out.WorkshopGroups, newWorkshopGroupDTO(g))
	}
	for id, data := range s.AllSessionsByID {
		if !data.Scheduled {
			out.Unscheduled = append(out.Unscheduled, id)
		}
	}
	sort.Strings(out.Unscheduled)
	return out
}

func newDayDTO(s *model.Schedule, d *model.Day) dayDTO {
	out := dayDTO{
		DayNum:    d.DayNum,
		Name:      d.Name,
		Date:      d.Date.Format("2006-01-02"),
		DateStr:   d.DateStr,
		Type:      d.Type,
		Label:     d.Label,
		AltLabel:  d.AltLabel,
		Rooms:     make([]string, 0, len(d.Rooms)),
		Timeslots: make([]timeslotDTO, 0, len(d.Timeslots)),
	}
	for _, r := range d.Rooms {
		if r >= 0 && r < len(s.RoomNames) {
			out.Rooms = append(out.Rooms, s.RoomNames[r])
		}
	}
	for _, ts := range d.Timeslots {
		tdto := timeslotDTO{Times: timeStrings(ts.Times), Type: ts.Type, Slots: make([]slotDTO, 0, len(ts.SessionSlots))}
		for _, slot := range ts.SessionSlots {
			sdto := slotDTO{
				Index:          slot.Index,
				Times:          timeStrings(slot.Times),
				StartTimeIndex: slot.StartTimeIndex,
				EndTimeIndex:   slot.EndTimeIndex,
				Sessions:       make([]instanceDTO, 0, len(slot.Sessions)),
			}
			for i, inst := range slot.Sessions {
				idto := newInstanceDTO(inst)
				if i < len(slot.Spans) {
					idto.StartTimeIndex = slot.Spans[i].StartTimeIndex
					idto.EndTimeIndex = slot.Spans[i].EndTimeIndex
				}
				sdto.Sessions = append(sdto.Sessions, idto)
			}
			tdto.Slots = append(tdto.Slots, sdto)
		}
		out.Timeslots = append(out.Timeslots, tdto)
	}
	return out
}

func newInstanceDTO(inst *model.SessionInstance) instanceDTO {
	out := instanceDTO{
		Slug:              inst.Slug,
		ID:                inst.ID,
		Kind:              inst.Data.Kind.String(),
		Title:             inst.Data.Title,
		TitleWithNames:    inst.Data.TitleWithNames,
		Live:              inst.Live,
		StartTime:         inst.StartTime.String(),
		EndTime:           inst.EndTime.String(),
		StartTimeIndex:    inst.StartTimeIndex,
		EndTimeIndex:      inst.EndTimeIndex,
		Room:              inst.Room,
		DateRange:         inst.DateRange,
		LengthDescription: inst.Data.LengthDescription,
	}
	if inst.Track != nil {
		out.Track = inst.Track.ID
	}
	for _, sp := range inst.Data.Speakers {
		out.SpeakerIDs = append(out.SpeakerIDs, sp.ID)
	}
	return out
}

func newSessionDetailDTO(inst *model.SessionInstance) sessionDetailDTO {
	out := sessionDetailDTO{
		instanceDTO:     newInstanceDTO(inst),
		Abstract:        inst.Data.Abstract,
		Outline:         inst.Data.Outline,
		Audience:        inst.Data.Audience,
		Tags:            inst.Data.Tags,
		HeaderImagePath: inst.Data.HeaderImagePath,
		SpeakerImage:    inst.Data.SpeakerImage,
		Speakers:        make([]speakerDTO, 0, len(inst.Data.Speakers)),
		DurationMinutes: inst.DurationMinutes(),
	}
	for _, sp := range inst.Data.Speakers {
		out.Speakers = append(out.Speakers, newSpeakerDTO(sp))
	}
	return out
}

func newSpeakerDTO(sp *model.Speaker) speakerDTO {
	return speakerDTO{
		ID:              sp.ID,
		Name:            sp.Name,
		FriendlyName:    sp.FriendlyName,
		Bio:             sp.Bio,
		Links:           sp.Links,
		ProfilePicPath:  sp.ProfilePicPath,
		HeaderImagePath: sp.HeaderImagePath,
		TintColour:      sp.TintColour,
		TintShade:       sp.TintShade,
	}
}

func newWorkshopGroupDTO(g *model.WorkshopGroup) workshopGroupDTO {
	out := workshopGroupDTO{Name: g.Name, DateRange: g.DateRange, Workshops: make([]instanceDTO, 0, len(g.Workshops))}
	for _, w := range g.Workshops {
		out.Workshops = append(out.Workshops, newInstanceDTO(w))
	}
	return out
}

func timeStrings(ts []model.Time) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.String())
	}
	return out
}
