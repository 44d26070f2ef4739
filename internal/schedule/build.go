// Package schedule assembles a conference schedule: it resolves every grid
// entry of a descriptor against the merged session registry, builds the
// Day / Timeslot / SessionSlot tree and derives workshop groupings.
package schedule

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	appLog "confsched/internal/log"
	"confsched/internal/model"
	"confsched/internal/sessions"
	"confsched/internal/source"
)

// Input is everything one Build needs.
type Input struct {
	Year int
	// Sources are session record lists in override order.
	Sources    [][]sessions.RawSession
	Descriptor *Descriptor
	// WorkshopsOnly keeps only days whose label mentions workshops.
	WorkshopsOnly bool
	// ImageBase is passed to the registry for image paths.
	ImageBase string
}

// Reader resolves a location (path or URL) to its content.
type Reader interface {
	Read(ctx context.Context, location string) ([]byte, error)
}

// LoadInput reads a descriptor and session sources from local files.
func LoadInput(year int, descriptorPath string, sessionPaths ...string) (Input, error) {
	return LoadInputFrom(context.Background(), source.NewFetcher(""), year, descriptorPath, sessionPaths...)
}

// LoadInputFrom reads a descriptor and session sources through rd.
func LoadInputFrom(ctx context.Context, rd Reader, year int, descriptorLoc string, sessionLocs ...string) (Input, error) {
	if descriptorLoc == "" {
		return Input{}, errors.New("schedule: descriptor path is empty")
	}
	if len(sessionLocs) == 0 {
		return Input{}, errors.New("schedule: no session sources")
	}
	data, err := rd.Read(ctx, descriptorLoc)
	if err != nil {
		return Input{}, err
	}
	desc, err := DecodeDescriptor(bytes.NewReader(data))
	if err != nil {
		return Input{}, fmt.Errorf("%s: %w", descriptorLoc, err)
	}
	sources := make([][]sessions.RawSession, 0, len(sessionLocs))
	for _, loc := range sessionLocs {
		data, err := rd.Read(ctx, loc)
		if err != nil {
			return Input{}, err
		}
		records, err := sessions.Decode(bytes.NewReader(data))
		if err != nil {
			return Input{}, fmt.Errorf("%s: %w", loc, err)
		}
		sources = append(sources, records)
	}
	return Input{Year: year, Sources: sources, Descriptor: desc}, nil
}

// Build runs merge -> registry -> grid -> links -> workshop groups and
// returns the finished schedule. Any structural problem aborts the build;
// no partial schedule is returned.
func Build(in Input) (*model.Schedule, error) {
	if in.Descriptor == nil {
		return nil, errors.New("schedule: descriptor is nil")
	}

	registry, err := sessions.Merge(in.Sources, sessions.Options{Year: in.Year, ImageBase: in.ImageBase})
	if err != nil {
		return nil, err
	}

	dayDescs := in.Descriptor.Days
	if in.WorkshopsOnly {
		dayDescs = workshopDays(dayDescs)
	}

	b := newBuilder(registry, in.Descriptor.RoomNames)
	days, err := b.readDays(dayDescs)
	if err != nil {
		return nil, fmt.Errorf("schedule %d: %w", in.Year, err)
	}

	tracks := buildTracks(in.Descriptor.Tracks)
	if err := b.link(days, tracks); err != nil {
		return nil, fmt.Errorf("schedule %d: %w", in.Year, err)
	}

	groups, err := groupWorkshops(days)
	if err != nil {
		return nil, fmt.Errorf("schedule %d: %w", in.Year, err)
	}

	speakers := make(map[string]*model.Speaker)
	for _, sp := range registry.Speakers() {
		speakers[sp.ID] = sp
	}

	sched := &model.Schedule{
		Year:            in.Year,
		RoomNames:       append([]string(nil), in.Descriptor.RoomNames...),
		DefaultHeader:   in.Descriptor.DefaultHeader,
		Days:            days,
		Tracks:          tracks,
		SessionsBySlug:  b.slugs.sessionsBySlug(),
		AllSessionsByID: registry.ByID(),
		SpeakersByID:    speakers,
		WorkshopGroups:  groups,
	}

	appLog.Info("schedule built",
		"year", in.Year,
		"days", len(sched.Days),
		"sessions", len(sched.AllSessionsByID),
		"slugs", len(sched.SessionsBySlug),
		"speakers", len(sched.SpeakersByID),
		"workshop_groups", len(sched.WorkshopGroups),
	)
	return sched, nil
}

// BuildFiles is LoadInput followed by Build.
func BuildFiles(year int, workshopsOnly bool, imageBase, descriptorPath string, sessionPaths ...string) (*model.Schedule, error) {
	in, err := LoadInput(year, descriptorPath, sessionPaths...)
	if err != nil {
		return nil, err
	}
	in.WorkshopsOnly = workshopsOnly
	in.ImageBase = imageBase
	return Build(in)
}

func workshopDays(days []DayDescriptor) []DayDescriptor {
	var out []DayDescriptor
	for _, d := range days {
		if strings.Contains(strings.ToLower(d.Label), "workshop") {
			out = append(out, d)
		}
	}
	return out
}
