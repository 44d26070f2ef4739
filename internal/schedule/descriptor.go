package schedule

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Descriptor is the schedule grid file for one conference year.
type Descriptor struct {
	RoomNames     []string                   `yaml:"room_names"`
	DefaultHeader string                     `yaml:"default_header,omitempty"`
	Tracks        map[string]TrackDescriptor `yaml:"tracks,omitempty"`
	Days          []DayDescriptor            `yaml:"days"`
}

// TrackDescriptor describes a track referenced by session records.
type TrackDescriptor struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Colour      string `yaml:"colour,omitempty"`
}

// DayDescriptor is one day of the grid.
type DayDescriptor struct {
	DayNum    int                  `yaml:"day_num"`
	Day       string               `yaml:"day"`
	Date      time.Time            `yaml:"date"`
	Type      string               `yaml:"type,omitempty"`
	Label     string               `yaml:"label,omitempty"`
	AltLabel  string               `yaml:"alt_label,omitempty"`
	Rooms     []int                `yaml:"rooms"`
	Timeslots []TimeslotDescriptor `yaml:"timeslots"`
}

// TimeslotDescriptor is one grid row: a nominal [start, end] pair and one
// entry per room.
type TimeslotDescriptor struct {
	Time     []string    `yaml:"time"`
	Type     string      `yaml:"type,omitempty"`
	Live     []int       `yaml:"live,omitempty"`
	Sessions []RoomEntry `yaml:"sessions"`
}

// RoomEntry is either a bare session id that fills the nominal slot, or a
// list of sub-entries with their own times.
type RoomEntry struct {
	SessionID string
	Slots     []SubEntry
}

// SubEntry is one back-to-back session inside a room entry.
type SubEntry struct {
	Session string   `yaml:"session"`
	Time    []string `yaml:"time"`
}

// IsExplicit reports the session_slot form.
func (e RoomEntry) IsExplicit() bool { return e.Slots != nil }

// UnmarshalYAML accepts a scalar id or a {session_slot: [...]} mapping.
func (e *RoomEntry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		e.SessionID = node.Value
		e.Slots = nil
		return nil
	case yaml.MappingNode:
		var m map[string]yaml.Node
		if err := node.Decode(&m); err != nil {
			return err
		}
		slotNode, ok := m["session_slot"]
		if !ok || len(m) != 1 {
			keys := make([]string, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			return fmt.Errorf("schedule: line %d: only 'session_slot' key is supported, found %v", node.Line, keys)
		}
		var subs []SubEntry
		if err := slotNode.Decode(&subs); err != nil {
			return err
		}
		if len(subs) == 0 {
			return fmt.Errorf("schedule: line %d: empty session_slot", node.Line)
		}
		e.SessionID = ""
		e.Slots = subs
		return nil
	default:
		return fmt.Errorf("schedule: line %d: unexpected room entry", node.Line)
	}
}

// MarshalYAML mirrors UnmarshalYAML.
func (e RoomEntry) MarshalYAML() (any, error) {
	if e.IsExplicit() {
		return map[string][]SubEntry{"session_slot": e.Slots}, nil
	}
	return e.SessionID, nil
}

// DecodeDescriptor reads a schedule descriptor.
func DecodeDescriptor(r io.Reader) (*Descriptor, error) {
	var d Descriptor
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("schedule: empty descriptor")
		}
		return nil, fmt.Errorf("schedule: decode descriptor: %w", err)
	}
	return &d, nil
}
