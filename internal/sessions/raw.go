// Package sessions folds session-data sources (the main sessions file and
// any override files) into one registry keyed by session id.
package sessions

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"confsched/internal/model"
)

// RawSession is a session record as it appears in a source file. Every
// field is optional so that an override file can carry just the fields it
// changes; nil means "not present in this source".
type RawSession struct {
	ID            *string      `yaml:"id"`
	Title         *string      `yaml:"title,omitempty"`
	Abstract      *string      `yaml:"abstract,omitempty"`
	Outline       *string      `yaml:"outline,omitempty"`
	Length        *string      `yaml:"length,omitempty"`
	Audience      []string     `yaml:"audience,omitempty"`
	Tags          []string     `yaml:"tags,omitempty"`
	Type          *string      `yaml:"type,omitempty"`
	Multi         *bool        `yaml:"multi,omitempty"`
	Reusable      *bool        `yaml:"reusable,omitempty"`
	Track         *string      `yaml:"track,omitempty"`
	Slug          *string      `yaml:"slug,omitempty"`
	HeaderImage   *string      `yaml:"header_image,omitempty"`
	LeadPresenter *string      `yaml:"lead_presenter,omitempty"`
	Speakers      []RawSpeaker `yaml:"speakers,omitempty"`
}

// RawSpeaker is a speaker entry nested in a RawSession.
type RawSpeaker struct {
	ID           *string       `yaml:"id"`
	Name         *string       `yaml:"name,omitempty"`
	FriendlyName *string       `yaml:"friendly_name,omitempty"`
	Bio          *string       `yaml:"bio,omitempty"`
	Links        []model.Link  `yaml:"links,omitempty"`
	ProfilePic   *string       `yaml:"profile_pic,omitempty"`
	HeaderImage  *string       `yaml:"header_image,omitempty"`
	TintColour   *RawColour    `yaml:"tint_colour,omitempty"`
	TintShade    *string       `yaml:"tint_shade,omitempty"`
}

// RawColour is a tint as written in a source. Channels are optional so an
// override can change one without restating the others.
type RawColour struct {
	Red   *float64 `yaml:"red,omitempty"`
	Green *float64 `yaml:"green,omitempty"`
	Blue  *float64 `yaml:"blue,omitempty"`
	Alpha *float64 `yaml:"alpha,omitempty"`
}

// MissingIDError reports a session or speaker record without an id.
type MissingIDError struct {
	// Source is the zero-based index of the source list.
	Source int
	// Index is the record's position within the source.
	Index int
	// SessionID is set when the record missing an id is a speaker.
	SessionID string
}

func (e *MissingIDError) Error() string {
	if e.SessionID != "" {
		return fmt.Sprintf("sessions: speaker %d of session %q in source %d has no id", e.Index, e.SessionID, e.Source)
	}
	return fmt.Sprintf("sessions: record %d in source %d has no id", e.Index, e.Source)
}

// Decode reads a YAML sequence of session records.
func Decode(r io.Reader) ([]RawSession, error) {
	var out []RawSession
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("sessions: decode: %w", err)
	}
	return out, nil
}

// LoadFile decodes one session source file.
func LoadFile(path string) ([]RawSession, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	records, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// LoadFiles decodes sources in override order.
func LoadFiles(paths ...string) ([][]RawSession, error) {
	sources := make([][]RawSession, 0, len(paths))
	for _, p := range paths {
		records, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		sources = append(sources, records)
	}
	return sources, nil
}

func idOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
