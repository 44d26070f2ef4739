package schedule

import (
	"fmt"

	"confsched/internal/model"
)

// UnknownSessionReferenceError reports a grid entry naming a session id
// that no source defines.
type UnknownSessionReferenceError struct {
	SessionID string
	Day       string
}

func (e *UnknownSessionReferenceError) Error() string {
	return fmt.Sprintf("schedule: no session data for %q (%s)", e.SessionID, e.Day)
}

// DuplicateSlugError reports two sessions that resolve to the same slug
// without either being reusable or multi.
type DuplicateSlugError struct {
	Slug       string
	ExistingID string
	SessionID  string
}

func (e *DuplicateSlugError) Error() string {
	return fmt.Sprintf("schedule: sessions %q and %q have the same slug, %q", e.ExistingID, e.SessionID, e.Slug)
}

// RoomCountMismatchError reports a timeslot whose concurrent sessions do
// not line up with the day's rooms.
type RoomCountMismatchError struct {
	Day   string
	Time  model.Time
	Rooms int
	Slots int
}

func (e *RoomCountMismatchError) Error() string {
	return fmt.Sprintf("schedule: mismatch between number of rooms on %s (%d) and number of sessions at %s (%d)",
		e.Day, e.Rooms, e.Time, e.Slots)
}

// InvalidRoomIndexError reports a day room index outside room_names.
type InvalidRoomIndexError struct {
	Day   string
	Index int
	Rooms int
}

func (e *InvalidRoomIndexError) Error() string {
	return fmt.Sprintf("schedule: room index %d on %s is outside room_names (%d rooms)", e.Index, e.Day, e.Rooms)
}

// MissingDayAssociationError reports a session instance that is not linked
// to any day when its date range is needed.
type MissingDayAssociationError struct {
	Slug string
}

func (e *MissingDayAssociationError) Error() string {
	return fmt.Sprintf("schedule: session %q has no day", e.Slug)
}
