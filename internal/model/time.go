package model

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Time is a wall-clock time of day on a conference grid. It is comparable,
// so it can be used directly as a map key when de-duplicating time axes.
type Time struct {
	Hour   int
	Minute int
}

// InvalidTimeFormatError reports a grid time that is not "H:MM" or "HH:MM".
type InvalidTimeFormatError struct {
	Value string
}

func (e *InvalidTimeFormatError) Error() string {
	return fmt.Sprintf("invalid time: %q", e.Value)
}

// ParseTime parses "9:30" or "09:30".
func ParseTime(s string) (Time, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return Time{}, &InvalidTimeFormatError{Value: s}
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return Time{}, &InvalidTimeFormatError{Value: s}
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return Time{}, &InvalidTimeFormatError{Value: s}
	}
	return Time{Hour: hour, Minute: minute}, nil
}

// MustParseTime is ParseTime for literals known to be valid.
func MustParseTime(s string) Time {
	t, err := ParseTime(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes returns minutes since midnight.
func (t Time) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Compare returns -1, 0 or +1 ordering by (Hour, Minute).
func (t Time) Compare(o Time) int {
	switch {
	case t.Hour < o.Hour:
		return -1
	case t.Hour > o.Hour:
		return 1
	case t.Minute < o.Minute:
		return -1
	case t.Minute > o.Minute:
		return 1
	default:
		return 0
	}
}

func (t Time) Before(o Time) bool { return t.Compare(o) < 0 }
func (t Time) After(o Time) bool  { return t.Compare(o) > 0 }

// Within reports start <= t <= end.
func (t Time) Within(start, end Time) bool {
	return t.Compare(start) >= 0 && t.Compare(end) <= 0
}

func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Time) UnmarshalText(b []byte) error {
	parsed, err := ParseTime(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// UniqueSorted returns the distinct values of times in ascending order.
func UniqueSorted(times []Time) []Time {
	seen := make(map[Time]struct{}, len(times))
	out := make([]Time, 0, len(times))
	for _, t := range times {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	slices.SortFunc(out, Time.Compare)
	return out
}

// IndexOf returns the position of t in times, or -1.
func IndexOf(times []Time, t Time) int {
	return slices.Index(times, t)
}
