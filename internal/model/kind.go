package model

import "strings"

// SessionKind classifies a session. The zero value is KindSession.
type SessionKind int

const (
	KindSession SessionKind = iota
	KindWorkshop
	KindBreak
	KindKeynote
	KindSponsored
)

// ParseSessionKind maps the `type` field of a session record. An empty
// string is KindSession; ok is false for values outside the known set.
func ParseSessionKind(s string) (SessionKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "session":
		return KindSession, true
	case "workshop":
		return KindWorkshop, true
	case "break":
		return KindBreak, true
	case "keynote":
		return KindKeynote, true
	case "sponsored":
		return KindSponsored, true
	default:
		return KindSession, false
	}
}

func (k SessionKind) String() string {
	switch k {
	case KindWorkshop:
		return "workshop"
	case KindBreak:
		return "break"
	case KindKeynote:
		return "keynote"
	case KindSponsored:
		return "sponsored"
	default:
		return "session"
	}
}

func (k SessionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// TitlePrefix is prepended to titles in listings.
func (k SessionKind) TitlePrefix() string {
	switch k {
	case KindKeynote:
		return "KEYNOTE: "
	case KindSponsored:
		return "SPONSORED: "
	case KindSession, KindWorkshop, KindBreak:
		return ""
	default:
		return ""
	}
}
