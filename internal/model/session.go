package model

// Colour is an RGBA tint, each channel 0.0 - 1.0.
type Colour struct {
	Red   float64 `yaml:"red" json:"red"`
	Green float64 `yaml:"green" json:"green"`
	Blue  float64 `yaml:"blue" json:"blue"`
	Alpha float64 `yaml:"alpha" json:"alpha"`
}

// Link is a speaker's social media, website or blog link.
type Link struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url" json:"url"`
}

// Speaker is a merged speaker profile. Speakers are shared between all
// sessions that list the same speaker id within one build.
type Speaker struct {
	ID           string
	Name         string
	FriendlyName string
	Bio          string
	Links        []Link

	ProfilePic  string
	HeaderImage string
	TintColour  *Colour
	TintShade   string

	// Site paths, resolved against the build year.
	ProfilePicPath  string
	HeaderImagePath string
}

// HasRealProfilePic reports whether the speaker supplied a picture rather
// than getting the placeholder.
func (s *Speaker) HasRealProfilePic() bool {
	return s.ProfilePic != "" && s.ProfilePic != PlaceholderProfilePic
}

const (
	// PlaceholderBio is used when a speaker record has no bio.
	PlaceholderBio = "bio coming soon ..."
	// PlaceholderProfilePic is used when a speaker record has no picture.
	PlaceholderProfilePic = "placeholder_face.png"
)

// SessionData is the merged, typed registry entry for one session id.
// It is shared by every SessionInstance scheduled from it.
type SessionData struct {
	ID       string
	Title    string
	Abstract string
	Outline  string
	Length   string
	Audience []string
	Tags     []string

	Kind     SessionKind
	Multi    bool
	Reusable bool

	// Track is a track id from the schedule descriptor, or empty.
	Track string
	// Slug is the explicit slug from the record, or empty.
	Slug          string
	HeaderImage   string
	LeadPresenter string

	Speakers []*Speaker

	// Scheduled is set once the session has been placed on the grid.
	Scheduled bool

	// Computed when the registry is built.
	SpeakerNames      string
	TitleWithNames    string
	LengthDescription string
	SpeakerImage      string
	HeaderImagePath   string
}

func (d *SessionData) IsWorkshop() bool  { return d.Kind == KindWorkshop }
func (d *SessionData) IsBreak() bool     { return d.Kind == KindBreak }
func (d *SessionData) IsKeynote() bool   { return d.Kind == KindKeynote }
func (d *SessionData) IsSponsored() bool { return d.Kind == KindSponsored }

// TitlePrefix is "KEYNOTE: ", "SPONSORED: " or empty.
func (d *SessionData) TitlePrefix() string { return d.Kind.TitlePrefix() }

// SessionInstance is one occurrence of a SessionData on the grid. Multi
// sessions collapse several grid entries into a single instance.
type SessionInstance struct {
	ID   string
	Live bool
	Data *SessionData

	StartTime Time
	EndTime   Time

	// Indices into the Times of the slot that first placed the instance.
	// Later rows of a multi session keep theirs in SessionSlot.Spans.
	StartTimeIndex int
	EndTimeIndex   int

	Days  []*Day
	Room  string
	Track *Track
	Slug  string

	// DateRange is the human readable span of Days, e.g.
	// "Monday, 10 June - Tuesday, 11 June 2024".
	DateRange string
}

func (s *SessionInstance) IsWorkshop() bool { return s.Data.IsWorkshop() }

// DurationMinutes is the wall-clock length of the instance.
func (s *SessionInstance) DurationMinutes() int {
	return s.EndTime.Minutes() - s.StartTime.Minutes()
}
