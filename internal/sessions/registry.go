package sessions

import (
	"path"
	"slices"
	"strconv"
	"strings"

	appLog "confsched/internal/log"
	"confsched/internal/model"
)

// Options controls how merged records become registry entries.
type Options struct {
	// Year scopes speaker image paths ("/static/img/profiles/<year>/...").
	Year int
	// ImageBase is the site path under which images live. Defaults to
	// "/static/img".
	ImageBase string
}

func (o Options) imageBase() string {
	if o.ImageBase == "" {
		return "/static/img"
	}
	return o.ImageBase
}

// Registry is the merged set of sessions for one build, keyed by id.
type Registry struct {
	byID     map[string]*model.SessionData
	order    []string
	speakers []*model.Speaker
}

// Merge folds sources and converts the result into a Registry.
func Merge(sources [][]RawSession, opts Options) (*Registry, error) {
	merged, err := Fold(sources)
	if err != nil {
		return nil, err
	}
	return NewRegistry(merged, opts), nil
}

// NewRegistry converts folded records into typed entries. The records are
// expected to come from Fold, so ids are present and unique.
func NewRegistry(merged []RawSession, opts Options) *Registry {
	r := &Registry{
		byID:  make(map[string]*model.SessionData, len(merged)),
		order: make([]string, 0, len(merged)),
	}
	seenSpeaker := make(map[string]struct{})
	for _, rec := range merged {
		data := convertSession(rec, opts)
		if _, dup := r.byID[data.ID]; dup {
			continue
		}
		r.byID[data.ID] = data
		r.order = append(r.order, data.ID)
		for _, sp := range data.Speakers {
			if _, ok := seenSpeaker[sp.ID]; ok {
				continue
			}
			seenSpeaker[sp.ID] = struct{}{}
			r.speakers = append(r.speakers, sp)
		}
	}
	return r
}

// Get returns the entry for id.
func (r *Registry) Get(id string) (*model.SessionData, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// IDs lists session ids in first-seen order.
func (r *Registry) IDs() []string {
	return slices.Clone(r.order)
}

func (r *Registry) Len() int { return len(r.order) }

// Speakers lists the first profile seen for each speaker id.
func (r *Registry) Speakers() []*model.Speaker {
	return slices.Clone(r.speakers)
}

// ByID returns a copy of the id -> entry map.
func (r *Registry) ByID() map[string]*model.SessionData {
	out := make(map[string]*model.SessionData, len(r.byID))
	for k, v := range r.byID {
		out[k] = v
	}
	return out
}

func convertSession(rec RawSession, opts Options) *model.SessionData {
	d := &model.SessionData{
		ID:            idOf(rec.ID),
		Title:         deref(rec.Title),
		Abstract:      deref(rec.Abstract),
		Outline:       deref(rec.Outline),
		Length:        deref(rec.Length),
		Audience:      slices.Clone(rec.Audience),
		Tags:          slices.Clone(rec.Tags),
		Multi:         rec.Multi != nil && *rec.Multi,
		Reusable:      rec.Reusable != nil && *rec.Reusable,
		Track:         deref(rec.Track),
		Slug:          deref(rec.Slug),
		HeaderImage:   deref(rec.HeaderImage),
		LeadPresenter: deref(rec.LeadPresenter),
	}

	kind, ok := model.ParseSessionKind(deref(rec.Type))
	if !ok {
		appLog.Warn("unknown session type; treating as session", "id", d.ID, "type", deref(rec.Type))
	}
	d.Kind = kind

	for _, sp := range rec.Speakers {
		d.Speakers = append(d.Speakers, convertSpeaker(sp, opts))
	}
	if len(d.Speakers) > 1 && d.LeadPresenter != "" {
		slices.SortStableFunc(d.Speakers, func(a, b *model.Speaker) int {
			return leadRank(a, d.LeadPresenter) - leadRank(b, d.LeadPresenter)
		})
	}

	d.SpeakerNames = joinNames(d.Speakers)
	d.TitleWithNames = d.Title
	if d.SpeakerNames != "" {
		d.TitleWithNames = d.Title + " - " + d.SpeakerNames
	}
	d.LengthDescription = lengthDescription(d.Length, d.Kind)
	d.SpeakerImage = speakerImage(d.Speakers)
	d.HeaderImagePath = headerImagePath(d, opts)
	return d
}

func convertSpeaker(rec RawSpeaker, opts Options) *model.Speaker {
	sp := &model.Speaker{
		ID:           idOf(rec.ID),
		Name:         deref(rec.Name),
		FriendlyName: deref(rec.FriendlyName),
		Bio:          deref(rec.Bio),
		Links:        slices.Clone(rec.Links),
		ProfilePic:   deref(rec.ProfilePic),
		HeaderImage:  deref(rec.HeaderImage),
		TintShade:    deref(rec.TintShade),
	}
	if c := rec.TintColour; c != nil {
		sp.TintColour = &model.Colour{
			Red:   deref(c.Red),
			Green: deref(c.Green),
			Blue:  deref(c.Blue),
			Alpha: deref(c.Alpha),
		}
	}
	if rec.Bio == nil {
		sp.Bio = model.PlaceholderBio
		appLog.Warn("no bio found for speaker; defaulting", "speaker", sp.Name, "id", sp.ID)
	}

	year := strconv.Itoa(opts.Year)
	if sp.ProfilePic == "" {
		sp.ProfilePic = model.PlaceholderProfilePic
	}
	if sp.HasRealProfilePic() {
		sp.ProfilePicPath = path.Join(opts.imageBase(), "profiles", year, sp.ProfilePic)
	} else {
		sp.ProfilePicPath = path.Join(opts.imageBase(), "profiles", model.PlaceholderProfilePic)
	}
	if sp.HeaderImage != "" {
		sp.HeaderImagePath = path.Join(opts.imageBase(), "profiles", year, sp.HeaderImage)
	}
	return sp
}

func leadRank(sp *model.Speaker, lead string) int {
	if sp.ID == lead {
		return 0
	}
	return 1
}

// joinNames renders "A", "A & B" or "A, B & C".
func joinNames(speakers []*model.Speaker) string {
	names := make([]string, 0, len(speakers))
	for _, sp := range speakers {
		names = append(names, sp.Name)
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " & " + names[len(names)-1]
	}
}

func lengthDescription(length string, kind model.SessionKind) string {
	if _, err := strconv.Atoi(length); err == nil {
		return length + " minute " + kind.String()
	}
	return length
}

func speakerImage(speakers []*model.Speaker) string {
	for _, sp := range speakers {
		if sp.HasRealProfilePic() {
			return sp.ProfilePicPath
		}
	}
	return ""
}

func headerImagePath(d *model.SessionData, opts Options) string {
	if d.HeaderImage != "" {
		return path.Join(opts.imageBase(), d.HeaderImage)
	}
	image := ""
	for _, sp := range d.Speakers {
		if sp.HeaderImagePath == "" {
			continue
		}
		if image == "" {
			image = sp.HeaderImagePath
			continue
		}
		appLog.Warn("multiple speakers have header images; selecting the first one", "id", d.ID, "speaker", sp.ID)
	}
	return image
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
