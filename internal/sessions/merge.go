package sessions

// Fold merges sources in order; later sources override earlier ones. The
// result keeps the order in which session ids were first seen. Every
// record of every source is checked for an id before anything is merged.
func Fold(sources [][]RawSession) ([]RawSession, error) {
	if err := validateIDs(sources); err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var merged []RawSession
	for _, source := range sources {
		for _, rec := range source {
			id := *rec.ID
			if i, ok := index[id]; ok {
				merged[i] = MergeSession(merged[i], rec)
				continue
			}
			index[id] = len(merged)
			merged = append(merged, rec)
		}
	}
	return merged, nil
}

func validateIDs(sources [][]RawSession) error {
	for si, source := range sources {
		for ri, rec := range source {
			if idOf(rec.ID) == "" {
				return &MissingIDError{Source: si, Index: ri}
			}
			for spi, sp := range rec.Speakers {
				if idOf(sp.ID) == "" {
					return &MissingIDError{Source: si, Index: spi, SessionID: *rec.ID}
				}
			}
		}
	}
	return nil
}

// MergeSession overlays next on prev. Fields present in next win; the
// speaker lists are merged per speaker id.
func MergeSession(prev, next RawSession) RawSession {
	out := prev
	overlay(&out.ID, next.ID)
	overlay(&out.Title, next.Title)
	overlay(&out.Abstract, next.Abstract)
	overlay(&out.Outline, next.Outline)
	overlay(&out.Length, next.Length)
	overlay(&out.Type, next.Type)
	overlay(&out.Multi, next.Multi)
	overlay(&out.Reusable, next.Reusable)
	overlay(&out.Track, next.Track)
	overlay(&out.Slug, next.Slug)
	overlay(&out.HeaderImage, next.HeaderImage)
	overlay(&out.LeadPresenter, next.LeadPresenter)
	if next.Audience != nil {
		out.Audience = next.Audience
	}
	if next.Tags != nil {
		out.Tags = next.Tags
	}
	if next.Speakers != nil {
		out.Speakers = mergeSpeakers(prev.Speakers, next.Speakers)
	}
	return out
}

// MergeSpeaker overlays next on prev field by field.
func MergeSpeaker(prev, next RawSpeaker) RawSpeaker {
	out := prev
	overlay(&out.ID, next.ID)
	overlay(&out.Name, next.Name)
	overlay(&out.FriendlyName, next.FriendlyName)
	overlay(&out.Bio, next.Bio)
	overlay(&out.ProfilePic, next.ProfilePic)
	overlay(&out.HeaderImage, next.HeaderImage)
	out.TintColour = mergeColour(prev.TintColour, next.TintColour)
	overlay(&out.TintShade, next.TintShade)
	if next.Links != nil {
		out.Links = next.Links
	}
	return out
}

func mergeColour(prev, next *RawColour) *RawColour {
	if next == nil {
		return prev
	}
	if prev == nil {
		return next
	}
	out := *prev
	overlay(&out.Red, next.Red)
	overlay(&out.Green, next.Green)
	overlay(&out.Blue, next.Blue)
	overlay(&out.Alpha, next.Alpha)
	return &out
}

// mergeSpeakers unions two speaker lists by id: existing ids keep their
// position, ids new to the override are appended.
func mergeSpeakers(prev, next []RawSpeaker) []RawSpeaker {
	out := make([]RawSpeaker, 0, len(prev)+len(next))
	index := make(map[string]int, len(prev)+len(next))
	for _, sp := range prev {
		id := idOf(sp.ID)
		if i, ok := index[id]; ok {
			out[i] = MergeSpeaker(out[i], sp)
			continue
		}
		index[id] = len(out)
		out = append(out, sp)
	}
	for _, sp := range next {
		id := idOf(sp.ID)
		if i, ok := index[id]; ok {
			out[i] = MergeSpeaker(out[i], sp)
			continue
		}
		index[id] = len(out)
		out = append(out, sp)
	}
	return out
}

func overlay[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}
