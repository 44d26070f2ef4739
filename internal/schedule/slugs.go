package schedule

import (
	"strconv"

	"confsched/internal/model"
	"confsched/internal/textutil"
)

// slugResolver hands out slugs for one build. It is never shared between
// builds, so schedules for different years cannot see each other's slugs.
type slugResolver struct {
	bySlug   map[string]*model.SessionInstance
	reusable map[string]int
}

func newSlugResolver() *slugResolver {
	return &slugResolver{
		bySlug:   make(map[string]*model.SessionInstance),
		reusable: make(map[string]int),
	}
}

// baseSlug is the explicit slug if the record has one, else the
// normalized title. Titles with nothing sluggable fall back to the id.
func baseSlug(data *model.SessionData) string {
	if data.Slug != "" {
		return data.Slug
	}
	if s := textutil.Slugify(data.Title); s != "" {
		return s
	}
	if s := textutil.Slugify(data.ID); s != "" {
		return s
	}
	return data.ID
}

// resolve returns the instance to place for one grid occurrence of data.
// candidate is the freshly built instance for this occurrence. extend is
// true when an existing multi instance was returned and its end time
// should be pushed out to candidate's end.
func (r *slugResolver) resolve(data *model.SessionData, candidate *model.SessionInstance) (inst *model.SessionInstance, extend bool, err error) {
	slug := baseSlug(data)
	if data.Reusable {
		r.reusable[slug]++
		slug = slug + "-" + strconv.Itoa(r.reusable[slug])
	}

	if existing, ok := r.bySlug[slug]; ok {
		if data.Multi {
			return existing, true, nil
		}
		return nil, false, &DuplicateSlugError{Slug: slug, ExistingID: existing.ID, SessionID: data.ID}
	}

	candidate.Slug = slug
	r.bySlug[slug] = candidate
	return candidate, false, nil
}

// sessionsBySlug returns the registered instances.
func (r *slugResolver) sessionsBySlug() map[string]*model.SessionInstance {
	out := make(map[string]*model.SessionInstance, len(r.bySlug))
	for k, v := range r.bySlug {
		out[k] = v
	}
	return out
}
