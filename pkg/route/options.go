package route

import (
	"slices"

	"github.com/matzehuels/starroute/pkg/catalog"
	"github.com/matzehuels/starroute/pkg/errors"
)

// Options controls route selection.
type Options struct {
	// Stars is the route size. Defaults to catalog.DefaultRouteSize.
	Stars int `json:"stars,omitempty"`

	// MaxUpperLevelStars caps the stars taken from upstairs and tippy.
	// Nil means no cap beyond Stars.
	MaxUpperLevelStars *int `json:"max_upper_level_stars,omitempty"`

	// ExcludeCourseIDs removes every star of these courses.
	ExcludeCourseIDs []string `json:"exclude_course_ids,omitempty"`

	// ExcludeStarIDs removes individual stars.
	ExcludeStarIDs []string `json:"exclude_star_ids,omitempty"`

	// Refresh skips the cache lookup; the new result is still stored.
	Refresh bool `json:"-"`
}

// Quota returns the upper level limit, applying the default.
func (o Options) Quota() int {
	if o.MaxUpperLevelStars == nil {
		return o.Stars
	}
	return *o.MaxUpperLevelStars
}

// ValidateAndSetDefaults fills in defaults and checks the options against cat.
func (o *Options) ValidateAndSetDefaults(cat *catalog.Catalog) error {
	if o.Stars == 0 {
		o.Stars = catalog.DefaultRouteSize
	}
	if err := errors.ValidateRouteSize(o.Stars); err != nil {
		return err
	}
	if err := errors.ValidateQuota(o.Quota()); err != nil {
		return err
	}

	courses := cat.CourseIDs(true)
	for _, id := range o.ExcludeCourseIDs {
		if err := errors.ValidateCourseID(id); err != nil {
			return err
		}
		if !slices.Contains(courses, id) {
			return errors.New(errors.ErrCodeInvalidExcluded, "unknown course %q", id)
		}
		if id == catalog.CourseOf(catalog.RootStar) {
			return errors.New(errors.ErrCodeInvalidExcluded, "course %s cannot be excluded: every route contains %s", id, catalog.RootStar)
		}
	}

	stars := append(cat.StarIDs(true), cat.HundredCoinIDs()...)
	for _, id := range o.ExcludeStarIDs {
		if err := errors.ValidateStarID(id); err != nil {
			return err
		}
		if !slices.Contains(stars, id) {
			return errors.New(errors.ErrCodeInvalidExcluded, "unknown star %q", id)
		}
	}
	return nil
}

// excluded reports whether id is removed by the options.
func (o Options) excluded(id string) bool {
	return slices.Contains(o.ExcludeStarIDs, id) || slices.Contains(o.ExcludeCourseIDs, catalog.CourseOf(id))
}
