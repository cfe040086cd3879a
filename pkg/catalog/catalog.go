package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/starroute/pkg/errors"
)

// Castle locations.
const (
	Lobby     = "lobby"     // first floor
	Courtyard = "courtyard" // Big Boo's Haunt only
	Basement  = "basement"  // includes the stage under the moat
	Upstairs  = "upstairs"  // second floor
	Tippy     = "tippy"     // third floor
)

const (
	// CastleID is the pseudo-course holding the castle's secret stars.
	CastleID = "CASTLE"

	// HundredCoinSuffix marks a 100 coin star ID.
	HundredCoinSuffix = "_100"

	// RootStar must be in every route, or be replaced by RootAlternate.
	RootStar      = "DDD1"
	RootAlternate = "DDD_100"

	// DefaultRouteSize is the number of stars in a standard route.
	DefaultRouteSize = 70
)

// Locations lists every castle location.
var Locations = []string{Lobby, Courtyard, Basement, Upstairs, Tippy}

// UpperLevels lists the locations counted against the upper level limit.
var UpperLevels = []string{Upstairs, Tippy}

//go:embed catalog.yaml
var defaultCatalog []byte

// Star is one collectable star.
type Star struct {
	ID       string `yaml:"id" json:"id"`
	Number   int    `yaml:"number" json:"number"`
	Name     string `yaml:"name" json:"name"`
	Location string `yaml:"location" json:"location"`
	Required int    `yaml:"stars_required" json:"stars_required"`
}

// Course is a course and its stars.
type Course struct {
	ID     string `yaml:"id" json:"id"`
	Number int    `yaml:"number" json:"number"`
	Name   string `yaml:"name" json:"name"`
	Stars  []Star `yaml:"stars" json:"stars"`
}

// Catalog is the full list of courses.
type Catalog struct {
	Courses []Course `yaml:"courses" json:"courses"`
}

// Default returns the embedded Super Mario 64 catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "read catalog %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "parse catalog")
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Courses) == 0 {
		return errors.New(errors.ErrCodeInvalidCatalog, "catalog has no courses")
	}
	courses := make(map[string]bool)
	stars := make(map[string]bool)
	for _, course := range c.Courses {
		if err := errors.ValidateCourseID(course.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidCatalog, err, "course %q", course.ID)
		}
		if courses[course.ID] {
			return errors.New(errors.ErrCodeInvalidCatalog, "duplicate course %s", course.ID)
		}
		courses[course.ID] = true

		for _, s := range course.Stars {
			if err := errors.ValidateStarID(s.ID); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidCatalog, err, "course %s", course.ID)
			}
			if IsHundredCoin(s.ID) {
				return errors.New(errors.ErrCodeInvalidCatalog, "%s: 100 coin stars are added from user times, not the catalog", s.ID)
			}
			if CourseOf(s.ID) != course.ID {
				return errors.New(errors.ErrCodeInvalidCatalog, "star %s listed under course %s", s.ID, course.ID)
			}
			if stars[s.ID] {
				return errors.New(errors.ErrCodeInvalidCatalog, "duplicate star %s", s.ID)
			}
			stars[s.ID] = true
			if !slices.Contains(Locations, s.Location) {
				return errors.New(errors.ErrCodeInvalidCatalog, "star %s has unknown location %q", s.ID, s.Location)
			}
			if s.Required < 0 {
				return errors.New(errors.ErrCodeInvalidCatalog, "star %s has negative stars_required", s.ID)
			}
		}
	}
	return nil
}

var courseIDPrefix = regexp.MustCompile(`^[A-Z]+`)

// CourseOf returns the course ID prefix of a star ID.
func CourseOf(starID string) string {
	return courseIDPrefix.FindString(starID)
}

// IsHundredCoin reports whether id names a 100 coin star.
func IsHundredCoin(id string) bool {
	return strings.HasSuffix(id, HundredCoinSuffix)
}

// Weight returns the number of stars id counts for. A 100 coin star is
// collected together with another star of its course, so it counts twice.
func Weight(id string) int {
	if IsHundredCoin(id) {
		return 2
	}
	return 1
}

// Star looks up a star by ID.
func (c *Catalog) Star(id string) (Star, bool) {
	for _, course := range c.Courses {
		for _, s := range course.Stars {
			if s.ID == id {
				return s, true
			}
		}
	}
	return Star{}, false
}

// StarIDs returns the IDs of every star in the catalog, sorted.
func (c *Catalog) StarIDs(includeCastle bool) []string {
	var ids []string
	for _, course := range c.Courses {
		if course.ID == CastleID && !includeCastle {
			continue
		}
		for _, s := range course.Stars {
			ids = append(ids, s.ID)
		}
	}
	slices.Sort(ids)
	return ids
}

// CourseIDs returns course IDs in catalog order.
func (c *Catalog) CourseIDs(includeCastle bool) []string {
	var ids []string
	for _, course := range c.Courses {
		if course.ID == CastleID && !includeCastle {
			continue
		}
		ids = append(ids, course.ID)
	}
	return ids
}

// HundredCoinIDs returns every possible 100 coin star ID, one per course.
func (c *Catalog) HundredCoinIDs() []string {
	ids := c.CourseIDs(false)
	for i, id := range ids {
		ids[i] = id + HundredCoinSuffix
	}
	slices.Sort(ids)
	return ids
}

// clone returns a deep copy of c.
func (c *Catalog) clone() *Catalog {
	out := &Catalog{Courses: make([]Course, len(c.Courses))}
	for i, course := range c.Courses {
		course.Stars = slices.Clone(course.Stars)
		out.Courses[i] = course
	}
	return out
}

// PropagateThresholds returns a copy of c where every star listed in
// prereqs (star → its prerequisites) requires at least as many stars as
// any of its ancestors.
func (c *Catalog) PropagateThresholds(prereqs map[string][]string) *Catalog {
	base := c.Thresholds()
	memo := make(map[string]int)
	visiting := make(map[string]bool)

	var resolve func(id string) int
	resolve = func(id string) int {
		if v, ok := memo[id]; ok {
			return v
		}
		req := base[id]
		if visiting[id] {
			return req
		}
		visiting[id] = true
		for _, p := range prereqs[id] {
			req = max(req, resolve(p))
		}
		visiting[id] = false
		memo[id] = req
		return req
	}

	out := c.clone()
	for i := range out.Courses {
		stars := out.Courses[i].Stars
		for j := range stars {
			if _, ok := prereqs[stars[j].ID]; ok {
				stars[j].Required = resolve(stars[j].ID)
			}
		}
	}
	return out
}

// WithAlternates returns a copy of c with the given 100 coin stars added.
// alternates maps the star a 100 coin star is collected with to the 100
// coin star ID; the new star takes that star's location and requirement.
func (c *Catalog) WithAlternates(alternates map[string]string) (*Catalog, error) {
	out := c.clone()

	bases := make([]string, 0, len(alternates))
	for base := range alternates {
		bases = append(bases, base)
	}
	slices.Sort(bases)

	for _, base := range bases {
		alt := alternates[base]
		idx := slices.IndexFunc(out.Courses, func(course Course) bool { return course.ID == CourseOf(alt) })
		if idx < 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: no course %s", alt, CourseOf(alt))
		}
		course := &out.Courses[idx]
		j := slices.IndexFunc(course.Stars, func(s Star) bool { return s.ID == base })
		if j < 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "%s is combined with %s, which is not a %s star", alt, base, course.ID)
		}
		star := course.Stars[j]
		star.ID = alt
		star.Number = len(course.Stars) + 1
		star.Name = fmt.Sprintf("%s + 100 Coins Star", star.Name)
		course.Stars = append(course.Stars, star)
	}
	return out, nil
}

// StarLocations maps every star ID to its location.
func (c *Catalog) StarLocations() map[string]string {
	m := make(map[string]string)
	for _, course := range c.Courses {
		for _, s := range course.Stars {
			m[s.ID] = s.Location
		}
	}
	return m
}

// Thresholds maps every star ID to the number of stars it requires.
func (c *Catalog) Thresholds() map[string]int {
	m := make(map[string]int)
	for _, course := range c.Courses {
		for _, s := range course.Stars {
			m[s.ID] = s.Required
		}
	}
	return m
}

// UnitsByLocation counts route stars per location. Every location is present.
func (c *Catalog) UnitsByLocation(route []string) map[string]int {
	locs := c.StarLocations()
	counts := make(map[string]int, len(Locations))
	for _, l := range Locations {
		counts[l] = 0
	}
	for _, id := range route {
		if l, ok := locs[id]; ok {
			counts[l] += Weight(id)
		}
	}
	return counts
}

// UnitsByCourse counts route stars per course. Every course is present.
func (c *Catalog) UnitsByCourse(route []string) map[string]int {
	counts := make(map[string]int, len(c.Courses))
	for _, course := range c.Courses {
		counts[course.ID] = 0
	}
	for _, id := range route {
		if _, ok := counts[CourseOf(id)]; ok {
			counts[CourseOf(id)] += Weight(id)
		}
	}
	return counts
}
