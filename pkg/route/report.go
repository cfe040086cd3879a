package route

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/starroute/pkg/catalog"
	"github.com/matzehuels/starroute/pkg/optimize"
)

// Entry is one star of a route.
type Entry struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Course   string  `json:"course"`
	Location string  `json:"location"`
	Units    int     `json:"units"`
	Time     float64 `json:"time"` // average time for the whole star
}

// Route is the report for one computed route.
type Route struct {
	ID              uuid.UUID          `json:"id"`
	CreatedAt       time.Time          `json:"created_at"`
	Stars           []Entry            `json:"stars"`
	Time            float64            `json:"route_time"`
	Units           int                `json:"units"`
	UnitsByLocation map[string]int     `json:"num_stars_per_location"`
	UnitsByCourse   map[string]int     `json:"num_stars_per_course"`
	StarTimes       map[string]float64 `json:"star_times"`
	Options         Options            `json:"options"`
	Partitions      int                `json:"partitions"`
	Cached          bool               `json:"cached"`
	Courses         []catalog.Course   `json:"course_data"`
}

// NewRoute builds the report for res.
func NewRoute(res *optimize.Result, p *Prepared) *Route {
	ids := res.IDs()
	r := &Route{
		ID:              uuid.New(),
		CreatedAt:       time.Now(),
		Time:            res.Time,
		Units:           res.Units,
		UnitsByLocation: p.Catalog.UnitsByLocation(ids),
		UnitsByCourse:   p.Catalog.UnitsByCourse(ids),
		StarTimes:       p.Times,
		Options:         p.Options,
		Partitions:      res.Partitions,
		Courses:         p.Catalog.Courses,
	}
	for _, s := range res.Stars {
		star, _ := p.Catalog.Star(s.ID)
		r.Stars = append(r.Stars, Entry{
			ID:       s.ID,
			Name:     star.Name,
			Course:   catalog.CourseOf(s.ID),
			Location: star.Location,
			Units:    s.Weight,
			Time:     float64(s.Weight) * s.UnitTime,
		})
	}
	return r
}

// IDs returns the star IDs of the route.
func (r *Route) IDs() []string {
	ids := make([]string, len(r.Stars))
	for i, s := range r.Stars {
		ids[i] = s.ID
	}
	return ids
}

// UpperLevelUnits returns the number of stars taken from upper levels.
func (r *Route) UpperLevelUnits() int {
	n := 0
	for _, l := range catalog.UpperLevels {
		n += r.UnitsByLocation[l]
	}
	return n
}

// FormatDuration renders seconds as "M minutes S.SS seconds", dropping the
// minutes when there are none.
func FormatDuration(seconds float64) string {
	minutes := math.Floor(seconds / 60)
	rest := seconds - minutes*60
	if minutes == 0 {
		return fmt.Sprintf("%.2f seconds", rest)
	}
	return fmt.Sprintf("%d minutes %.2f seconds", int(minutes), rest)
}
