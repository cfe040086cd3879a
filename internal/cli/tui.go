package cli

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/starroute/pkg/catalog"
	"github.com/matzehuels/starroute/pkg/route"
)

var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	detailBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
	detailNameStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
)

// sortMode orders the rows of the route browser.
type sortMode int

const (
	sortByStar sortMode = iota
	sortByTime
	sortByLocation
)

func (s sortMode) String() string {
	switch s {
	case sortByTime:
		return "time"
	case sortByLocation:
		return "location"
	}
	return "star"
}

// =============================================================================
// RouteModel - Interactive route browser
// =============================================================================

// RouteModel is the bubbletea model for browsing a computed route.
type RouteModel struct {
	Route   *route.Route
	Entries []route.Entry
	Cursor  int
	Offset  int
	Height  int
	Sort    sortMode
	Detail  bool
}

// NewRouteModel creates a browser for r.
func NewRouteModel(r *route.Route) RouteModel {
	m := RouteModel{Route: r, Height: 15}
	m.Entries = sortEntries(r.Stars, sortByStar)
	return m
}

func sortEntries(entries []route.Entry, mode sortMode) []route.Entry {
	out := slices.Clone(entries)
	locIndex := func(l string) int { return slices.Index(catalog.Locations, l) }
	slices.SortStableFunc(out, func(a, b route.Entry) int {
		switch mode {
		case sortByTime:
			if c := cmp.Compare(b.Time, a.Time); c != 0 {
				return c
			}
		case sortByLocation:
			if c := cmp.Compare(locIndex(a.Location), locIndex(b.Location)); c != 0 {
				return c
			}
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

func (m RouteModel) Init() tea.Cmd {
	return nil
}

func (m RouteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "s":
			m.Sort = (m.Sort + 1) % 3
			m.Entries = sortEntries(m.Route.Stars, m.Sort)
			m.Cursor, m.Offset = 0, 0
		case "enter", " ":
			m.Detail = !m.Detail
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-12, 5)
	}
	return m, nil
}

func (m RouteModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Route · %d stars · %s", m.Route.Units, route.FormatDuration(m.Route.Time))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  s sort  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Entries))
	b.WriteString(routeTable(m.Entries[m.Offset:end], m.Cursor-m.Offset))
	b.WriteString("\n")

	if m.Detail && m.Cursor < len(m.Entries) {
		b.WriteString(detailBoxStyle.Render(m.detail(m.Entries[m.Cursor])))
		b.WriteString("\n")
	}

	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] sorted by %s", m.Cursor+1, len(m.Entries), m.Sort)))
	return b.String()
}

func (m RouteModel) detail(e route.Entry) string {
	share := 0.0
	if m.Route.Time > 0 {
		share = 100 * e.Time / m.Route.Time
	}
	lines := []string{
		detailNameStyle.Render(e.Name),
		fmt.Sprintf("%s · %s", e.Course, e.Location),
		fmt.Sprintf("%s (%.1f%% of the route)", route.FormatDuration(e.Time), share),
	}
	if e.Units > 1 {
		lines = append(lines, fmt.Sprintf("counts as %d stars", e.Units))
	}
	return strings.Join(lines, "\n")
}

// browseRoute runs the route browser until the user quits.
func browseRoute(ctx context.Context, r *route.Route) error {
	_, err := tea.NewProgram(NewRouteModel(r), tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}
