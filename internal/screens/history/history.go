package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/focusflow/internal/router"
	"github.com/abhisek/focusflow/internal/screen"
	"github.com/abhisek/focusflow/internal/store"
	"github.com/abhisek/focusflow/internal/ui/layout"
	"github.com/abhisek/focusflow/internal/ui/theme"
)

const recentLimit = 50

type historyLoadedMsg struct {
	Phases []store.PhaseRecord
	Today  store.PhaseTotals
	Err    error
}

// run groups the phases recorded by one launch of the app.
type run struct {
	ID     string
	Start  time.Time
	Phases []store.PhaseRecord // newest first
}

func (r run) focusMinutes() (sessions, minutes int) {
	for _, p := range r.Phases {
		if p.Phase == "Session" {
			sessions++
			minutes += p.Minutes
		}
	}
	return sessions, minutes
}

// HistoryScreen displays recently completed phases and today's totals.
type HistoryScreen struct {
	repo     store.PhaseRepo
	now      func() time.Time
	runs     []run
	today    store.PhaseTotals
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.PhaseRepo) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		now:      time.Now,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	midnight := startOfDay(s.now())
	return func() tea.Msg {
		ctx := context.Background()

		phases, err := repo.QueryPhases(ctx, store.QueryOpts{Limit: recentLimit})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		today, err := repo.Totals(ctx, midnight)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Phases: phases, Today: today}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "R", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.errMsg = ""
			s.runs = groupRuns(msg.Phases)
			s.today = msg.Today
			s.selected = min(s.selected, max(len(s.runs)-1, 0))
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.runs)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		case "r":
			return s, s.Init()
		}
	}
	return s, nil
}

// groupRuns splits newest-first phases into runs, keeping the order in
// which each run was last seen.
func groupRuns(phases []store.PhaseRecord) []run {
	var runs []run
	index := make(map[string]int)
	for _, p := range phases {
		i, ok := index[p.RunID]
		if !ok {
			i = len(runs)
			index[p.RunID] = i
			runs = append(runs, run{ID: p.RunID})
		}
		runs[i].Phases = append(runs[i].Phases, p)
		runs[i].Start = p.EndedAt.Add(-time.Duration(p.Minutes) * time.Minute)
	}
	return runs
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderToday()))
	b.WriteString("\n\n")

	if len(s.runs) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No completed phases yet. Press Space on the timer to start one!"))
		return b.String()
	}

	for i, r := range s.runs {
		sessions, minutes := r.focusMinutes()

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %d session%s  %d min focus  %d phase%s",
			prefix, r.Start.Format("Jan 02, 2006"), r.Start.Format("15:04"),
			sessions, plural(sessions), minutes, len(r.Phases), plural(len(r.Phases)))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, p := range r.Phases {
				phaseLine := fmt.Sprintf("    %s  %-7s  %2d min", p.EndedAt.Format("15:04"), p.Phase, p.Minutes)
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(phaseColor(p.Phase)).Render(phaseLine)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderToday() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	value := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)

	return theme.Card.Render(
		label.Render("Today  ") +
			value.Foreground(theme.Primary).Render(fmt.Sprintf("%d", s.today.Sessions)) +
			label.Render(fmt.Sprintf(" session%s · ", plural(s.today.Sessions))) +
			value.Render(fmt.Sprintf("%d", s.today.SessionMinutes)) +
			label.Render(" min focus · ") +
			value.Foreground(theme.Success).Render(fmt.Sprintf("%d", s.today.Breaks)) +
			label.Render(fmt.Sprintf(" break%s", plural(s.today.Breaks))),
	)
}

func phaseColor(phase string) color.Color {
	if phase == "Break" {
		return theme.Success
	}
	return theme.Secondary
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
