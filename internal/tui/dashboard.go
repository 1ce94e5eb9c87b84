package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kadirgn/tempo/internal/store"
	"github.com/kadirgn/tempo/internal/timeleft"
)

// dashboardModel shows how much of each calendar window remains. All
// values are recomputed from the clock on every tick, nothing is
// cached between renders.
type dashboardModel struct {
	store  *store.Store
	width  int
	height int

	weekStart  time.Weekday
	birthDate  time.Time
	expectancy int

	bar progress.Model
}

func newDashboardModel(s *store.Store) dashboardModel {
	d := dashboardModel{
		store: s,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	d.reloadSettings()
	return d
}

func (d *dashboardModel) reloadSettings() {
	d.weekStart = d.store.WeekStart()
	d.birthDate = d.store.BirthDate()
	d.expectancy = d.store.LifeExpectancyYears()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
	d.bar.Width = max(w-30, 10)
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	// Tick-driven only; the view derives everything from time.Now.
	return d, nil
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}
	w := d.width - 4
	now := time.Now()

	rows := []string{
		titleStyle.Render("Time Left"),
		"",
		d.renderSpan(w, "Today", timeleft.Today(now)),
		d.renderSpan(w, "Week", timeleft.Week(now, d.weekStart)),
		d.renderSpan(w, "Month", timeleft.Month(now)),
		d.renderSpan(w, "Year", timeleft.Year(now)),
		d.renderSpan(w, "Life", timeleft.Life(now, d.birthDate, d.expectancy)),
		"",
		mutedStyle.Render(now.Format("Monday, January 2 15:04:05")),
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (d dashboardModel) renderSpan(w int, label string, s timeleft.Span) string {
	name := highlightStyle.Render(fmt.Sprintf("%-6s", label))
	bar := d.bar.ViewAs(s.Elapsed)
	left := mutedStyle.Render(fmt.Sprintf(" %s left", formatSpanApprox(s.Remaining)))
	return lipgloss.JoinHorizontal(lipgloss.Center, name, bar, left)
}
