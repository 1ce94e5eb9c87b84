package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kadirgn/tempo/internal/focus"
	"github.com/kadirgn/tempo/internal/store"
)

type sessionRow = focus.Session

// historyModel shows finished sessions grouped by day, with a bar
// chart of completed minutes over the last week.
type historyModel struct {
	store  *store.Store
	width  int
	height int

	sessions []focus.Session
	chart    barchart.Model
}

func newHistoryModel(s *store.Store) historyModel {
	return historyModel{
		store: s,
		chart: barchart.New(40, 8),
	}
}

func (h *historyModel) setSize(width, height int) {
	h.width = width
	h.height = height
}

func (h historyModel) refresh() tea.Cmd {
	return func() tea.Msg {
		from := time.Now().AddDate(0, -1, 0)
		sessions, _ := h.store.ListSessions(store.SessionFilter{From: &from})
		return historyDataMsg{sessions: sessions}
	}
}

func (h historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	if m, ok := msg.(historyDataMsg); ok {
		h.sessions = m.sessions
		h.rebuildChart()
	}
	return h, nil
}

func (h *historyModel) rebuildChart() {
	h.chart = barchart.New(40, 8)

	groups := focus.GroupSessionsByDay(h.sessions)
	byDay := make(map[string]int, len(groups))
	for _, g := range groups {
		byDay[g.Day.Format("2006-01-02")] = focus.TotalMinutesForDay(g.Sessions)
	}

	today := time.Now()
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		minutes := byDay[day.Format("2006-01-02")]
		h.chart.Push(barchart.BarData{
			Label: day.Format("Mon"),
			Values: []barchart.BarValue{
				{Name: "minutes", Value: float64(minutes), Style: dotLitStyle},
			},
		})
	}
	h.chart.Draw()
}

func (h historyModel) view() string {
	w := h.width - 4

	var rows []string
	rows = append(rows, titleStyle.Render("History"))
	rows = append(rows, "")
	rows = append(rows, h.chart.View())
	rows = append(rows, "")

	groups := focus.GroupSessionsByDay(h.sessions)
	if len(groups) == 0 {
		rows = append(rows, mutedStyle.Render("No sessions yet. Hold s in the Focus view."))
	}

	shown := 0
	for _, g := range groups {
		if shown >= 5 {
			break
		}
		total := focus.TotalMinutesForDay(g.Sessions)
		header := fmt.Sprintf("%s  %s",
			highlightStyle.Render(focus.FormatDayLabel(g.Day)),
			mutedStyle.Render(fmt.Sprintf("%dm focused", total)),
		)
		rows = append(rows, header)
		for _, sess := range g.Sessions {
			mark := successStyle.Render("✓")
			note := ""
			if !sess.WasCompleted {
				mark = errorStyle.Render("✗")
				note = mutedStyle.Render("  ended early")
			}
			rows = append(rows, fmt.Sprintf("  %s %s  %s %dm%s",
				mark,
				sess.StartedAt.Local().Format("15:04"),
				focus.GetPreset(sess.PresetID).Name,
				sess.TotalMinutes,
				note,
			))
		}
		shown++
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
