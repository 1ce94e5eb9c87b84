package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kadirgn/tempo/internal/focus"
	"github.com/kadirgn/tempo/internal/store"
)

// focusModel wraps the focus reducer: it owns the state, dispatches
// events from keys and ticks, and persists the snapshot after every
// dispatch so the timer survives a restart.
type focusModel struct {
	store  *store.Store
	width  int
	height int

	state    focus.State
	settings focus.Settings

	presetCursor int
	sealArmedAt  time.Time

	holdBar progress.Model
}

func newFocusModel(s *store.Store) focusModel {
	snap, _ := s.LoadActiveTimer()
	st := focus.Restore(snap, s.DefaultPreset())

	m := focusModel{
		store:    s,
		state:    st,
		settings: s.LoadFocusSettings(),
		holdBar:  progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	m.presetCursor = presetIndex(st.SelectedPreset)
	// Restore may have discarded an expired snapshot.
	s.SaveActiveTimer(st.ActiveTimer)
	return m
}

func presetIndex(id focus.PresetID) int {
	for i, p := range focus.AllPresets() {
		if p.ID == id {
			return i
		}
	}
	return 1
}

func (f *focusModel) setSize(w, h int) {
	f.width = w
	f.height = h
	f.holdBar.Width = min(w/2, 40)
}

func (f *focusModel) reloadSettings() {
	f.settings = f.store.LoadFocusSettings()
}

// active reports whether a focus or break window is live, for the
// footer indicator.
func (f focusModel) active() bool {
	return f.state.ActiveTimer != nil
}

func (f focusModel) phase() focus.Phase {
	return f.state.Phase
}

func holdTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return holdTickMsg(t)
	})
}

// dispatch runs one event through the reducer and performs the two
// collaborator duties: persist the snapshot, record any finalized or
// newly created session.
func (f focusModel) dispatch(ev focus.Event) (focusModel, tea.Cmd) {
	res := focus.Reduce(f.state, ev, f.settings)
	f.state = res.State

	var cmds []tea.Cmd
	if err := f.store.SaveActiveTimer(f.state.ActiveTimer); err != nil {
		cmds = append(cmds, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		})
	}
	if res.Session != nil {
		sess := *res.Session
		if err := f.store.SaveSession(sess); err != nil {
			cmds = append(cmds, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			})
		} else if sess.CompletedAt != nil {
			cmds = append(cmds, func() tea.Msg { return sessionRecordedMsg{} })
		}
	}
	if res.StartBreak {
		cmds = append(cmds, func() tea.Msg { return breakStartedMsg{} })
	}
	return f, tea.Batch(cmds...)
}

func (f focusModel) update(msg tea.Msg) (focusModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return f.dispatch(focus.Event{Kind: focus.EvTick})

	case holdTickMsg:
		if f.state.Phase != focus.PhaseHolding {
			return f, nil
		}
		var cmd tea.Cmd
		f, cmd = f.dispatch(focus.Event{Kind: focus.EvTick})
		if f.state.Holding != nil && f.state.Holding.Progress >= 1 {
			var commit tea.Cmd
			f, commit = f.dispatch(focus.Event{
				Kind:   focus.EvHoldThresholdMet,
				Preset: f.state.SelectedPreset,
			})
			return f, tea.Batch(cmd, commit)
		}
		return f, tea.Batch(cmd, holdTickCmd())

	case tea.KeyMsg:
		return f.updateKeys(msg)
	}
	return f, nil
}

func (f focusModel) updateKeys(msg tea.KeyMsg) (focusModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Hold):
		if f.state.Phase != focus.PhaseIdle && f.state.Phase != focus.PhaseBreak {
			return f, nil
		}
		var cmd tea.Cmd
		f, cmd = f.dispatch(focus.Event{Kind: focus.EvStartHolding})
		return f, tea.Batch(cmd, holdTickCmd())

	case key.Matches(msg, keys.Back):
		switch f.state.Phase {
		case focus.PhaseHolding:
			return f.dispatch(focus.Event{Kind: focus.EvReleaseHold})
		case focus.PhaseEndedEarly:
			return f.dispatch(focus.Event{Kind: focus.EvCancelEndEarly})
		}
		return f, nil

	case key.Matches(msg, keys.Seal):
		var cmd tea.Cmd
		f, cmd = f.dispatch(focus.Event{Kind: focus.EvBreakSeal})
		if f.state.Phase == focus.PhaseEndedEarly {
			f.sealArmedAt = time.Now()
		}
		return f, cmd

	case key.Matches(msg, keys.Enter):
		if f.state.Phase != focus.PhaseEndedEarly {
			return f, nil
		}
		// Ending early should feel deliberate: the confirm is not
		// accepted until the seal delay has passed.
		if time.Since(f.sealArmedAt) < focus.SealThreshold {
			return f, nil
		}
		return f.dispatch(focus.Event{Kind: focus.EvConfirmEndEarly})

	case key.Matches(msg, keys.Skip):
		return f.dispatch(focus.Event{Kind: focus.EvSkipBreak})

	case key.Matches(msg, keys.Left):
		return f.cyclePreset(-1)

	case key.Matches(msg, keys.Right):
		return f.cyclePreset(1)
	}
	return f, nil
}

func (f focusModel) cyclePreset(delta int) (focusModel, tea.Cmd) {
	if f.state.Phase != focus.PhaseIdle {
		return f, nil
	}
	all := focus.AllPresets()
	f.presetCursor = (f.presetCursor + delta + len(all)) % len(all)
	return f.dispatch(focus.Event{
		Kind:   focus.EvSelectPreset,
		Preset: all[f.presetCursor].ID,
	})
}

func (f focusModel) view() string {
	w := f.width - 4
	disp := focus.Display(f.state, f.settings)

	var rows []string
	rows = append(rows, titleStyle.Render("Focus"))
	rows = append(rows, "")

	switch f.state.Phase {
	case focus.PhaseIdle:
		rows = append(rows, f.renderPresetPicker())
		rows = append(rows, "")
		rows = append(rows, countdownStyle.Width(w-6).Render(formatCountdown(disp.RemainingMinutes, disp.RemainingSeconds)))
		rows = append(rows, f.renderGrid(disp))
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render("hold s to begin  ←/→ preset"))

	case focus.PhaseHolding:
		p := 0.0
		if f.state.Holding != nil {
			p = f.state.Holding.Progress
		}
		rows = append(rows, countdownStyle.Width(w-6).Render(formatCountdown(disp.RemainingMinutes, disp.RemainingSeconds)))
		rows = append(rows, "")
		rows = append(rows, lipgloss.NewStyle().Width(w-6).Align(lipgloss.Center).Render(f.holdBar.ViewAs(p)))
		rows = append(rows, mutedStyle.Width(w-6).Align(lipgloss.Center).Render("keep holding..."))

	case focus.PhaseFocusing:
		rows = append(rows, countdownStyle.Width(w-6).Render(formatCountdown(disp.RemainingMinutes, disp.RemainingSeconds)))
		rows = append(rows, highlightStyle.Width(w-6).Align(lipgloss.Center).Render(focus.GetPreset(f.state.ActiveTimer.PresetID).Name))
		rows = append(rows, f.renderGrid(disp))
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render("x: break the seal"))

	case focus.PhaseBreak:
		rows = append(rows, countdownBreakStyle.Width(w-6).Render(formatCountdown(disp.RemainingMinutes, disp.RemainingSeconds)))
		rows = append(rows, successStyle.Width(w-6).Align(lipgloss.Center).Render("BREAK"))
		rows = append(rows, f.renderGrid(disp))
		rows = append(rows, "")
		rows = append(rows, mutedStyle.Render("space: skip break  hold s for next session"))

	case focus.PhaseEndedEarly:
		rows = append(rows, errorStyle.Width(w-6).Align(lipgloss.Center).Bold(true).Render("End this session early?"))
		rows = append(rows, "")
		rows = append(rows, countdownStyle.Width(w-6).Render(formatCountdown(disp.RemainingMinutes, disp.RemainingSeconds)))
		rows = append(rows, mutedStyle.Width(w-6).Align(lipgloss.Center).Render("the session will not count"))
		rows = append(rows, "")
		if time.Since(f.sealArmedAt) < focus.SealThreshold {
			rows = append(rows, mutedStyle.Render("...  esc: keep going"))
		} else {
			rows = append(rows, mutedStyle.Render("enter: end it  esc: keep going"))
		}
	}

	style := panelStyle
	if f.state.Phase == focus.PhaseFocusing || f.state.Phase == focus.PhaseBreak {
		style = activePanelStyle
	}
	return style.Width(w).Render(lipgloss.JoinVertical(lipgloss.Center, rows...))
}

func (f focusModel) renderPresetPicker() string {
	var parts []string
	for i, p := range focus.AllPresets() {
		label := fmt.Sprintf("%s %dm", p.Name, p.Minutes)
		if i == f.presetCursor {
			parts = append(parts, selectedItemStyle.Render("["+label+"]"))
		} else {
			parts = append(parts, mutedStyle.Render(" "+label+" "))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

// renderGrid draws the one-dot-per-minute grid, lit dots first.
func (f focusModel) renderGrid(disp focus.DisplayState) string {
	preset := focus.GetPreset(f.state.SelectedPreset)
	if f.state.ActiveTimer != nil {
		preset = focus.GetPreset(f.state.ActiveTimer.PresetID)
		if preset.ID == focus.PresetBreak {
			// Break length follows settings, so a single row sized to it.
			preset.Rows = 1
			preset.Cols = disp.TotalDots
		}
	}

	var lines []string
	dot := 0
	for r := 0; r < preset.Rows; r++ {
		var line strings.Builder
		for c := 0; c < preset.Cols; c++ {
			if dot < disp.LitDots {
				line.WriteString(dotLitStyle.Render("●"))
			} else {
				line.WriteString(dotDimStyle.Render("○"))
			}
			line.WriteString(" ")
			dot++
		}
		lines = append(lines, strings.TrimRight(line.String(), " "))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}
