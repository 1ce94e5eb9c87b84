package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/kadirgn/tempo/internal/store"
)

// eventsModel lists countdowns and elapsed trackers and edits them
// through a huh form.
type eventsModel struct {
	store  *store.Store
	width  int
	height int

	events []store.Event
	cursor int

	formActive bool
	form       *huh.Form
	editingID  int64 // 0 when creating

	// Form values as pointers (survive value copies)
	name   *string
	target *string
	kind   *string
	color  *string
}

func newEventsModel(s *store.Store) eventsModel {
	n, tgt, k, c := "", "", "", ""
	return eventsModel{
		store:  s,
		name:   &n,
		target: &tgt,
		kind:   &k,
		color:  &c,
	}
}

func (e *eventsModel) setSize(w, h int) {
	e.width = w
	e.height = h
}

func (e eventsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		events, _ := e.store.ListEvents()
		return eventsDataMsg{events: events}
	}
}

func (e eventsModel) update(msg tea.Msg) (eventsModel, tea.Cmd) {
	if e.formActive && e.form != nil {
		return e.updateForm(msg)
	}

	switch msg := msg.(type) {
	case eventsDataMsg:
		e.events = msg.events
		if e.cursor >= len(e.events) {
			e.cursor = max(len(e.events)-1, 0)
		}
		return e, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if e.cursor > 0 {
				e.cursor--
			}
		case key.Matches(msg, keys.Down):
			if e.cursor < len(e.events)-1 {
				e.cursor++
			}
		case key.Matches(msg, keys.New):
			return e.showForm(nil)
		case key.Matches(msg, keys.Edit), key.Matches(msg, keys.Enter):
			if len(e.events) > 0 {
				ev := e.events[e.cursor]
				return e.showForm(&ev)
			}
		case key.Matches(msg, keys.Delete):
			if len(e.events) > 0 {
				return e.deleteCurrent()
			}
		}
	}
	return e, nil
}

func (e eventsModel) deleteCurrent() (eventsModel, tea.Cmd) {
	ev := e.events[e.cursor]
	if err := e.store.DeleteEvent(ev.ID); err != nil {
		return e, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
	}
	return e, tea.Batch(e.refresh(), func() tea.Msg {
		return statusMsg{text: "Deleted " + ev.Name}
	})
}

func (e eventsModel) showForm(ev *store.Event) (eventsModel, tea.Cmd) {
	if ev != nil {
		e.editingID = ev.ID
		*e.name = ev.Name
		*e.target = ev.TargetTime.Local().Format("2006-01-02 15:04")
		*e.kind = ev.Kind
		*e.color = ev.Color
	} else {
		e.editingID = 0
		*e.name = ""
		*e.target = time.Now().AddDate(0, 0, 7).Format("2006-01-02 15:04")
		*e.kind = store.EventCountdown
		*e.color = "#7AA2F7"
	}

	e.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(e.name).Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("name is required")
				}
				return nil
			}),
			huh.NewInput().Title("When (YYYY-MM-DD HH:MM)").Value(e.target).Validate(func(s string) error {
				_, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local)
				return err
			}),
			huh.NewSelect[string]().Title("Kind").
				Options(
					huh.NewOption("Countdown to", store.EventCountdown),
					huh.NewOption("Time since", store.EventElapsed),
				).Value(e.kind),
			huh.NewInput().Title("Color").Value(e.color),
		).Title("Event"),
	).WithShowHelp(true).WithShowErrors(true)

	e.formActive = true
	return e, e.form.Init()
}

func (e eventsModel) updateForm(msg tea.Msg) (eventsModel, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && key.Matches(kmsg, keys.Back) {
		e.formActive = false
		e.form = nil
		return e, nil
	}

	form, cmd := e.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		e.form = f
	}

	if e.form.State == huh.StateCompleted {
		e.formActive = false
		return e, e.saveForm()
	}
	return e, cmd
}

func (e eventsModel) saveForm() tea.Cmd {
	id := e.editingID
	name := strings.TrimSpace(*e.name)
	kind := *e.kind
	color := *e.color
	target, err := time.ParseInLocation("2006-01-02 15:04", *e.target, time.Local)

	return func() tea.Msg {
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Bad time: %v", err), isError: true}
		}
		if id > 0 {
			if err := e.store.UpdateEvent(id, name, target, kind, color); err != nil {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
		} else {
			if _, err := e.store.CreateEvent(name, target, kind, color); err != nil {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
		}
		return eventSavedMsg{}
	}
}

func (e eventsModel) view() string {
	w := e.width - 4

	if e.formActive && e.form != nil {
		return activePanelStyle.Width(w).Render(e.form.View())
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Events"))
	rows = append(rows, "")

	if len(e.events) == 0 {
		rows = append(rows, mutedStyle.Render("No events yet. Press n to add one."))
	}

	now := time.Now()
	for i, ev := range e.events {
		cursor := "  "
		style := normalItemStyle
		if i == e.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(ev.Color)).Render("●")

		var when string
		if ev.Kind == store.EventElapsed {
			when = fmt.Sprintf("%s ago", formatSpanApprox(now.Sub(ev.TargetTime)))
		} else if ev.TargetTime.Before(now) {
			when = mutedStyle.Render("passed")
		} else {
			when = fmt.Sprintf("in %s", formatSpanApprox(ev.TargetTime.Sub(now)))
		}

		rows = append(rows, style.Render(fmt.Sprintf("%s%s %-24s", cursor, dot, ev.Name))+" "+when)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("n: new  e: edit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
