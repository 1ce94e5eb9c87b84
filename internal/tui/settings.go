package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/kadirgn/tempo/internal/focus"
	"github.com/kadirgn/tempo/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	autoBreak     *bool
	breakMinutes  *string
	defaultPreset *string
	birthDate     *string
	expectancy    *string
	weekStart     *string
	timeFormat    *string
	sound         *bool
}

func newSettingsModel(s *store.Store) settingsModel {
	ab, snd := true, true
	bm, dp, bd, ex, ws, tf := "", "", "", "", "", ""
	return settingsModel{
		store:         s,
		autoBreak:     &ab,
		breakMinutes:  &bm,
		defaultPreset: &dp,
		birthDate:     &bd,
		expectancy:    &ex,
		weekStart:     &ws,
		timeFormat:    &tf,
		sound:         &snd,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.GetAllSettings()
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) getVal(key, fallback string) string {
	for _, st := range s.settings {
		if st.Key == key {
			return st.Value
		}
	}
	return fallback
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.autoBreak = s.getVal("auto_break", "1") == "1"
	*s.breakMinutes = s.getVal("break_minutes", "5")
	*s.defaultPreset = s.getVal("default_preset", "standard")
	*s.birthDate = s.getVal("birth_date", "1990-01-01")
	*s.expectancy = s.getVal("life_expectancy_years", "80")
	*s.weekStart = s.getVal("week_start", "monday")
	*s.timeFormat = s.getVal("time_format", "24h")
	*s.sound = s.getVal("sound", "1") == "1"

	presetOptions := make([]huh.Option[string], 0, 4)
	for _, p := range focus.AllPresets() {
		presetOptions = append(presetOptions,
			huh.NewOption(fmt.Sprintf("%s (%dm)", p.Name, p.Minutes), string(p.ID)))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title("Break after a completed session").Value(s.autoBreak),
			huh.NewInput().Title("Break length (min)").Value(s.breakMinutes).Validate(validatePositiveInt),
			huh.NewSelect[string]().Title("Default preset").Options(presetOptions...).Value(s.defaultPreset),
			huh.NewConfirm().Title("Sound").Value(s.sound),
		).Title("Focus"),
		huh.NewGroup(
			huh.NewInput().Title("Birth date (YYYY-MM-DD)").Value(s.birthDate).Validate(func(v string) error {
				_, err := time.Parse("2006-01-02", v)
				return err
			}),
			huh.NewInput().Title("Life expectancy (years)").Value(s.expectancy).Validate(validatePositiveInt),
			huh.NewSelect[string]().Title("Week starts on").
				Options(
					huh.NewOption("Monday", "monday"),
					huh.NewOption("Sunday", "sunday"),
				).Value(s.weekStart),
			huh.NewSelect[string]().Title("Time format").
				Options(
					huh.NewOption("24-hour", "24h"),
					huh.NewOption("12-hour", "12h"),
				).Value(s.timeFormat),
		).Title("Display"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func validatePositiveInt(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if n <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && key.Matches(kmsg, keys.Back) {
		s.formActive = false
		s.form = nil
		return s, nil
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		return s, s.saveForm()
	}
	return s, cmd
}

func (s settingsModel) saveForm() tea.Cmd {
	values := map[string]string{
		"auto_break":            boolSetting(*s.autoBreak),
		"break_minutes":         *s.breakMinutes,
		"default_preset":        *s.defaultPreset,
		"birth_date":            *s.birthDate,
		"life_expectancy_years": *s.expectancy,
		"week_start":            *s.weekStart,
		"time_format":           *s.timeFormat,
		"sound":                 boolSetting(*s.sound),
	}
	return func() tea.Msg {
		for k, v := range values {
			if err := s.store.SetSetting(k, v); err != nil {
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
		}
		return formDoneMsg{}
	}
}

func boolSetting(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		return activePanelStyle.Width(w).Render(s.form.View())
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Settings"))
	rows = append(rows, "")
	for _, st := range s.settings {
		rows = append(rows, fmt.Sprintf("  %-24s %s",
			mutedStyle.Render(st.Key),
			normalItemStyle.Render(st.Value),
		))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("enter: edit"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
