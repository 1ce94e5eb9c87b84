package tui

import (
	"fmt"
	"time"

	"github.com/kadirgn/tempo/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewFocus
	viewEvents
	viewHistory
	viewSettings
)

var viewNames = []string{"Dashboard", "Focus", "Events", "History", "Settings"}

// --- Messages ---

type tickMsg time.Time

// holdTickMsg drives hold-to-start progress at a finer grain than the
// 1s countdown tick.
type holdTickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

type sessionRecordedMsg struct{}

type breakStartedMsg struct{}

type eventsDataMsg struct {
	events []store.Event
}

type eventSavedMsg struct{}

type historyDataMsg struct {
	sessions []sessionRow
}

type settingsDataMsg struct {
	settings []store.Setting
}

type exportDoneMsg struct {
	path string
}

type formDoneMsg struct{}
type formCancelMsg struct{}

// --- Helpers ---

func formatCountdown(minutes, seconds int) string {
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// formatSpanApprox renders a long duration at day/hour granularity.
func formatSpanApprox(d time.Duration) string {
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 48*time.Hour {
		h := int(d.Hours())
		m := int(d.Minutes()) % 60
		return fmt.Sprintf("%dh %dm", h, m)
	}
	days := int(d.Hours()) / 24
	if days < 365 {
		return fmt.Sprintf("%dd %dh", days, int(d.Hours())%24)
	}
	years := days / 365
	return fmt.Sprintf("%dy %dd", years, days%365)
}
