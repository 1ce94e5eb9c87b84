package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kadirgn/tempo/internal/focus"
	"github.com/kadirgn/tempo/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// drain runs a command tree and feeds no messages back; used to force
// the side-effect closures in tests.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// ============================================================
// Focus view
// ============================================================

func TestFocusStartsIdle(t *testing.T) {
	s := newTestStore(t)
	f := newFocusModel(s)

	if f.phase() != focus.PhaseIdle {
		t.Fatalf("fresh model should be idle, got %s", f.phase())
	}
	if f.active() {
		t.Fatal("no timer should be active")
	}
	if f.state.SelectedPreset != focus.PresetStandard {
		t.Fatalf("default preset should be standard, got %s", f.state.SelectedPreset)
	}
}

func TestFocusCommitPersistsSnapshotAndSession(t *testing.T) {
	s := newTestStore(t)
	f := newFocusModel(s)

	f, _ = f.dispatch(focus.Event{Kind: focus.EvHoldThresholdMet, Preset: focus.PresetQuick})
	if f.phase() != focus.PhaseFocusing {
		t.Fatalf("expected focusing, got %s", f.phase())
	}

	snap, err := s.LoadActiveTimer()
	if err != nil {
		t.Fatal(err)
	}
	if snap == nil || snap.Phase != focus.PhaseFocusing || snap.TotalMinutes != 10 {
		t.Fatalf("snapshot should be persisted on commit: %+v", snap)
	}

	sessions, err := s.ListSessions(store.SessionFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 || sessions[0].WasCompleted {
		t.Fatalf("the unfinished session should be recorded: %+v", sessions)
	}
}

func TestFocusSealConfirmFlow(t *testing.T) {
	s := newTestStore(t)
	f := newFocusModel(s)
	f, _ = f.dispatch(focus.Event{Kind: focus.EvHoldThresholdMet, Preset: focus.PresetStandard})

	f, _ = f.updateKeys(keyMsg('x'))
	if f.phase() != focus.PhaseEndedEarly {
		t.Fatalf("seal should move to ended_early, got %s", f.phase())
	}

	// Confirm is gated until the seal delay passes.
	f, _ = f.update(tea.KeyMsg{Type: tea.KeyEnter})
	if f.phase() != focus.PhaseEndedEarly {
		t.Fatal("early enter should be ignored")
	}

	f.sealArmedAt = time.Now().Add(-focus.SealThreshold)
	f, _ = f.update(tea.KeyMsg{Type: tea.KeyEnter})
	if f.phase() != focus.PhaseIdle {
		t.Fatalf("confirm should end the session, got %s", f.phase())
	}

	snap, _ := s.LoadActiveTimer()
	if snap != nil {
		t.Fatalf("snapshot should be cleared, got %+v", snap)
	}

	sessions, _ := s.ListSessions(store.SessionFilter{})
	if len(sessions) != 1 || sessions[0].WasCompleted {
		t.Fatalf("session should be recorded as ended early: %+v", sessions)
	}
	if sessions[0].CompletedAt == nil {
		t.Fatal("finalized session should have an end time")
	}
}

func TestFocusSealCancel(t *testing.T) {
	s := newTestStore(t)
	f := newFocusModel(s)
	f, _ = f.dispatch(focus.Event{Kind: focus.EvHoldThresholdMet, Preset: focus.PresetStandard})

	f, _ = f.updateKeys(keyMsg('x'))
	f, _ = f.update(tea.KeyMsg{Type: tea.KeyEsc})
	if f.phase() != focus.PhaseFocusing {
		t.Fatalf("esc should resume focusing, got %s", f.phase())
	}
}

func TestFocusHoldKeyArmsAndReleases(t *testing.T) {
	s := newTestStore(t)
	f := newFocusModel(s)

	f, _ = f.updateKeys(keyMsg('s'))
	if f.phase() != focus.PhaseHolding {
		t.Fatalf("s should arm the hold, got %s", f.phase())
	}

	f, _ = f.update(tea.KeyMsg{Type: tea.KeyEsc})
	if f.phase() != focus.PhaseIdle {
		t.Fatalf("esc should release the hold, got %s", f.phase())
	}
}

func TestFocusHoldTickCommitsAtThreshold(t *testing.T) {
	s := newTestStore(t)
	f := newFocusModel(s)

	f, _ = f.updateKeys(keyMsg('s'))
	h := *f.state.Holding
	h.StartedAt = time.Now().Add(-focus.HoldThreshold)
	f.state.Holding = &h

	f, _ = f.update(holdTickMsg(time.Now()))
	if f.phase() != focus.PhaseFocusing {
		t.Fatalf("a full hold should commit, got %s", f.phase())
	}
}

func TestFocusCyclePresetOnlyIdle(t *testing.T) {
	s := newTestStore(t)
	f := newFocusModel(s)

	f, _ = f.cyclePreset(1)
	if f.state.SelectedPreset == focus.PresetStandard {
		t.Fatal("cycling should change the selection")
	}

	f, _ = f.dispatch(focus.Event{Kind: focus.EvHoldThresholdMet, Preset: focus.PresetQuick})
	before := f.state.SelectedPreset
	f, _ = f.cyclePreset(1)
	if f.state.SelectedPreset != before {
		t.Fatal("cycling must be a no-op while focusing")
	}
}

func TestFocusTickCompletesExpiredSession(t *testing.T) {
	s := newTestStore(t)
	f := newFocusModel(s)
	f, _ = f.dispatch(focus.Event{Kind: focus.EvHoldThresholdMet, Preset: focus.PresetQuick})

	at := *f.state.ActiveTimer
	at.EndsAt = time.Now().Add(-time.Second)
	f.state.ActiveTimer = &at

	f, cmd := f.update(tickMsg(time.Now()))
	if f.phase() != focus.PhaseBreak {
		t.Fatalf("expired tick should start the break, got %s", f.phase())
	}

	// The snapshot now describes the break window.
	snap, _ := s.LoadActiveTimer()
	if snap == nil || snap.Phase != focus.PhaseBreak {
		t.Fatalf("break snapshot should be persisted: %+v", snap)
	}

	var sawBreak bool
	for _, m := range drain(cmd) {
		if _, ok := m.(breakStartedMsg); ok {
			sawBreak = true
		}
	}
	if !sawBreak {
		t.Fatal("expected a breakStartedMsg")
	}

	sessions, _ := s.ListSessions(store.SessionFilter{})
	if len(sessions) != 1 || !sessions[0].WasCompleted {
		t.Fatalf("completed session should be recorded: %+v", sessions)
	}
}

func TestFocusRestoresPersistedTimer(t *testing.T) {
	s := newTestStore(t)

	sess := focus.NewSession(focus.PresetDeep)
	snap := focus.NewActiveTimer(sess, focus.PhaseFocusing)
	if err := s.SaveActiveTimer(&snap); err != nil {
		t.Fatal(err)
	}

	f := newFocusModel(s)
	if f.phase() != focus.PhaseFocusing {
		t.Fatalf("model should resume the persisted timer, got %s", f.phase())
	}
	if f.state.ActiveTimer.SessionID != sess.ID {
		t.Fatal("resumed timer should keep its session id")
	}
}

func TestFocusDiscardsExpiredTimer(t *testing.T) {
	s := newTestStore(t)

	sess := focus.NewSession(focus.PresetQuick)
	sess.StartedAt = time.Now().Add(-time.Hour)
	sess.EndsAt = time.Now().Add(-50 * time.Minute)
	snap := focus.NewActiveTimer(sess, focus.PhaseFocusing)
	if err := s.SaveActiveTimer(&snap); err != nil {
		t.Fatal(err)
	}

	f := newFocusModel(s)
	if f.phase() != focus.PhaseIdle {
		t.Fatalf("expired snapshot should restore to idle, got %s", f.phase())
	}

	// The stale snapshot is also cleared from disk.
	got, _ := s.LoadActiveTimer()
	if got != nil {
		t.Fatalf("stale snapshot should be cleared: %+v", got)
	}
}

func TestFocusSkipBreak(t *testing.T) {
	s := newTestStore(t)
	f := newFocusModel(s)
	f, _ = f.dispatch(focus.Event{Kind: focus.EvHoldThresholdMet, Preset: focus.PresetQuick})

	at := *f.state.ActiveTimer
	at.EndsAt = time.Now().Add(-time.Second)
	f.state.ActiveTimer = &at
	f, _ = f.update(tickMsg(time.Now()))

	f, _ = f.updateKeys(tea.KeyMsg{Type: tea.KeySpace})
	if f.phase() != focus.PhaseIdle || f.active() {
		t.Fatalf("space should skip the break: %s", f.phase())
	}
}

// ============================================================
// App shell
// ============================================================

func TestAppViewSwitching(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	m, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app = m.(App)

	m, _ = app.Update(keyMsg('2'))
	app = m.(App)
	if app.activeView != viewFocus {
		t.Fatalf("2 should open focus, got %d", app.activeView)
	}

	m, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = m.(App)
	if app.activeView != viewEvents {
		t.Fatalf("tab should advance to events, got %d", app.activeView)
	}

	if app.View() == "" {
		t.Fatal("view should render")
	}
}

func TestAppRoutesTicksToFocus(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.focus, _ = app.focus.dispatch(focus.Event{Kind: focus.EvHoldThresholdMet, Preset: focus.PresetQuick})

	at := *app.focus.state.ActiveTimer
	at.EndsAt = time.Now().Add(-time.Second)
	app.focus.state.ActiveTimer = &at

	// Ticks must reach the timer even with another view active.
	app.activeView = viewDashboard
	m, _ := app.Update(tickMsg(time.Now()))
	app = m.(App)

	if app.focus.phase() != focus.PhaseBreak {
		t.Fatalf("tick should advance the hidden focus timer, got %s", app.focus.phase())
	}
}

// ============================================================
// Dashboard
// ============================================================

func TestDashboardRenders(t *testing.T) {
	s := newTestStore(t)
	d := newDashboardModel(s)
	d.setSize(100, 30)

	out := d.view()
	if out == "" {
		t.Fatal("dashboard should render")
	}
	for _, label := range []string{"Today", "Week", "Month", "Year", "Life"} {
		if !strings.Contains(out, label) {
			t.Fatalf("dashboard missing %q", label)
		}
	}
}
