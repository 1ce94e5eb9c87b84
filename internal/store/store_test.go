package store

import (
	"testing"
	"time"

	"github.com/kadirgn/tempo/internal/focus"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s := newTestStore(t)

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/tempo.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Focus sessions
// ============================================================

func TestSaveSessionTwiceFinalizes(t *testing.T) {
	s := newTestStore(t)

	sess := focus.NewSession(focus.PresetQuick)
	if err := s.SaveSession(sess); err != nil {
		t.Fatal(err)
	}

	// The reducer hands the same session back once finalized.
	done := focus.Complete(sess)
	if err := s.SaveSession(done); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetSession(sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.WasCompleted || got.CompletedAt == nil {
		t.Fatalf("finalization should overwrite the first save: %+v", got)
	}
	if got.TotalMinutes != 10 || got.PresetID != focus.PresetQuick {
		t.Fatalf("unexpected session: %+v", got)
	}

	sessions, err := s.ListSessions(SessionFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 {
		t.Fatalf("upsert should not duplicate rows, got %d", len(sessions))
	}
}

func TestListSessionsFilterAndOrder(t *testing.T) {
	s := newTestStore(t)

	old := focus.NewSession(focus.PresetStandard)
	old.ID = "old"
	old.StartedAt = time.Now().AddDate(0, 0, -3)
	old.EndsAt = old.StartedAt.Add(25 * time.Minute)
	recent := focus.NewSession(focus.PresetStandard)
	recent.ID = "recent"

	if err := s.SaveSession(old); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveSession(recent); err != nil {
		t.Fatal(err)
	}

	all, err := s.ListSessions(SessionFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].ID != "recent" {
		t.Fatalf("expected newest first: %+v", all)
	}

	from := time.Now().AddDate(0, 0, -1)
	filtered, err := s.ListSessions(SessionFilter{From: &from})
	if err != nil {
		t.Fatal(err)
	}
	if len(filtered) != 1 || filtered[0].ID != "recent" {
		t.Fatalf("filter should drop the old session: %+v", filtered)
	}

	limited, err := s.ListSessions(SessionFilter{Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Fatalf("limit ignored: %d rows", len(limited))
	}
}

// ============================================================
// Active timer snapshot
// ============================================================

func TestActiveTimerRoundTrip(t *testing.T) {
	s := newTestStore(t)

	// Nothing persisted yet.
	at, err := s.LoadActiveTimer()
	if err != nil {
		t.Fatal(err)
	}
	if at != nil {
		t.Fatalf("expected no snapshot, got %+v", at)
	}

	sess := focus.NewSession(focus.PresetDeep)
	snap := focus.NewActiveTimer(sess, focus.PhaseFocusing)
	if err := s.SaveActiveTimer(&snap); err != nil {
		t.Fatal(err)
	}

	got, err := s.LoadActiveTimer()
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.SessionID != sess.ID || got.Phase != focus.PhaseFocusing {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
	if got.TotalMinutes != 50 {
		t.Fatalf("expected 50 minutes, got %d", got.TotalMinutes)
	}
	// RFC3339 storage truncates sub-second precision.
	if got.EndsAt.Unix() != snap.EndsAt.Unix() {
		t.Fatalf("ends_at mismatch: %v vs %v", got.EndsAt, snap.EndsAt)
	}
}

func TestSaveActiveTimerOverwrites(t *testing.T) {
	s := newTestStore(t)

	first := focus.NewActiveTimer(focus.NewSession(focus.PresetQuick), focus.PhaseFocusing)
	second := focus.NewActiveTimer(focus.NewSession(focus.PresetStandard), focus.PhaseBreak)

	if err := s.SaveActiveTimer(&first); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveActiveTimer(&second); err != nil {
		t.Fatal(err)
	}

	got, err := s.LoadActiveTimer()
	if err != nil {
		t.Fatal(err)
	}
	if got.SessionID != second.SessionID || got.Phase != focus.PhaseBreak {
		t.Fatalf("expected second snapshot, got %+v", got)
	}
}

func TestSaveActiveTimerNilClears(t *testing.T) {
	s := newTestStore(t)

	snap := focus.NewActiveTimer(focus.NewSession(focus.PresetQuick), focus.PhaseFocusing)
	if err := s.SaveActiveTimer(&snap); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveActiveTimer(nil); err != nil {
		t.Fatal(err)
	}

	got, err := s.LoadActiveTimer()
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("nil save should clear the snapshot, got %+v", got)
	}
}

// ============================================================
// Events
// ============================================================

func TestEventCRUD(t *testing.T) {
	s := newTestStore(t)

	target := time.Now().AddDate(0, 1, 0)
	e, err := s.CreateEvent("Launch", target, EventCountdown, "#FF6B6B")
	if err != nil {
		t.Fatal(err)
	}
	if e.ID == 0 || e.Name != "Launch" || e.Kind != EventCountdown {
		t.Fatalf("unexpected event: %+v", e)
	}

	if err := s.UpdateEvent(e.ID, "Launch v2", target, EventCountdown, "#2ECC71"); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetEvent(e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Launch v2" || got.Color != "#2ECC71" {
		t.Fatalf("update lost: %+v", got)
	}

	if err := s.DeleteEvent(e.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetEvent(e.ID); err == nil {
		t.Fatal("deleted event should not be found")
	}
}

func TestCreateEventRejectsUnknownKind(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.CreateEvent("x", time.Now(), "weird", "#000"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestListEventsOrder(t *testing.T) {
	s := newTestStore(t)

	far := time.Now().AddDate(1, 0, 0)
	near := time.Now().AddDate(0, 0, 7)
	past := time.Now().AddDate(-1, 0, 0)

	s.CreateEvent("Far", far, EventCountdown, "#000")
	s.CreateEvent("Near", near, EventCountdown, "#000")
	s.CreateEvent("Started", past, EventElapsed, "#000")

	events, err := s.ListEvents()
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Name != "Started" || events[1].Name != "Near" || events[2].Name != "Far" {
		t.Fatalf("expected target-time order: %+v", events)
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettingsDefaultsSeeded(t *testing.T) {
	s := newTestStore(t)

	v, err := s.GetSetting("auto_break")
	if err != nil {
		t.Fatal(err)
	}
	if v != "1" {
		t.Fatalf("auto_break default should be 1, got %q", v)
	}

	all, err := s.GetAllSettings()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 9 {
		t.Fatalf("expected 9 seeded settings, got %d", len(all))
	}
}

func TestSetSettingUpsert(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetSetting("break_minutes", "10"); err != nil {
		t.Fatal(err)
	}
	v, _ := s.GetSetting("break_minutes")
	if v != "10" {
		t.Fatalf("expected 10, got %q", v)
	}
}

func TestLoadFocusSettings(t *testing.T) {
	s := newTestStore(t)

	cfg := s.LoadFocusSettings()
	if !cfg.AutoBreak || cfg.BreakMinutes != 5 || cfg.TimeFormat != "24h" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	s.SetSetting("auto_break", "0")
	s.SetSetting("break_minutes", "not-a-number")
	cfg = s.LoadFocusSettings()
	if cfg.AutoBreak {
		t.Fatal("auto_break should be off")
	}
	if cfg.BreakMinutes != 5 {
		t.Fatalf("bad value should fall back to 5, got %d", cfg.BreakMinutes)
	}
}

func TestTypedSettingAccessors(t *testing.T) {
	s := newTestStore(t)

	if s.DefaultPreset() != focus.PresetStandard {
		t.Fatalf("default preset should be standard, got %s", s.DefaultPreset())
	}
	s.SetSetting("default_preset", "deep")
	if s.DefaultPreset() != focus.PresetDeep {
		t.Fatal("default preset should follow the setting")
	}

	if s.WeekStart() != time.Monday {
		t.Fatal("week should start monday by default")
	}
	s.SetSetting("week_start", "sunday")
	if s.WeekStart() != time.Sunday {
		t.Fatal("week start should follow the setting")
	}

	if s.LifeExpectancyYears() != 80 {
		t.Fatalf("expectancy default should be 80, got %d", s.LifeExpectancyYears())
	}
	if s.BirthDate().Year() != 1990 {
		t.Fatalf("birth date default wrong: %v", s.BirthDate())
	}
	s.SetSetting("birth_date", "garbage")
	if s.BirthDate().Year() != 1990 {
		t.Fatal("bad birth date should fall back")
	}
}
