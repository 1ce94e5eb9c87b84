package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kadirgn/tempo/internal/focus"
)

// SaveActiveTimer persists the single resumable-timer snapshot. A nil
// timer clears it, so callers can unconditionally save after every
// dispatch.
func (s *Store) SaveActiveTimer(at *focus.ActiveTimer) error {
	if at == nil {
		return s.ClearActiveTimer()
	}
	_, err := s.db.Exec(
		`INSERT INTO active_timer (id, session_id, phase, preset_id, started_at, ends_at, total_minutes)
		 VALUES (1, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			session_id    = excluded.session_id,
			phase         = excluded.phase,
			preset_id     = excluded.preset_id,
			started_at    = excluded.started_at,
			ends_at       = excluded.ends_at,
			total_minutes = excluded.total_minutes`,
		at.SessionID, string(at.Phase), string(at.PresetID),
		at.StartedAt.UTC().Format(time.RFC3339),
		at.EndsAt.UTC().Format(time.RFC3339),
		at.TotalMinutes,
	)
	if err != nil {
		return fmt.Errorf("save active timer: %w", err)
	}
	return nil
}

// LoadActiveTimer returns the persisted snapshot, or nil when no timer
// was running.
func (s *Store) LoadActiveTimer() (*focus.ActiveTimer, error) {
	var at focus.ActiveTimer
	var phase, preset, startedAt, endsAt string

	err := s.db.QueryRow(
		`SELECT session_id, phase, preset_id, started_at, ends_at, total_minutes
		 FROM active_timer WHERE id = 1`,
	).Scan(&at.SessionID, &phase, &preset, &startedAt, &endsAt, &at.TotalMinutes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load active timer: %w", err)
	}

	at.Phase = focus.Phase(phase)
	at.PresetID = focus.PresetID(preset)
	at.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	at.EndsAt, _ = time.Parse(time.RFC3339, endsAt)
	return &at, nil
}

func (s *Store) ClearActiveTimer() error {
	_, err := s.db.Exec(`DELETE FROM active_timer WHERE id = 1`)
	if err != nil {
		return fmt.Errorf("clear active timer: %w", err)
	}
	return nil
}
