package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/kadirgn/tempo/internal/focus"
)

// SaveSession inserts a session record or, when the reducer hands the
// same session back after finalization, updates it in place.
func (s *Store) SaveSession(sess focus.Session) error {
	var completedAt any
	if sess.CompletedAt != nil {
		completedAt = sess.CompletedAt.UTC().Format(time.RFC3339)
	}
	_, err := s.db.Exec(
		`INSERT INTO focus_sessions (id, preset_id, started_at, ends_at, completed_at, completed, total_minutes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			completed_at = excluded.completed_at,
			completed    = excluded.completed`,
		sess.ID, string(sess.PresetID),
		sess.StartedAt.UTC().Format(time.RFC3339),
		sess.EndsAt.UTC().Format(time.RFC3339),
		completedAt, boolToInt(sess.WasCompleted), sess.TotalMinutes,
	)
	if err != nil {
		return fmt.Errorf("save session %s: %w", sess.ID, err)
	}
	return nil
}

// SessionFilter narrows ListSessions by start time.
type SessionFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// ListSessions returns sessions newest-first.
func (s *Store) ListSessions(f SessionFilter) ([]focus.Session, error) {
	q := `SELECT id, preset_id, started_at, ends_at, completed_at, completed, total_minutes
	      FROM focus_sessions WHERE 1=1`
	var args []any
	if f.From != nil {
		q += ` AND started_at >= ?`
		args = append(args, f.From.UTC().Format(time.RFC3339))
	}
	if f.To != nil {
		q += ` AND started_at < ?`
		args = append(args, f.To.UTC().Format(time.RFC3339))
	}
	q += ` ORDER BY started_at DESC`
	if f.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []focus.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// GetSession fetches one session by id.
func (s *Store) GetSession(id string) (*focus.Session, error) {
	row := s.db.QueryRow(
		`SELECT id, preset_id, started_at, ends_at, completed_at, completed, total_minutes
		 FROM focus_sessions WHERE id = ?`, id,
	)
	sess, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	return &sess, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(r rowScanner) (focus.Session, error) {
	var sess focus.Session
	var preset, startedAt, endsAt string
	var completedAt sql.NullString
	var completed int

	err := r.Scan(&sess.ID, &preset, &startedAt, &endsAt, &completedAt, &completed, &sess.TotalMinutes)
	if err != nil {
		return sess, err
	}
	sess.PresetID = focus.PresetID(preset)
	sess.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	sess.EndsAt, _ = time.Parse(time.RFC3339, endsAt)
	if completedAt.Valid {
		t, _ := time.Parse(time.RFC3339, completedAt.String)
		sess.CompletedAt = &t
	}
	sess.WasCompleted = completed == 1
	return sess, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
