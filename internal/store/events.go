package store

import (
	"fmt"
	"time"
)

// Event is a countdown to a future moment or an elapsed-time tracker
// since a past one.
type Event struct {
	ID         int64
	Name       string
	TargetTime time.Time
	Kind       string // countdown | elapsed
	Color      string
	CreatedAt  time.Time
}

const (
	EventCountdown = "countdown"
	EventElapsed   = "elapsed"
)

func (s *Store) CreateEvent(name string, target time.Time, kind, color string) (*Event, error) {
	if kind != EventCountdown && kind != EventElapsed {
		return nil, fmt.Errorf("create event: unknown kind %q", kind)
	}
	res, err := s.db.Exec(
		`INSERT INTO events (name, target_time, kind, color) VALUES (?, ?, ?, ?)`,
		name, target.UTC().Format(time.RFC3339), kind, color,
	)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetEvent(id)
}

func (s *Store) GetEvent(id int64) (*Event, error) {
	e := &Event{}
	var target, created string
	err := s.db.QueryRow(
		`SELECT id, name, target_time, kind, color, created_at FROM events WHERE id = ?`, id,
	).Scan(&e.ID, &e.Name, &target, &e.Kind, &e.Color, &created)
	if err != nil {
		return nil, fmt.Errorf("get event %d: %w", id, err)
	}
	e.TargetTime, _ = time.Parse(time.RFC3339, target)
	e.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return e, nil
}

// ListEvents returns countdown events soonest-target-first.
func (s *Store) ListEvents() ([]Event, error) {
	rows, err := s.db.Query(
		`SELECT id, name, target_time, kind, color, created_at FROM events ORDER BY target_time`,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var target, created string
		if err := rows.Scan(&e.ID, &e.Name, &target, &e.Kind, &e.Color, &created); err != nil {
			return nil, err
		}
		e.TargetTime, _ = time.Parse(time.RFC3339, target)
		e.CreatedAt, _ = time.Parse(time.RFC3339, created)
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *Store) UpdateEvent(id int64, name string, target time.Time, kind, color string) error {
	_, err := s.db.Exec(
		`UPDATE events SET name = ?, target_time = ?, kind = ?, color = ? WHERE id = ?`,
		name, target.UTC().Format(time.RFC3339), kind, color, id,
	)
	if err != nil {
		return fmt.Errorf("update event %d: %w", id, err)
	}
	return nil
}

func (s *Store) DeleteEvent(id int64) error {
	_, err := s.db.Exec(`DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete event %d: %w", id, err)
	}
	return nil
}
