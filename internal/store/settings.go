package store

import (
	"fmt"
	"strconv"
	"time"

	"github.com/kadirgn/tempo/internal/focus"
)

type Setting struct {
	Key   string
	Value string
}

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

func (s *Store) getBool(key string, fallback bool) bool {
	v, err := s.GetSetting(key)
	if err != nil {
		return fallback
	}
	return v == "1" || v == "true"
}

func (s *Store) getInt(key string, fallback int) int {
	v, err := s.GetSetting(key)
	if err != nil {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// LoadFocusSettings builds the reducer configuration from the
// settings table, falling back to defaults for missing or bad rows.
func (s *Store) LoadFocusSettings() focus.Settings {
	return focus.Settings{
		AutoBreak:    s.getBool("auto_break", true),
		BreakMinutes: s.getInt("break_minutes", 5),
		Sound:        s.getBool("sound", true),
		Vibration:    s.getBool("vibration", true),
		TimeFormat:   s.valueOr("time_format", "24h"),
	}
}

// DefaultPreset returns the preset selected on startup.
func (s *Store) DefaultPreset() focus.PresetID {
	return focus.GetPreset(focus.PresetID(s.valueOr("default_preset", "standard"))).ID
}

// WeekStart reads the configured first day of the week.
func (s *Store) WeekStart() time.Weekday {
	if s.valueOr("week_start", "monday") == "sunday" {
		return time.Sunday
	}
	return time.Monday
}

// BirthDate reads the birth date used by the life view.
func (s *Store) BirthDate() time.Time {
	t, err := time.Parse("2006-01-02", s.valueOr("birth_date", "1990-01-01"))
	if err != nil {
		return time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return t
}

// LifeExpectancyYears reads the horizon of the life view.
func (s *Store) LifeExpectancyYears() int {
	return s.getInt("life_expectancy_years", 80)
}

func (s *Store) valueOr(key, fallback string) string {
	v, err := s.GetSetting(key)
	if err != nil || v == "" {
		return fallback
	}
	return v
}
