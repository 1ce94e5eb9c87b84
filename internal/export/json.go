package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/kadirgn/tempo/internal/focus"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Count      int           `json:"count"`
	Sessions   []jsonSession `json:"sessions"`
}

type jsonSession struct {
	ID             string `json:"id"`
	Preset         string `json:"preset"`
	StartedAt      string `json:"started_at"`
	EndsAt         string `json:"ends_at"`
	CompletedAt    string `json:"completed_at,omitempty"`
	Completed      bool   `json:"completed"`
	PlannedMinutes int    `json:"planned_minutes"`
}

func ToJSON(sessions []focus.Session, path string) error {
	out := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(sessions),
	}

	for _, s := range sessions {
		completedAt := ""
		if s.CompletedAt != nil {
			completedAt = s.CompletedAt.Local().Format(time.RFC3339)
		}
		out.Sessions = append(out.Sessions, jsonSession{
			ID:             s.ID,
			Preset:         string(s.PresetID),
			StartedAt:      s.StartedAt.Local().Format(time.RFC3339),
			EndsAt:         s.EndsAt.Local().Format(time.RFC3339),
			CompletedAt:    completedAt,
			Completed:      s.WasCompleted,
			PlannedMinutes: s.TotalMinutes,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
