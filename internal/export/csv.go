package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/kadirgn/tempo/internal/focus"
)

func ToCSV(sessions []focus.Session, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"ID", "Preset", "Started", "Scheduled End", "Finished", "Completed", "Planned Minutes"}); err != nil {
		return err
	}

	for _, s := range sessions {
		finished := ""
		if s.CompletedAt != nil {
			finished = s.CompletedAt.Local().Format(time.RFC3339)
		}
		completed := "no"
		if s.WasCompleted {
			completed = "yes"
		}

		row := []string{
			s.ID,
			string(s.PresetID),
			s.StartedAt.Local().Format(time.RFC3339),
			s.EndsAt.Local().Format(time.RFC3339),
			finished,
			completed,
			fmt.Sprintf("%d", s.TotalMinutes),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
