package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kadirgn/tempo/internal/store"
	"github.com/kadirgn/tempo/internal/tui"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "tempo",
	Short: "A terminal time-visualization and focus timer",
	Long: `tempo shows how much of today, this month, this year, and your
life remains, tracks countdowns to events, and runs deliberate
hold-to-start focus sessions with a one-dot-per-minute grid.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		p := tea.NewProgram(tui.NewApp(s), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run ui: %w", err)
		}
		return nil
	},
}

func openStore() (*store.Store, error) {
	path := dbPath
	if path == "" {
		var err error
		path, err = store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve db path: %w", err)
		}
	}
	s, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the database file (default: user config dir)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
