package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/kadirgn/tempo/internal/export"
	"github.com/kadirgn/tempo/internal/store"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:       "export [csv|json]",
	Short:     "Export focus session history",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"csv", "json"},
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		sessions, err := s.ListSessions(store.SessionFilter{})
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}

		format := args[0]
		path := exportOut
		if path == "" {
			home, _ := os.UserHomeDir()
			path = filepath.Join(home, fmt.Sprintf("tempo-export-%s.%s", time.Now().Format("2006-01-02"), format))
		}

		switch format {
		case "csv":
			err = export.ToCSV(sessions, path)
		case "json":
			err = export.ToJSON(sessions, path)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "exported %d sessions to %s\n", len(sessions), path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file path")
	rootCmd.AddCommand(exportCmd)
}
