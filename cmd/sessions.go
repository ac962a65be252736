package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/wreckdiver/internal/game"
	"github.com/abhisek/wreckdiver/internal/session"
	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Inspect and manage session records",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all recorded sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, _, err := openTracker(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		records, err := st.Sessions().All(cmd.Context())
		if err != nil {
			return fmt.Errorf("load sessions: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}
		for _, r := range records {
			fmt.Printf("%s  %-24s %-12s %-9s %3d/%-3d %3d%%  %s\n",
				r.ID, r.GameType, r.Difficulty, r.Status,
				r.Score, r.MaxScore, r.CompletionPercentage,
				r.StartTime.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var sessionsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import session records from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		records, err := game.ParseRecords(data)
		if err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}

		_, st, _, err := openTracker(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		for _, r := range records {
			if err := st.Sessions().Insert(cmd.Context(), r); err != nil {
				return fmt.Errorf("insert session %s: %w", r.ID, err)
			}
		}
		fmt.Printf("Imported %d session(s).\n", len(records))
		return nil
	},
}

var sessionsSweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Abandon active sessions older than the configured timeout",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, fileCfg, err := openTracker(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		svc := session.NewService(st.Sessions())
		swept, err := svc.Sweep(cmd.Context(), fileCfg.SessionTimeout())
		if err != nil {
			return fmt.Errorf("sweep sessions: %w", err)
		}
		fmt.Printf("Abandoned %d stale session(s).\n", swept)
		return nil
	},
}

func init() {
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsImportCmd)
	sessionsCmd.AddCommand(sessionsSweepCmd)
}
