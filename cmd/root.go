package cmd

import (
	"github.com/abhisek/wreckdiver/internal/config"
	"github.com/abhisek/wreckdiver/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wreckdiver",
	Short: "Underwater archaeology training tracker",
	Long:  "Wreckdiver — terminal companion for junior underwater archaeologists: tracks mini-game sessions, training progress, and certification readiness.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides WRECKDIVER_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to TOML config file (default: XDG config dir)")

	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(certCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then WRECKDIVER_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveConfigPath returns the config path from --config or the XDG default.
func resolveConfigPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p
	}
	return config.DefaultConfigPath()
}
