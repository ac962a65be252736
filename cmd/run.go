package cmd

import (
	"fmt"

	"github.com/abhisek/wreckdiver/internal/config"
	"github.com/abhisek/wreckdiver/internal/dashboard"
	"github.com/abhisek/wreckdiver/internal/progress"
	"github.com/abhisek/wreckdiver/internal/store"
	"github.com/abhisek/wreckdiver/internal/tracker"
	"github.com/spf13/cobra"
)

// openTracker opens the store, loads the config file, and wires the
// progress engine. Callers own closing the returned store.
func openTracker(cmd *cobra.Command) (*tracker.Tracker, *store.Store, config.FileConfig, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, config.FileConfig{}, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, config.FileConfig{}, fmt.Errorf("open store: %w", err)
	}

	fileCfg, err := config.Load(resolveConfigPath(cmd))
	if err != nil {
		st.Close()
		return nil, nil, config.FileConfig{}, fmt.Errorf("load config: %w", err)
	}
	cfg, err := fileCfg.Apply(progress.DefaultConfig())
	if err != nil {
		st.Close()
		return nil, nil, config.FileConfig{}, fmt.Errorf("apply config: %w", err)
	}
	eng, err := progress.NewEngine(cfg)
	if err != nil {
		st.Close()
		return nil, nil, config.FileConfig{}, fmt.Errorf("build engine: %w", err)
	}

	return tracker.New(st, eng), st, fileCfg, nil
}

// runDashboard launches the interactive TUI.
func runDashboard(cmd *cobra.Command) error {
	tr, st, _, err := openTracker(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	return dashboard.Run(tr)
}
