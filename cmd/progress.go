package cmd

import (
	"fmt"

	"github.com/abhisek/wreckdiver/internal/report"
	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Recalculate and print training progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, st, _, err := openTracker(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		result, err := tr.Recalculate(cmd.Context())
		if err != nil {
			return fmt.Errorf("recalculate progress: %w", err)
		}
		fmt.Println(report.Render(result))
		return nil
	},
}
