package cmd

import (
	"fmt"

	"github.com/abhisek/wreckdiver/internal/report"
	"github.com/spf13/cobra"
)

var certCmd = &cobra.Command{
	Use:   "cert",
	Short: "Show certification readiness and what is still missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, st, _, err := openTracker(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		status, err := tr.Eligibility(cmd.Context())
		if err != nil {
			return fmt.Errorf("evaluate eligibility: %w", err)
		}
		fmt.Println(report.RenderEligibility(status))
		return nil
	},
}
