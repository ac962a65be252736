package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List earned achievements",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, st, _, err := openTracker(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		awards, err := st.Awards().All(cmd.Context())
		if err != nil {
			return fmt.Errorf("load achievements: %w", err)
		}
		if len(awards) == 0 {
			fmt.Println("No achievements earned yet. Dive in!")
			return nil
		}
		for _, a := range awards {
			scope := "overall"
			if a.GameType != "" {
				scope = a.GameType.Display()
			}
			fmt.Printf("★ %s (%s, %s)\n    %s\n", a.Name, scope, a.EarnedDate.Local().Format("2006-01-02"), a.Description)
		}
		return nil
	},
}
