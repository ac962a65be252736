package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/wreckdiver/internal/selfupdate"
	"github.com/spf13/cobra"
)

var updateCheckOnly bool

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Install the newest wreckdiver release",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Minute)
		defer cancel()

		checker := selfupdate.NewChecker(selfupdate.WithTimeout(3 * time.Minute))

		if updateCheckOnly {
			res, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
			if err != nil {
				return err
			}
			if res.UpdateAvailable {
				fmt.Printf("Release %s is available (running %s).\n", res.LatestVersion, version)
			} else {
				fmt.Println("wreckdiver is up to date.")
			}
			return nil
		}

		tag, err := checker.Apply(ctx, version, func(stage selfupdate.Stage, detail string) {
			fmt.Printf("  %-9s %s\n", stage, detail)
		})
		switch {
		case err == nil:
			fmt.Println("Installed", tag)
			return nil
		case errors.Is(err, selfupdate.ErrAlreadyLatest):
			fmt.Println("wreckdiver is up to date.")
			return nil
		case errors.Is(err, selfupdate.ErrDevBuild):
			return errors.New("this is a source build; update it the way it was installed (go install, package manager)")
		case os.IsPermission(err):
			return fmt.Errorf("%w (the install location is not writable; retry with elevated permissions)", err)
		}
		return err
	},
}

func init() {
	updateCmd.Flags().BoolVar(&updateCheckOnly, "check", false, "Only report whether a newer release exists")
}
