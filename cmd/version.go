package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// version is stamped by goreleaser via -ldflags; source builds report (devel).
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the installed wreckdiver version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wreckdiver %s %s/%s\n", version, runtime.GOOS, runtime.GOARCH)
	},
}
