package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dadmoscow/xrandrctl/internal/deps"
)

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Check external dependencies",
	Long: `Check that the external commands xrandrctl shells out to are
available on the execution path, and that an X server is reachable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		results := deps.CheckAll()
		fmt.Print(deps.FormatAll(results))

		if !deps.HasAllRequired() {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(depsCmd)
}
