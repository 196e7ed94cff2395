package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion sets the application version (called from main via
// -ldflags at release time).
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show xrandrctl and xrandr versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("xrandrctl %s\n", version)

		_, client, err := setup()
		if err != nil {
			return err
		}

		xv, err := client.Version(cmd.Context())
		if err != nil {
			fmt.Println("xrandr: not available")
			return nil
		}
		fmt.Println(xv)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
