package commands

import (
	"github.com/spf13/cobra"

	"github.com/dadmoscow/xrandrctl/internal/randr"
)

var offCmd = &cobra.Command{
	Use:   "off NAME",
	Short: "Disable an output",
	Example: `  # Turn HDMI-1 off
  xrandrctl off HDMI-1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyChange(cmd.Context(), randr.NewChange(args[0]).TurnOff())
	},
}

var autoCmd = &cobra.Command{
	Use:   "auto NAME",
	Short: "Enable an output with its preferred mode",
	Long: `Enable an output and let xrandr pick the hardware-preferred mode,
resetting any explicit mode selection.`,
	Example: `  # Turn DP-1 on with the preferred mode
  xrandrctl auto DP-1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyChange(cmd.Context(), randr.NewChange(args[0]).TurnOn())
	},
}

func init() {
	rootCmd.AddCommand(offCmd)
	rootCmd.AddCommand(autoCmd)
}
