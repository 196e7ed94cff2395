package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var modesCmd = &cobra.Command{
	Use:   "modes NAME",
	Short: "List the modes an output supports",
	Long: `List the resolution/refresh-rate combinations the hardware reports
for one output. The active mode is marked with * and the preferred
mode with +.`,
	Example: `  # List modes for HDMI-1
  xrandrctl modes HDMI-1

  # List modes in JSON format
  xrandrctl modes HDMI-1 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runModes,
}

var modesFormat string

func init() {
	rootCmd.AddCommand(modesCmd)

	modesCmd.Flags().StringVarP(&modesFormat, "format", "f", "table", "output format (table or json)")
}

func runModes(cmd *cobra.Command, args []string) error {
	_, client, err := setup()
	if err != nil {
		return err
	}

	snap, err := client.Snapshot(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to query displays: %w", err)
	}

	display, err := snap.Display(args[0])
	if err != nil {
		return err
	}

	switch modesFormat {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(display.Modes)
	case "table":
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		defer w.Flush()

		fmt.Fprintln(w, "RESOLUTION\tREFRESH\tCURRENT\tPREFERRED")
		fmt.Fprintln(w, "----------\t-------\t-------\t---------")
		for _, m := range display.Modes {
			fmt.Fprintf(w, "%s\t%.2f\t%s\t%s\n",
				m.Resolution(), m.Refresh, yesNo(m.Current), yesNo(m.Preferred))
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (use 'table' or 'json')", modesFormat)
	}
}
