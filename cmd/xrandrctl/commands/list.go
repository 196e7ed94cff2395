package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dadmoscow/xrandrctl/internal/randr"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List display outputs",
	Long: `List the video outputs reported by xrandr with their connection
state, active resolution, rotation and placement.`,
	Example: `  # List outputs in table format (default)
  xrandrctl list

  # List outputs in JSON format
  xrandrctl list --format json

  # List only connected outputs
  xrandrctl list --connected

  # List only enabled outputs
  xrandrctl list --enabled`,
	RunE: runList,
}

var (
	listFormat    string
	listConnected bool
	listEnabled   bool
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "output format (table or json)")
	listCmd.Flags().BoolVarP(&listConnected, "connected", "c", false, "show only connected outputs")
	listCmd.Flags().BoolVarP(&listEnabled, "enabled", "e", false, "show only enabled outputs")
}

func runList(cmd *cobra.Command, args []string) error {
	_, client, err := setup()
	if err != nil {
		return err
	}

	snap, err := client.Snapshot(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to query displays: %w", err)
	}

	displays := snap.Displays
	if listConnected {
		displays = snap.Connected()
	}
	if listEnabled {
		displays = snap.Enabled()
	}

	switch listFormat {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(displays)
	case "table":
		return printDisplaysTable(displays)
	default:
		return fmt.Errorf("unsupported format: %s (use 'table' or 'json')", listFormat)
	}
}

func printDisplaysTable(displays []randr.Display) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "NAME\tCONNECTED\tENABLED\tPRIMARY\tRESOLUTION\tROTATION\tPOSITION")
	fmt.Fprintln(w, "----\t---------\t-------\t-------\t----------\t--------\t--------")

	for _, d := range displays {
		resolution := "-"
		if d.Resolution != nil {
			resolution = d.Resolution.String()
		}
		position := "-"
		if d.Offset != nil {
			position = fmt.Sprintf("+%d+%d", d.Offset.X, d.Offset.Y)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			d.Name, yesNo(d.Connected), yesNo(d.Enabled), yesNo(d.Primary),
			resolution, d.Rotation, position)
	}

	return nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
