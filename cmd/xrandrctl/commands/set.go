package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dadmoscow/xrandrctl/internal/randr"
)

var setCmd = &cobra.Command{
	Use:   "set NAME",
	Short: "Change an output's configuration",
	Long: `Change resolution, rotation, placement or the primary flag of one
output.

The requested settings are validated against the current xrandr query
before anything is applied: an unsupported resolution, an unknown
rotation or a placement relative to an unknown output is rejected
without spawning xrandr.`,
	Example: `  # Set the resolution
  xrandrctl set HDMI-1 --mode 1920x1080

  # Rotate and make primary
  xrandrctl set HDMI-1 --rotate left --primary

  # Place DP-1 right of HDMI-1
  xrandrctl set DP-1 --right-of HDMI-1

  # Enable with the preferred mode
  xrandrctl set DP-1 --auto`,
	Args: cobra.ExactArgs(1),
	RunE: runSet,
}

var (
	setMode    string
	setRotate  string
	setLeftOf  string
	setRightOf string
	setAbove   string
	setBelow   string
	setSameAs  string
	setPrimary bool
	setAuto    bool
)

func init() {
	rootCmd.AddCommand(setCmd)

	setCmd.Flags().StringVarP(&setMode, "mode", "m", "", "resolution to set, as WxH")
	setCmd.Flags().StringVarP(&setRotate, "rotate", "r", "", "rotation (normal, right, inverted, left)")
	setCmd.Flags().StringVar(&setLeftOf, "left-of", "", "place left of the named output")
	setCmd.Flags().StringVar(&setRightOf, "right-of", "", "place right of the named output")
	setCmd.Flags().StringVar(&setAbove, "above", "", "place above the named output")
	setCmd.Flags().StringVar(&setBelow, "below", "", "place below the named output")
	setCmd.Flags().StringVar(&setSameAs, "same-as", "", "mirror the named output")
	setCmd.Flags().BoolVarP(&setPrimary, "primary", "p", false, "mark as the primary output")
	setCmd.Flags().BoolVarP(&setAuto, "auto", "a", false, "enable with the preferred mode")
}

func runSet(cmd *cobra.Command, args []string) error {
	change, err := buildChange(args[0])
	if err != nil {
		return err
	}
	return applyChange(cmd.Context(), change)
}

func buildChange(output string) (randr.Change, error) {
	change := randr.NewChange(output)

	if setAuto {
		change = change.TurnOn()
	}

	if setMode != "" {
		res, err := randr.ParseResolution(setMode)
		if err != nil {
			return randr.Change{}, err
		}
		change = change.WithResolution(res)
	}

	if setRotate != "" {
		change = change.WithRotation(randr.Rotation(setRotate))
	}

	positions := map[randr.Relation]string{
		randr.RelationLeftOf:  setLeftOf,
		randr.RelationRightOf: setRightOf,
		randr.RelationAbove:   setAbove,
		randr.RelationBelow:   setBelow,
		randr.RelationSameAs:  setSameAs,
	}
	for rel, target := range positions {
		if target == "" {
			continue
		}
		if change.Position != nil {
			return randr.Change{}, fmt.Errorf("only one placement flag may be given")
		}
		change = change.WithPosition(rel, target)
	}

	if setPrimary {
		change = change.AsPrimary()
	}

	return change, nil
}

// applyChange validates and applies one change, then re-queries and
// prints the output's resulting state.
func applyChange(ctx context.Context, change randr.Change) error {
	_, client, err := setup()
	if err != nil {
		return err
	}

	snap, err := client.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to query displays: %w", err)
	}

	if err := client.Apply(ctx, snap, change); err != nil {
		return err
	}

	fresh, err := client.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("applied, but failed to re-query displays: %w", err)
	}

	display, err := fresh.Display(change.Output)
	if err != nil {
		return err
	}

	return printDisplaysTable([]randr.Display{*display})
}
