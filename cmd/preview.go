package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/focusflow/internal/app"
	"github.com/abhisek/focusflow/internal/ui/layout"
	"github.com/abhisek/focusflow/internal/ui/theme"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print a frame of each render variant (no terminal UI)",
	Long: `Render the timer screen to stdout without starting the TUI.

Time is simulated, so --elapsed can show any point of the cycle instantly.
Useful for comparing variants and checking how a terminal draws the colors.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("variant", "", "Render only this variant: classic, focusflow or gradient")
	previewCmd.Flags().Duration("elapsed", 0, "Simulated running time, e.g. 90s or 26m")
	previewCmd.Flags().Int("width", 80, "Frame width")
	previewCmd.Flags().Int("height", 30, "Frame height")
}

func runPreview(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("variant")
	elapsed, _ := cmd.Flags().GetDuration("elapsed")
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")

	if elapsed < 0 {
		return fmt.Errorf("--elapsed must not be negative, got %s", elapsed)
	}
	if layout.IsTooSmall(width, height) {
		return fmt.Errorf("frame must be at least %dx%d, got %dx%d",
			layout.MinWidth, layout.MinHeight, width, height)
	}

	variants := theme.Variants
	if name != "" {
		v, ok := theme.ParseVariant(name)
		if !ok {
			return fmt.Errorf("unknown variant %q: must be classic, focusflow or gradient", name)
		}
		variants = []theme.Variant{v}
	}

	for i, v := range variants {
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "── %s (%s elapsed) ──\n", v, elapsed.Truncate(time.Second))
		fmt.Fprintln(cmd.OutOrStdout(), app.Snapshot(app.SnapshotOptions{
			Variant: v,
			Elapsed: elapsed,
			Width:   width,
			Height:  height,
		}))
	}
	return nil
}
