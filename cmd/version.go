package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/focusflow/internal/selfupdate"
)

// version is set via -ldflags at build time.
var version = selfupdate.DevVersion

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "focusflow", version)

		check, _ := cmd.Flags().GetBool("check")
		if !check {
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()
		res, err := selfupdate.NewChecker().Check(ctx, &selfupdate.CheckInput{Version: version})
		if errors.Is(err, selfupdate.ErrDevBuild) {
			fmt.Fprintln(cmd.OutOrStdout(), "Development build; nothing to compare.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if res.UpdateAvailable {
			fmt.Fprintf(cmd.OutOrStdout(), "Update available: %s (%s)\nRun: focusflow update\n",
				res.LatestVersion, res.ReleaseURL)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Up to date.")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Check GitHub for a newer release")
}
