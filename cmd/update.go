package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/focusflow/internal/log"
	"github.com/abhisek/focusflow/internal/selfupdate"
)

const updateTimeout = 2 * time.Minute

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Replace this binary with a published release",
	Long: `Download a focusflow release from GitHub, verify it against the
release's checksums.txt, and swap it in place of the running binary.

Without --to the latest release is installed, and only if it is newer.`,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().String("to", "", "Install this release tag instead of the latest (allows downgrades)")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	target, _ := cmd.Flags().GetString("to")
	out := cmd.OutOrStdout()

	ctx, cancel := context.WithTimeout(cmd.Context(), updateTimeout)
	defer cancel()

	checker := selfupdate.NewChecker(selfupdate.WithTimeout(updateTimeout))
	rel, err := checker.Update(ctx, &selfupdate.UpdateInput{
		CurrentVersion: version,
		TargetVersion:  target,
	}, func(p selfupdate.UpdateProgress) {
		log.Debug().Str("stage", string(p.Stage)).Msg("update progress")
		fmt.Fprintln(out, p.Message)
	})

	switch {
	case err == nil:
		fmt.Fprintf(out, "focusflow %s -> %s\n", version, rel.Tag)
		return nil
	case errors.Is(err, selfupdate.ErrDevBuild):
		fmt.Fprintln(out, "This is a development build; install a release to enable updates.")
		return nil
	case errors.Is(err, selfupdate.ErrAlreadyLatest):
		fmt.Fprintf(out, "focusflow %s is the latest release.\n", version)
		return nil
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w\n\nThe binary's directory is not writable; rerun with sufficient permissions", err)
	default:
		return err
	}
}
