package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/focusflow/internal/log"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all recorded history",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Fprint(cmd.OutOrStdout(), "Delete all recorded phases? [y/N] ")
			line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(line)); a != "y" && a != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := st.PhaseRepo().Clear(cmd.Context())
		if err != nil {
			return err
		}
		log.Info().Int64("deleted", n).Msg("history cleared")
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d phase records.\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
