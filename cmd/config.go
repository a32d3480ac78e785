package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/focusflow/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(cfgPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := config.Save(cfgPath, config.Default()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Wrote", cfgPath)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), cfgPath)
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}
