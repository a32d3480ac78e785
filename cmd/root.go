package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/focusflow/internal/config"
	"github.com/abhisek/focusflow/internal/log"
	"github.com/abhisek/focusflow/internal/store"
)

// Loaded by the root PersistentPreRunE before any command runs.
var (
	cfg       *config.Config
	cfgPath   string
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "focusflow",
	Short: "Pomodoro timer for the terminal",
	Long: `FocusFlow is a 25 + 5 clock: focus for a session, rest for a break, repeat.

Run without a subcommand to open the timer. Lengths are adjusted in the UI and
always start from 25/5; only completed phases are remembered.`,
	SilenceUsage: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Assigned here: setup refers to rootCmd, so the literal would form an init cycle.
	rootCmd.PersistentPreRunE = setup

	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides FOCUSFLOW_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides FOCUSFLOW_CONFIG env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides log.level)")

	rootCmd.Flags().String("variant", "", "Render variant: classic, focusflow or gradient (overrides ui.variant)")
	rootCmd.Flags().Bool("no-sound", false, "Start muted")

	rootCmd.AddCommand(countdownCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// setup loads the config and configures logging. The TUI owns the
// terminal, so it logs to a file; every other command logs to stderr.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfgPath, err = resolveConfigPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	cfg, err = config.Load(cfgPath)
	if err != nil {
		return err
	}

	opts := log.Options{Level: cfg.Log.Level}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		opts.Level = lvl
	}
	if cmd == rootCmd {
		opts.File = cfg.Log.File
		if opts.File == "" {
			if opts.File, err = log.DefaultFile(); err != nil {
				return err
			}
		}
	} else {
		opts.Console = true
	}

	logCloser, err = log.Setup(opts)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	log.Debug().Str("config_path", cfgPath).Msg("config loaded")
	return nil
}

// resolveConfigPath returns the config path using --config flag (highest
// priority), then FOCUSFLOW_CONFIG env var, then the default XDG path.
func resolveConfigPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p, nil
	}
	return config.DefaultPath()
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then history.path from the config, then FOCUSFLOW_DB env var, then the
// default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.History.Path != "" {
		return cfg.History.Path, store.EnsureDir(cfg.History.Path)
	}
	return store.DefaultDBPath()
}

// openStore opens the history database for commands that need it.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
