package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/focusflow/internal/alert"
	"github.com/abhisek/focusflow/internal/app"
	"github.com/abhisek/focusflow/internal/config"
	"github.com/abhisek/focusflow/internal/log"
	"github.com/abhisek/focusflow/internal/ui/theme"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	if v, _ := cmd.Flags().GetString("variant"); v != "" {
		if _, ok := theme.ParseVariant(v); !ok {
			return fmt.Errorf("unknown variant %q: must be classic, focusflow or gradient", v)
		}
		cfg.UI.Variant = v
	}
	if muted, _ := cmd.Flags().GetBool("no-sound"); muted {
		cfg.Sound.Enabled = false
	}

	opts := app.Options{
		Config:     cfg,
		ConfigPath: cfgPath,
		RunID:      uuid.New().String(),
	}

	if cfg.History.Enabled {
		st, err := openStore(cmd)
		if err != nil {
			// The timer works without history; say why it is missing.
			fmt.Fprintln(os.Stderr, "History unavailable:", err)
			log.Warn().Err(err).Msg("history disabled")
		} else {
			defer st.Close()
			opts.History = st.PhaseRepo()
		}
	}

	opts.Alert = alert.Open(alertOptions(cfg, os.Stdout))

	log.Info().Str("run_id", opts.RunID).Str("variant", cfg.UI.Variant).Msg("starting timer")
	return app.Run(opts)
}

// alertOptions maps the sound section onto the player options. The terminal
// bell is a fallback only when sound.bell allows it.
func alertOptions(cfg *config.Config, bell io.Writer) alert.Options {
	opts := alert.Options{
		Enabled: cfg.Sound.Enabled,
		File:    cfg.Sound.File,
		Volume:  cfg.Sound.Volume,
	}
	if cfg.Sound.Bell {
		opts.Fallback = bell
	}
	return opts
}
