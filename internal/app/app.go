package app

import (
	"context"
	"fmt"
	"os"
	"sync"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/focusflow/internal/alert"
	"github.com/abhisek/focusflow/internal/config"
	"github.com/abhisek/focusflow/internal/log"
	"github.com/abhisek/focusflow/internal/router"
	"github.com/abhisek/focusflow/internal/screen"
	"github.com/abhisek/focusflow/internal/screens/history"
	"github.com/abhisek/focusflow/internal/screens/timer"
	"github.com/abhisek/focusflow/internal/screens/welcome"
	"github.com/abhisek/focusflow/internal/store"
	"github.com/abhisek/focusflow/internal/ui/layout"
	"github.com/abhisek/focusflow/internal/ui/theme"
)

// Options carries the dependencies the TUI needs. Only Config is required.
type Options struct {
	Config *config.Config

	// ConfigPath is watched for live changes when non-empty.
	ConfigPath string

	// History stores completed phases. Nil disables recording.
	History store.PhaseRepo
	RunID   string

	Alert *alert.Gate
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel. The focusflow variant opens on the
// splash screen unless it is disabled in the config.
func newAppModel(opts Options) AppModel {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	variant, _ := theme.ParseVariant(cfg.UI.Variant)

	newTimer := func() screen.Screen {
		t := timer.Options{
			Variant: variant,
			Alert:   opts.Alert,
			RunID:   opts.RunID,
		}
		if opts.History != nil {
			t.History = opts.History
			t.OpenHistory = func() screen.Screen { return history.New(opts.History) }
		}
		return timer.New(t)
	}

	var first screen.Screen
	if variant == theme.VariantFocusFlow && cfg.UI.Splash {
		first = welcome.New(newTimer)
	} else {
		first = newTimer()
	}
	return AppModel{
		router: router.New(first),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render composes header, active screen and footer for the current size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	var status layout.Status
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Q", Description: "Quit"})

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// preferenceChanges reports the live settings that differ between two
// versions of the config file. Unchanged settings stay zero so a reload
// never undoes command-line overrides or the in-session mute key.
func preferenceChanges(prev, next *config.Config) (screen.PreferencesMsg, bool) {
	var msg screen.PreferencesMsg
	changed := false
	if next.UI.Variant != prev.UI.Variant {
		msg.Variant = next.UI.Variant
		changed = true
	}
	if next.Sound.Enabled != prev.Sound.Enabled {
		on := next.Sound.Enabled
		msg.Sound = &on
		changed = true
	}
	return msg, changed
}

// Run starts the Bubble Tea program and, when a config path is given,
// forwards config changes to the running screens.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))

	if opts.ConfigPath != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Diff against the file, not opts.Config, which carries flag overrides.
		last, err := config.Load(opts.ConfigPath)
		if err != nil {
			last = config.Default()
		}
		var mu sync.Mutex
		w, err := config.NewWatcher(opts.ConfigPath, config.DefaultDebounce, func(cfg *config.Config) {
			mu.Lock()
			msg, changed := preferenceChanges(last, cfg)
			last = cfg
			mu.Unlock()
			if changed {
				log.Debug().Str("variant", msg.Variant).Bool("sound_changed", msg.Sound != nil).Msg("preferences changed")
				p.Send(msg)
			}
		})
		if err == nil {
			err = w.Start(ctx)
			defer w.Close()
		}
		if err != nil {
			log.Warn().Err(err).Msg("config hot reload disabled")
		}
	}

	_, err := p.Run()
	if opts.Alert != nil {
		opts.Alert.Stop()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
