package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/focusflow/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for screens that show a status
// badge on the right of the header.
type StatusProvider interface {
	Status() layout.Status
}

// BroadcastMsg marks messages the router delivers to every screen on the
// stack rather than only the active one. Embed Broadcast to implement it.
type BroadcastMsg interface {
	broadcast()
}

// Broadcast is embedded in message types to make them a BroadcastMsg.
type Broadcast struct{}

func (Broadcast) broadcast() {}

// PreferencesMsg carries display and sound settings that changed on disk.
// Zero fields are unchanged and must be left alone.
type PreferencesMsg struct {
	Broadcast
	Variant string
	Sound   *bool
}
