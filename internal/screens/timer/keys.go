package timer

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Toggle      key.Binding
	Reset       key.Binding
	SessionUp   key.Binding
	SessionDown key.Binding
	BreakUp     key.Binding
	BreakDown   key.Binding
	Presets     []key.Binding // parallel to pomodoro.Presets
	Mute        key.Binding
	Variant     key.Binding
	History     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle: key.NewBinding(
			key.WithKeys("space", "enter"),
			key.WithHelp("Space", "Start/Pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("R", "Reset"),
		),
		SessionUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "Session +1"),
		),
		SessionDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "Session −1"),
		),
		BreakUp: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "Break +1"),
		),
		BreakDown: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "Break −1"),
		),
		Presets: []key.Binding{
			key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "Pomodoro")),
			key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "Short")),
			key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "Long")),
		},
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("M", "Mute"),
		),
		Variant: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("V", "Style"),
		),
		History: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "History"),
		),
	}
}
