package keys

import "github.com/charmbracelet/bubbles/key"

// WatchKeys adds port list navigation and manual refresh to the common keys
type WatchKeys struct {
	CommonKeys
	Refresh     key.Binding
	Dismiss     key.Binding
	ToggleSince key.Binding
	Up          key.Binding
	Down        key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
}

func NewWatchKeys() WatchKeys {
	return WatchKeys{
		CommonKeys: NewCommonKeys(),
		Refresh: key.NewBinding(
			key.WithKeys("r", "f5"),
			key.WithHelp("r", "refresh now"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss notification"),
		),
		ToggleSince: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle since column"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l", "pgdown"),
			key.WithHelp("→/l", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h", "pgup"),
			key.WithHelp("←/h", "prev page"),
		),
	}
}

func (k WatchKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Refresh, k.Quit}
}

func (k WatchKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPage, k.PrevPage},
		{k.Refresh, k.Dismiss, k.ToggleSince},
		{k.Help, k.Quit},
	}
}
