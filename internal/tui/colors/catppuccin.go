package colors

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha palette, trimmed to what the watch screen uses
var (
	Base     = lipgloss.Color("#1e1e2e") // Dark background
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Surface2 = lipgloss.Color("#585b70")
	Overlay0 = lipgloss.Color("#6c7086")
	Subtext0 = lipgloss.Color("#a6adc8")
	Subtext1 = lipgloss.Color("#bac2de")
	Text     = lipgloss.Color("#cdd6f4") // Main text

	Blue   = lipgloss.Color("#89b4fa")
	Teal   = lipgloss.Color("#94e2d5")
	Green  = lipgloss.Color("#a6e3a1")
	Yellow = lipgloss.Color("#f9e2af")
	Peach  = lipgloss.Color("#fab387")
	Red    = lipgloss.Color("#f38ba8")
	Mauve  = lipgloss.Color("#cba6f7")
)

// Roles the palette plays on screen
var (
	Accent   = Mauve  // Titles, port names
	Added    = Green  // Newly plugged ports, healthy source
	Removed  = Red    // Unplugged ports, errors
	Degraded = Yellow // Minimal-provider fallback
	Muted    = Overlay0
)
