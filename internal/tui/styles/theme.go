package styles

import (
	"github.com/allbin/portwatch"
	"github.com/allbin/portwatch/internal/tui/colors"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Header styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Accent).
			Background(colors.Surface0).
			Padding(0, 1)

	// Source indicator styles
	SourceRichStyle = lipgloss.NewStyle().
			Foreground(colors.Added).
			Bold(true)

	SourceFallbackStyle = lipgloss.NewStyle().
				Foreground(colors.Degraded).
				Bold(true)

	SourceNoneStyle = lipgloss.NewStyle().
			Foreground(colors.Removed).
			Bold(true)

	// Port table styles
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colors.Text)

	TableBaseStyle = lipgloss.NewStyle().
			Foreground(colors.Subtext1).
			BorderForeground(colors.Surface2).
			Align(lipgloss.Left)

	RecentRowStyle = lipgloss.NewStyle().
			Foreground(colors.Added).
			Bold(true)

	// Notification banner
	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Added).
			Foreground(colors.Text).
			Padding(0, 1)

	ToastTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Added)

	// Empty list placeholder
	InfoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Accent).
			Align(lipgloss.Center)
)

// SourceStyle picks the indicator style for where a cycle's ports came from.
func SourceStyle(source portwatch.Source, fallback portwatch.Fallback) lipgloss.Style {
	switch {
	case source == portwatch.SourceRich:
		return SourceRichStyle
	case source == portwatch.SourceMinimal && fallback != portwatch.FallbackNone:
		return SourceFallbackStyle
	case source == portwatch.SourceMinimal:
		return SourceRichStyle
	default:
		return SourceNoneStyle
	}
}
