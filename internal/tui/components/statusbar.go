package components

import (
	"fmt"

	"github.com/allbin/portwatch"
	"github.com/allbin/portwatch/internal/tui/colors"
	"github.com/allbin/portwatch/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

// StatusBar is the single bottom line of the watch screen: poll mode, title,
// source indicator, the latest status line and the refresh interval.
type StatusBar struct {
	title    string
	status   string
	mode     portwatch.Mode
	source   portwatch.Source
	fallback portwatch.Fallback
	interval string
	width    int
}

func NewStatusBar(title, interval string) *StatusBar {
	return &StatusBar{
		title:    title,
		status:   "Scanning...",
		interval: interval,
	}
}

func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

// SetResult takes the status and provenance of a finished cycle.
func (sb *StatusBar) SetResult(res portwatch.Result) {
	sb.status = res.Status
	sb.mode = res.Mode
	sb.source = res.Source
	sb.fallback = res.Fallback
}

func (sb *StatusBar) Status() string {
	return sb.status
}

// indicator is a one-character hint of the snapshot source: filled for a
// full answer, hollow when the minimal provider stood in.
func (sb *StatusBar) indicator() string {
	glyph := "●"
	if sb.fallback != portwatch.FallbackNone {
		glyph = "○"
	}
	if sb.source == portwatch.SourceNone {
		glyph = "✗"
	}
	return styles.SourceStyle(sb.source, sb.fallback).Render(glyph)
}

func (sb *StatusBar) sourceText() string {
	text := sb.source.String()
	if sb.fallback != portwatch.FallbackNone {
		text = fmt.Sprintf("%s (rich %s)", text, sb.fallback)
	}
	return text
}

func (sb *StatusBar) View() string {
	terminalWidth := sb.width
	if terminalWidth <= 0 {
		terminalWidth = 80
	}

	modeBackground := colors.Blue
	if sb.mode == portwatch.ModeWatch {
		modeBackground = colors.Green
	}
	mode := lipgloss.NewStyle().
		Foreground(colors.Base).
		Background(modeBackground).
		Bold(true).
		Padding(0, 1).
		Render(fmt.Sprintf("%-7s", sb.mode.String()))

	title := lipgloss.NewStyle().
		Foreground(colors.Accent).
		Bold(true).
		Padding(0, 1).
		Render(sb.title)

	divider := lipgloss.NewStyle().
		Foreground(colors.Surface2).
		Padding(0, 1).
		Render("│")

	status := lipgloss.NewStyle().
		Foreground(colors.Text).
		Padding(0, 1).
		Render(sb.status)

	source := lipgloss.NewStyle().
		Foreground(colors.Subtext0).
		Padding(0, 1).
		Render(sb.sourceText())

	interval := lipgloss.NewStyle().
		Foreground(colors.Subtext1).
		Padding(0, 1).
		Render("every " + sb.interval)

	leftSide := lipgloss.JoinHorizontal(lipgloss.Left, mode, title, sb.indicator(), divider, status)
	rightSide := lipgloss.JoinHorizontal(lipgloss.Left, source, divider, interval)

	spacerWidth := terminalWidth - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if spacerWidth < 1 {
		spacerWidth = 1
	}
	spacer := lipgloss.NewStyle().Width(spacerWidth).Render("")

	return lipgloss.NewStyle().
		Foreground(colors.Text).
		Background(colors.Surface0).
		Width(terminalWidth).
		Render(lipgloss.JoinHorizontal(lipgloss.Left, leftSide, spacer, rightSide))
}
