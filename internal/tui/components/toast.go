package components

import (
	"time"

	"github.com/allbin/portwatch"
	"github.com/allbin/portwatch/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DefaultToastDuration is how long a notification stays on screen.
const DefaultToastDuration = 3 * time.Second

// ToastExpiredMsg hides the toast it names. Expiry of an older toast does not
// hide a newer one.
type ToastExpiredMsg struct {
	ID int
}

// Toast is the transient banner shown when ports are plugged in.
type Toast struct {
	duration     time.Duration
	notification portwatch.Notification
	visible      bool
	id           int
	width        int
}

func NewToast(duration time.Duration) *Toast {
	if duration <= 0 {
		duration = DefaultToastDuration
	}
	return &Toast{duration: duration}
}

func (t *Toast) SetWidth(width int) {
	t.width = width
}

// Show displays n and returns the command that will hide it again.
func (t *Toast) Show(n portwatch.Notification) tea.Cmd {
	t.id++
	t.notification = n
	t.visible = true

	id := t.id
	return tea.Tick(t.duration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

func (t *Toast) Dismiss() {
	t.visible = false
}

func (t *Toast) Visible() bool {
	return t.visible
}

func (t *Toast) Update(msg tea.Msg) {
	if msg, ok := msg.(ToastExpiredMsg); ok && msg.ID == t.id {
		t.visible = false
	}
}

func (t *Toast) View() string {
	if !t.visible {
		return ""
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ToastTitleStyle.Render(t.notification.Title),
		t.notification.Body,
	)

	style := styles.ToastStyle
	if t.width > 0 {
		style = style.MaxWidth(t.width)
	}
	return style.Render(content)
}
