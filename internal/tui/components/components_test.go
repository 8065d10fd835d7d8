package components

import (
	"strings"
	"testing"
	"time"

	"github.com/allbin/portwatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToastLifecycle(t *testing.T) {
	toast := NewToast(0)
	assert.False(t, toast.Visible())
	assert.Empty(t, toast.View())

	cmd := toast.Show(portwatch.Notification{Title: portwatch.NotificationTitle, Body: "COM5: Widget"})
	require.NotNil(t, cmd)
	assert.True(t, toast.Visible())
	assert.Contains(t, toast.View(), "COM5: Widget")

	// A second toast replaces the first; the first's expiry is ignored.
	toast.Show(portwatch.Notification{Title: portwatch.NotificationTitle, Body: "COM6: Other"})
	toast.Update(ToastExpiredMsg{ID: 1})
	assert.True(t, toast.Visible())

	toast.Update(ToastExpiredMsg{ID: 2})
	assert.False(t, toast.Visible())
}

func TestToastDismiss(t *testing.T) {
	toast := NewToast(time.Second)
	toast.Show(portwatch.Notification{Title: "t"})
	toast.Dismiss()
	assert.False(t, toast.Visible())
}

func TestSince(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, attachedAtStartup, since(portwatch.Earliest, now))
	assert.Equal(t, "5 seconds ago", since(now.Add(-5*time.Second), now))
}

func TestPortTable(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	pt := NewPortTable(100, 20)

	assert.Contains(t, pt.View(), "No USB serial ports attached")

	entries := []portwatch.Entry{
		{Port: portwatch.PortInfo{Name: "COM5", DisplayName: "Widget (COM5)", DeviceID: `USB\VID_1A2B&PID_3C4D\7`}, InsertedAt: now},
		{Port: portwatch.PortInfo{Name: "COM3", DisplayName: "(no name) COM3"}, InsertedAt: portwatch.Earliest},
	}
	pt.SetEntries(entries, []string{"COM5"}, now)

	assert.Equal(t, 2, pt.Len())
	view := pt.View()
	assert.Contains(t, view, "COM5")
	assert.Contains(t, view, "VID_1A2B PID_3C4D")
	assert.Contains(t, view, attachedAtStartup)
	assert.Less(t, strings.Index(view, "COM5"), strings.Index(view, "COM3"))

	pt.ToggleSince()
	assert.NotContains(t, pt.View(), attachedAtStartup)
}

func TestStatusBar(t *testing.T) {
	sb := NewStatusBar("portwatch", "1s")
	sb.SetWidth(120)
	assert.Equal(t, "Scanning...", sb.Status())

	sb.SetResult(portwatch.Result{
		Mode:     portwatch.ModeWatch,
		Status:   "detected: 1 / 10:00:00 no change",
		Source:   portwatch.SourceMinimal,
		Fallback: portwatch.FallbackEmpty,
	})

	view := sb.View()
	assert.Contains(t, view, "detected: 1 / 10:00:00 no change")
	assert.Contains(t, view, "minimal (rich empty)")
	assert.Contains(t, view, "every 1s")
	assert.Contains(t, view, "○")
}
