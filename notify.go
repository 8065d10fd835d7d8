package portwatch

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/allbin/portwatch/internal/logger"
	"github.com/rs/zerolog"
)

const (
	// NotificationTitle is the title of every port notification.
	NotificationTitle = "ports added"

	// DefaultNotifyLimit caps the notification body, in characters.
	DefaultNotifyLimit = 200

	ellipsis = "…"
)

// Notification is a transient announcement for the user.
type Notification struct {
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Ports []string `json:"ports"`
}

// NotificationPolicy decides what a diff announces.
//
// Only additions are announced. Removals are deliberately silent.
type NotificationPolicy struct {
	// Limit truncates the body; DefaultNotifyLimit when <= 0.
	Limit int
}

// Decide builds a notification listing the added ports as "name: display"
// lines. It returns false when nothing was added.
func (p NotificationPolicy) Decide(d Diff, current Snapshot) (Notification, bool) {
	if len(d.Added) == 0 {
		return Notification{}, false
	}

	lines := make([]string, 0, len(d.Added))
	ports := make([]string, 0, len(d.Added))
	for _, name := range d.Added {
		info, ok := current.Get(name)
		if !ok {
			continue
		}
		lines = append(lines, info.Name+": "+info.DisplayName)
		ports = append(ports, info.Name)
	}
	if len(lines) == 0 {
		return Notification{}, false
	}

	limit := p.Limit
	if limit <= 0 {
		limit = DefaultNotifyLimit
	}

	return Notification{
		Title: NotificationTitle,
		Body:  truncate(strings.Join(lines, "\n"), limit),
		Ports: ports,
	}, true
}

// DecideNotification applies the default policy.
func DecideNotification(d Diff, current Snapshot) (Notification, bool) {
	return NotificationPolicy{}.Decide(d, current)
}

// truncate cuts s to limit characters and appends an ellipsis if it was longer.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + ellipsis
}

// Notifier delivers notifications somewhere the user will see them.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, n Notification) error

func (f NotifierFunc) Notify(ctx context.Context, n Notification) error {
	return f(ctx, n)
}

// LogNotifier writes notifications to a logger.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: logger.WithComponent(log, "notifier")}
}

func (n *LogNotifier) Notify(_ context.Context, note Notification) error {
	n.log.Info().
		Str("title", note.Title).
		Strs("ports", note.Ports).
		Msg(note.Body)
	return nil
}
