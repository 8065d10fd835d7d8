package portwatch

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/allbin/portwatch/internal/logger"
	"github.com/rs/zerolog"
)

// Mode selects what a poll cycle does.
type Mode int

const (
	// ModeStartup renders from the minimal provider alone, without diffing
	// or notifying, so the list appears immediately at launch.
	ModeStartup Mode = iota
	// ModeSettle runs a full reconciliation to pick up the metadata the
	// startup pass missed. Still no diff and no notification.
	ModeSettle
	// ModeWatch is the steady state: full reconciliation, diff, notify.
	ModeWatch
)

func (m Mode) String() string {
	switch m {
	case ModeStartup:
		return "startup"
	case ModeSettle:
		return "settle"
	case ModeWatch:
		return "watch"
	default:
		return "unknown"
	}
}

// Result is what one poll cycle hands to the presentation layer.
type Result struct {
	Time         time.Time
	Mode         Mode
	Rendering    Rendering
	Status       string
	Diff         *Diff         // nil on cycles that do not diff
	Changed      bool          // ports or their metadata differ from the previous cycle
	Notification *Notification // nil when there is nothing to announce
	Source       Source
	Fallback     Fallback
}

// Stats are point-in-time counters.
type Stats struct {
	Polls         int64 `json:"polls"`
	Skipped       int64 `json:"skipped"`
	Fallbacks     int64 `json:"fallbacks"`
	Notifications int64 `json:"notifications"`
}

// Monitor runs the poll cycle and owns the state carried between cycles:
// the previous filtered snapshot and the recency table.
//
// At most one cycle runs at a time. A cycle triggered while another is in
// flight returns immediately without doing anything; the busy flag is the
// only synchronisation, and the cross-cycle state is only touched while it
// is held.
type Monitor struct {
	config     Config
	reconciler *Reconciler
	formatter  Formatter
	policy     NotificationPolicy
	log        zerolog.Logger

	busy    atomic.Bool
	settled atomic.Bool

	// Guarded by busy.
	previous Snapshot
	recency  *RecencyTable

	polls         atomic.Int64
	skipped       atomic.Int64
	fallbacks     atomic.Int64
	notifications atomic.Int64
}

// New creates a Monitor over the given providers. rich may be nil.
func New(rich, minimal Provider, opts ...Option) (*Monitor, error) {
	if minimal == nil {
		return nil, ErrInvalidConfig
	}

	config := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	log := logger.WithComponent(config.Logger, "monitor")

	return &Monitor{
		config:     config,
		reconciler: NewReconciler(rich, minimal, config.RichTimeout, config.Logger),
		formatter:  Formatter{NameWidth: config.NameWidth},
		policy:     NotificationPolicy{Limit: config.NotifyLimit},
		log:        log,
		previous:   NewSnapshot(),
		recency:    NewRecencyTable(),
	}, nil
}

// Poll runs one cycle. It returns false, and does nothing else, when another
// cycle is still in flight.
func (m *Monitor) Poll(ctx context.Context, mode Mode) (Result, bool) {
	if !m.busy.CompareAndSwap(false, true) {
		m.skipped.Add(1)
		return Result{}, false
	}
	defer m.busy.Store(false)

	m.polls.Add(1)

	var rec Reconciliation
	if mode == ModeStartup {
		rec = Reconciliation{Snapshot: m.reconciler.Minimal(ctx), Source: SourceMinimal}
	} else {
		rec = m.reconciler.Reconcile(ctx)
	}
	if rec.Fallback != FallbackNone {
		m.fallbacks.Add(1)
	}

	current := rec.Snapshot
	if !m.config.ShowAll {
		current = current.Filter(IsUSBSerial)
	}

	now := m.config.Clock.Now()
	res := Result{
		Time:     now,
		Mode:     mode,
		Source:   rec.Source,
		Fallback: rec.Fallback,
		Changed:  !current.Equal(m.previous),
	}

	if mode == ModeWatch {
		d := ComputeDiff(m.previous, current)
		m.recency.OnDiff(d, now)
		res.Diff = &d
	}
	m.recency.EnsureSeeded(current)

	formatter := m.formatter
	formatter.Note = rec.Note()
	res.Rendering = formatter.Render(current, m.recency)
	res.Status = StatusLine(res.Rendering.Count, now, res.Diff)

	if res.Diff != nil {
		if n, ok := m.policy.Decide(*res.Diff, current); ok {
			res.Notification = &n
		}
	}

	m.previous = current

	if mode == ModeSettle {
		m.settled.Store(true)
	}

	ev := m.log.Debug().
		Stringer("mode", mode).
		Stringer("source", rec.Source).
		Int("ports", res.Rendering.Count)
	if rec.Fallback != FallbackNone {
		ev = ev.Stringer("fallback", rec.Fallback)
	}
	ev.Msg(res.Status)

	if res.Notification != nil {
		m.notify(ctx, *res.Notification)
	}

	return res, true
}

func (m *Monitor) notify(ctx context.Context, n Notification) {
	m.notifications.Add(1)
	for _, notifier := range m.config.Notifiers {
		if err := notifier.Notify(ctx, n); err != nil {
			m.log.Warn().Err(err).Msg("failed to deliver notification")
		}
	}
}

// Refresh is the on-demand trigger. It runs a watch cycle, unless startup
// has not settled yet or a cycle is already in flight.
func (m *Monitor) Refresh(ctx context.Context) (Result, bool) {
	if !m.settled.Load() {
		m.skipped.Add(1)
		return Result{}, false
	}
	return m.Poll(ctx, ModeWatch)
}

// Run performs the startup and settle passes, then polls every Interval
// until ctx is cancelled. Each completed cycle is passed to sink.
func (m *Monitor) Run(ctx context.Context, sink func(Result)) error {
	emit := func(res Result, ok bool) {
		if ok && sink != nil {
			sink(res)
		}
	}

	emit(m.Poll(ctx, ModeStartup))
	emit(m.Poll(ctx, ModeSettle))

	ticker := m.config.Clock.Ticker(m.config.Interval)
	defer ticker.Stop()

	m.log.Info().Dur("interval", m.config.Interval).Msg("monitor started")

	for {
		select {
		case <-ctx.Done():
			m.log.Info().Msg("monitor stopped")
			return nil
		case <-ticker.Chan():
			emit(m.Poll(ctx, ModeWatch))
		}
	}
}

// Stats returns the current counters.
func (m *Monitor) Stats() Stats {
	return Stats{
		Polls:         m.polls.Load(),
		Skipped:       m.skipped.Load(),
		Fallbacks:     m.fallbacks.Load(),
		Notifications: m.notifications.Load(),
	}
}
