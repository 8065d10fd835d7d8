package models

import (
	"context"
	"sync"

	"github.com/allbin/portwatch"
)

// PollResultMsg carries a finished poll cycle into the TUI.
type PollResultMsg struct {
	Result portwatch.Result
}

// MonitorStoppedMsg reports that the background monitor has exited.
type MonitorStoppedMsg struct {
	Err error
}

// Refresher runs an on-demand poll cycle. *portwatch.Monitor satisfies it.
type Refresher interface {
	Refresh(ctx context.Context) (portwatch.Result, bool)
}

// WatchModel is the state shared by the watch screen and the goroutines
// feeding it.
type WatchModel struct {
	refresher Refresher

	// State
	last  portwatch.Result
	err   error
	ready bool

	// Cancellation and synchronization
	cancel context.CancelFunc
	ctx    context.Context
	mu     sync.RWMutex
}

func NewWatchModel(parent context.Context, refresher Refresher) *WatchModel {
	ctx, cancel := context.WithCancel(parent)

	return &WatchModel{
		refresher: refresher,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Apply records a finished cycle and returns it. Ticks and on-demand
// refreshes arrive on different paths, so a result older than the one
// already applied is dropped; Apply then returns the current result and
// false.
func (m *WatchModel) Apply(msg PollResultMsg) (portwatch.Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if msg.Result.Time.Before(m.last.Time) {
		return m.last, false
	}
	m.last = msg.Result
	return m.last, true
}

// Refresh runs an on-demand cycle. The returned message is nil when the
// cycle was skipped because one was already in flight or startup has not
// settled.
func (m *WatchModel) Refresh() *PollResultMsg {
	if m.refresher == nil {
		return nil
	}
	res, ok := m.refresher.Refresh(m.ctx)
	if !ok {
		return nil
	}
	return &PollResultMsg{Result: res}
}

func (m *WatchModel) GetError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.err
}

func (m *WatchModel) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *WatchModel) IsReady() bool {
	return m.ready
}

func (m *WatchModel) SetReady(ready bool) {
	m.ready = ready
}

func (m *WatchModel) GetContext() context.Context {
	return m.ctx
}

func (m *WatchModel) Cancel() {
	if m.cancel != nil {
		m.cancel()
	}
}
