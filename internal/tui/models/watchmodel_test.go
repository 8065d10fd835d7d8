package models

import (
	"context"
	"testing"
	"time"

	"github.com/allbin/portwatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRefresher struct {
	res   portwatch.Result
	ok    bool
	calls int
}

func (s *stubRefresher) Refresh(context.Context) (portwatch.Result, bool) {
	s.calls++
	return s.res, s.ok
}

func TestWatchModelApply(t *testing.T) {
	m := NewWatchModel(context.Background(), nil)
	defer m.Cancel()

	res, ok := m.Apply(PollResultMsg{Result: portwatch.Result{Status: "detected: 1 / 10:00:00"}})

	assert.True(t, ok)
	assert.Equal(t, "detected: 1 / 10:00:00", res.Status)
}

func TestWatchModelApplyDropsOlderResult(t *testing.T) {
	m := NewWatchModel(context.Background(), nil)
	defer m.Cancel()

	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	tick := portwatch.Result{Time: t0.Add(time.Second), Status: "detected: 2 / 10:00:01"}
	refresh := portwatch.Result{Time: t0, Status: "detected: 1 / 10:00:00"}

	_, ok := m.Apply(PollResultMsg{Result: tick})
	require.True(t, ok)

	res, ok := m.Apply(PollResultMsg{Result: refresh})
	assert.False(t, ok)
	assert.Equal(t, tick, res)

	// Equal timestamps still apply.
	same := portwatch.Result{Time: tick.Time, Status: "detected: 2 / 10:00:01 no change"}
	res, ok = m.Apply(PollResultMsg{Result: same})
	assert.True(t, ok)
	assert.Equal(t, same.Status, res.Status)
}

func TestWatchModelRefresh(t *testing.T) {
	stub := &stubRefresher{res: portwatch.Result{Mode: portwatch.ModeWatch}, ok: true}
	m := NewWatchModel(context.Background(), stub)
	defer m.Cancel()

	msg := m.Refresh()
	require.NotNil(t, msg)
	assert.Equal(t, portwatch.ModeWatch, msg.Result.Mode)

	stub.ok = false
	assert.Nil(t, m.Refresh(), "skipped cycle yields no message")
	assert.Equal(t, 2, stub.calls)
}

func TestWatchModelRefreshWithoutRefresher(t *testing.T) {
	m := NewWatchModel(context.Background(), nil)
	defer m.Cancel()

	assert.Nil(t, m.Refresh())
}

func TestWatchModelCancel(t *testing.T) {
	m := NewWatchModel(context.Background(), nil)
	m.Cancel()

	assert.Error(t, m.GetContext().Err())
}
