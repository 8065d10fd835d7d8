package portwatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/allbin/portwatch/internal/logger"
	"github.com/rs/zerolog"
)

// Source identifies which provider a snapshot came from.
type Source int

const (
	SourceNone Source = iota
	SourceRich
	SourceMinimal
)

func (s Source) String() string {
	switch s {
	case SourceRich:
		return "rich"
	case SourceMinimal:
		return "minimal"
	default:
		return "none"
	}
}

// Fallback records why the rich provider's answer was not used.
type Fallback int

const (
	FallbackNone        Fallback = iota
	FallbackUnavailable          // rich provider errored or panicked
	FallbackEmpty                // rich provider returned zero ports
	FallbackTimeout              // rich provider missed its deadline
)

func (f Fallback) String() string {
	switch f {
	case FallbackUnavailable:
		return "unavailable"
	case FallbackEmpty:
		return "empty"
	case FallbackTimeout:
		return "timeout"
	default:
		return "none"
	}
}

func fallbackFor(err error) Fallback {
	switch {
	case errors.Is(err, ErrProviderTimeout), errors.Is(err, context.DeadlineExceeded):
		return FallbackTimeout
	case errors.Is(err, ErrProviderEmpty):
		return FallbackEmpty
	default:
		return FallbackUnavailable
	}
}

// Reconciliation is the outcome of one enumeration.
type Reconciliation struct {
	Snapshot Snapshot
	Source   Source
	Fallback Fallback
	Err      error // why the rich provider was bypassed, for diagnostics only
}

// Note says why the ports of a minimal snapshot carry no metadata. It is
// empty for rich snapshots.
func (r Reconciliation) Note() string {
	if r.Source != SourceMinimal {
		return ""
	}
	switch r.Fallback {
	case FallbackEmpty:
		return "no device metadata"
	case FallbackUnavailable:
		return "metadata error"
	case FallbackTimeout:
		return "metadata timeout"
	default:
		return "device nodes only"
	}
}

// Reconciler merges the two providers into one snapshot by priority: the
// rich snapshot wins whole when it has at least one port, otherwise the
// minimal snapshot is used whole. Fields are never mixed between the two.
type Reconciler struct {
	rich    Provider
	minimal Provider
	timeout time.Duration
	log     zerolog.Logger
}

// NewReconciler returns a reconciler. timeout bounds the rich query; 0 means
// no deadline. rich may be nil, in which case every call falls back.
func NewReconciler(rich, minimal Provider, timeout time.Duration, log zerolog.Logger) *Reconciler {
	return &Reconciler{
		rich:    rich,
		minimal: minimal,
		timeout: timeout,
		log:     logger.WithComponent(log, "reconciler"),
	}
}

// Reconcile always returns a snapshot, possibly empty. Rich provider
// failures are absorbed here.
func (r *Reconciler) Reconcile(ctx context.Context) Reconciliation {
	snap, err := r.queryRich(ctx)
	if err == nil && snap.Len() > 0 {
		return Reconciliation{Snapshot: snap, Source: SourceRich}
	}
	if err == nil {
		err = ErrProviderEmpty
	}

	fb := fallbackFor(err)
	r.log.Debug().Err(err).Stringer("fallback", fb).Msg("rich provider bypassed, using minimal provider")

	return Reconciliation{
		Snapshot: r.Minimal(ctx),
		Source:   SourceMinimal,
		Fallback: fb,
		Err:      err,
	}
}

// Minimal queries only the minimal provider. A failure yields an empty
// snapshot.
func (r *Reconciler) Minimal(ctx context.Context) Snapshot {
	snap, err := r.minimal.Query(ctx)
	if err != nil {
		r.log.Warn().Err(err).Msg("minimal provider failed")
		return NewSnapshot()
	}
	return snap
}

type richResult struct {
	snap Snapshot
	err  error
}

// queryRich runs the rich query on its own goroutine and waits for it, the
// deadline, or ctx. A query abandoned on timeout finishes in the background
// and its result is dropped.
func (r *Reconciler) queryRich(ctx context.Context) (Snapshot, error) {
	if r.rich == nil {
		return Snapshot{}, ErrProviderUnavailable
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	done := make(chan richResult, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- richResult{err: fmt.Errorf("%w: panic: %v", ErrProviderUnavailable, rec)}
			}
		}()

		snap, err := r.rich.Query(ctx)
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
		}
		done <- richResult{snap: snap, err: err}
	}()

	select {
	case res := <-done:
		return res.snap, res.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Snapshot{}, ErrProviderTimeout
		}
		return Snapshot{}, fmt.Errorf("%w: %w", ErrProviderUnavailable, ctx.Err())
	}
}
