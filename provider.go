package portwatch

//go:generate mockgen -destination=mock_portwatch.go -package=portwatch github.com/allbin/portwatch Provider,Notifier

import "context"

// Provider enumerates the serial ports currently attached to the host.
//
// The monitor uses two of them: a rich provider that returns full device
// metadata but may be slow, fail, or come back empty, and a minimal provider
// that is fast and always answers but only knows port names.
type Provider interface {
	Query(ctx context.Context) (Snapshot, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context) (Snapshot, error)

func (f ProviderFunc) Query(ctx context.Context) (Snapshot, error) {
	return f(ctx)
}
