package portwatch

import (
	"time"

	"github.com/rs/zerolog"
)

// Config holds the configuration for a Monitor
type Config struct {
	Interval    time.Duration // Time between watch polls
	RichTimeout time.Duration // Deadline for the rich provider; 0 waits forever
	NameWidth   int           // Minimum width of the port name column
	NotifyLimit int           // Maximum notification body length, in characters
	ShowAll     bool          // Skip the USB filter
	Clock       Clock
	Logger      zerolog.Logger
	Notifiers   []Notifier
}

// Option is a functional option for configuring a monitor
type Option func(*Config) error

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		Interval:    time.Second,
		RichTimeout: 5 * time.Second,
		NameWidth:   DefaultNameWidth,
		NotifyLimit: DefaultNotifyLimit,
		Clock:       realClock{},
		Logger:      zerolog.Nop(),
	}
}

// WithInterval sets the watch polling interval
func WithInterval(d time.Duration) Option {
	return func(c *Config) error {
		if d <= 0 {
			return ErrInvalidConfig
		}
		c.Interval = d
		return nil
	}
}

// WithRichTimeout bounds how long a cycle waits for the rich provider (0 = no timeout)
func WithRichTimeout(d time.Duration) Option {
	return func(c *Config) error {
		if d < 0 {
			return ErrInvalidConfig
		}
		c.RichTimeout = d
		return nil
	}
}

// WithNameWidth sets the minimum port name column width
func WithNameWidth(width int) Option {
	return func(c *Config) error {
		if width < 1 {
			return ErrInvalidConfig
		}
		c.NameWidth = width
		return nil
	}
}

// WithNotifyLimit sets the notification body truncation length
func WithNotifyLimit(limit int) Option {
	return func(c *Config) error {
		if limit < 1 {
			return ErrInvalidConfig
		}
		c.NotifyLimit = limit
		return nil
	}
}

// WithShowAll disables the USB filter so every serial port is listed
func WithShowAll(all bool) Option {
	return func(c *Config) error {
		c.ShowAll = all
		return nil
	}
}

// WithClock replaces the wall clock, mainly for tests
func WithClock(clock Clock) Option {
	return func(c *Config) error {
		if clock == nil {
			return ErrInvalidConfig
		}
		c.Clock = clock
		return nil
	}
}

// WithLogger sets the logger used by the monitor and its reconciler
func WithLogger(log zerolog.Logger) Option {
	return func(c *Config) error {
		c.Logger = log
		return nil
	}
}

// WithNotifier adds a notification sink
func WithNotifier(n Notifier) Option {
	return func(c *Config) error {
		if n == nil {
			return ErrInvalidConfig
		}
		c.Notifiers = append(c.Notifiers, n)
		return nil
	}
}
