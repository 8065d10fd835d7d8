// Package logger builds the zerolog loggers used by the portwatch commands.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Outputs accepted by Config.Output besides a file path.
const (
	OutputStdout = "stdout"
	OutputStderr = "stderr"
	OutputFile   = "file"
	OutputNone   = "none"
)

// DefaultLogFileName is the log file written under the temp directory when
// Output is "file" and no path is given.
const DefaultLogFileName = "portwatch.log"

type Config struct {
	Level      string `json:"level" yaml:"level" mapstructure:"level"`
	Debug      bool   `json:"debug" yaml:"debug" mapstructure:"debug"`
	Output     string `json:"output" yaml:"output" mapstructure:"output"`
	File       string `json:"file" yaml:"file" mapstructure:"file"`
	TimeFormat string `json:"time_format" yaml:"time_format" mapstructure:"time_format"`
	Console    bool   `json:"console" yaml:"console" mapstructure:"console"`
}

// DefaultLogFile returns the log file path used when none is configured.
func DefaultLogFile() string {
	return filepath.Join(os.TempDir(), DefaultLogFileName)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds a logger from cfg. The returned closer releases the log file,
// if one was opened, and must be called once the logger is no longer used.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	level := zerolog.InfoLevel

	if cfg.Debug {
		level = zerolog.DebugLevel
	} else if cfg.Level != "" {
		var err error

		level, err = zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}

	var (
		output io.Writer
		closer io.Closer = nopCloser{}
	)

	switch strings.ToLower(cfg.Output) {
	case "", OutputStderr:
		output = os.Stderr
	case OutputStdout:
		output = os.Stdout
	case OutputNone:
		return zerolog.Nop(), closer, nil
	case OutputFile:
		path := cfg.File
		if path == "" {
			path = DefaultLogFile()
		}

		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("open log file: %w", err)
		}

		output, closer = f, f
	default:
		return zerolog.Nop(), closer, fmt.Errorf("invalid log output %q", cfg.Output)
	}

	timeFormat := time.RFC3339
	if cfg.TimeFormat != "" {
		timeFormat = cfg.TimeFormat
	}

	if cfg.Console {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: timeFormat}
	}

	zerolog.TimeFieldFormat = timeFormat

	return zerolog.New(output).Level(level).With().Timestamp().Logger(), closer, nil
}

// WithComponent tags a logger with the subsystem it belongs to.
func WithComponent(log zerolog.Logger, component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// NewTestLogger returns a logger that discards everything.
func NewTestLogger() zerolog.Logger {
	return zerolog.Nop()
}
