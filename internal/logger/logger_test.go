package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		want    zerolog.Level
		wantErr bool
	}{
		{"default", Config{}, zerolog.InfoLevel, false},
		{"warn", Config{Level: "warn"}, zerolog.WarnLevel, false},
		{"uppercase", Config{Level: "DEBUG"}, zerolog.DebugLevel, false},
		{"debug flag wins", Config{Level: "error", Debug: true}, zerolog.DebugLevel, false},
		{"invalid", Config{Level: "loud"}, zerolog.Disabled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, closer, err := New(tt.config)
			require.NotNil(t, closer)
			defer closer.Close()

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, log.GetLevel())
		})
	}
}

func TestNewInvalidOutput(t *testing.T) {
	_, _, err := New(Config{Output: "syslog"})
	assert.Error(t, err)
}

func TestNewNone(t *testing.T) {
	log, _, err := New(Config{Output: OutputNone})
	require.NoError(t, err)
	assert.Equal(t, zerolog.Disabled, log.GetLevel())
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portwatch.log")

	log, closer, err := New(Config{Output: OutputFile, File: path})
	require.NoError(t, err)

	clog := WithComponent(log, "monitor")
	clog.Info().Msg("started")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	line := string(data)
	assert.True(t, strings.HasSuffix(line, "\n"))
	assert.Contains(t, line, `"component":"monitor"`)
	assert.Contains(t, line, `"message":"started"`)
}

func TestDefaultLogFile(t *testing.T) {
	assert.Equal(t, filepath.Join(os.TempDir(), "portwatch.log"), DefaultLogFile())
}

func TestNewTestLogger(t *testing.T) {
	assert.Equal(t, zerolog.Disabled, NewTestLogger().GetLevel())
}
