/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"io"
	"time"

	"github.com/allbin/portwatch"
	"github.com/allbin/portwatch/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const defaultRichTimeout = 5 * time.Second

// setupLogger builds the command logger from the bound flags and config.
// fallbackOutput is used when no output was configured.
func setupLogger(fallbackOutput string) (zerolog.Logger, io.Closer, error) {
	output := viper.GetString("log-output")
	if output == "" {
		output = fallbackOutput
	}

	return logger.New(logger.Config{
		Level:   viper.GetString("log-level"),
		Output:  output,
		File:    viper.GetString("log-file"),
		Console: output == logger.OutputStderr || output == logger.OutputStdout,
	})
}

// providers returns the rich (sysfs) and minimal (/dev) providers.
func providers() (*portwatch.SysfsProvider, *portwatch.DevProvider) {
	return portwatch.NewSysfsProvider(viper.GetString("sysfs-root")),
		portwatch.NewDevProvider(viper.GetString("dev-dir"))
}

// newReconciler wires both providers with the configured rich timeout.
func newReconciler(log zerolog.Logger) *portwatch.Reconciler {
	rich, minimal := providers()
	return portwatch.NewReconciler(rich, minimal, viper.GetDuration("rich-timeout"), log)
}

// monitorOptions collects the options shared by the monitor and watch commands.
func monitorOptions(interval time.Duration, log zerolog.Logger) []portwatch.Option {
	return []portwatch.Option{
		portwatch.WithInterval(interval),
		portwatch.WithRichTimeout(viper.GetDuration("rich-timeout")),
		portwatch.WithShowAll(viper.GetBool("all")),
		portwatch.WithLogger(log),
	}
}
