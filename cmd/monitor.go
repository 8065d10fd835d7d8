/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/allbin/portwatch"
	"github.com/allbin/portwatch/internal/logger"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	monitorInterval time.Duration
	monitorVerbose  bool
	monitorMQTT     portwatch.MQTTConfig
)

// monitorCmd represents the monitor command
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Report USB serial ports being plugged in and out",
	Long: `Poll the attached serial ports and report changes as they happen.

The current list is printed once at startup. After that a line is printed
whenever a port appears or disappears. Ports already attached at startup are
never announced. Newly plugged ports are logged as notifications and, with
--mqtt-broker, published as JSON. Press Ctrl+C to stop.

Examples:
  portwatch monitor
  portwatch monitor --interval 2s --verbose
  portwatch monitor --mqtt-broker tcp://localhost:1883 --mqtt-topic lab/ports`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, closer, err := setupLogger(logger.OutputStderr)
		if err != nil {
			return err
		}
		defer closer.Close()

		opts := monitorOptions(monitorInterval, log)
		opts = append(opts, portwatch.WithNotifier(portwatch.NewLogNotifier(log)))

		if monitorMQTT.Broker != "" {
			mq, err := portwatch.NewMQTTNotifier(monitorMQTT, log)
			if err != nil {
				return err
			}
			defer mq.Close()
			opts = append(opts, portwatch.WithNotifier(mq))
		}

		rich, minimal := providers()
		mon, err := portwatch.New(rich, minimal, opts...)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		started := time.Now()

		err = runMonitor(cmd.Context(), mon, out, log)

		stats := mon.Stats()
		fmt.Fprintf(out, "\nStopped after %s: %s polls, %s skipped, %s fallbacks, %s notifications\n",
			strings.TrimSpace(humanize.RelTime(started, time.Now(), "", "")),
			humanize.Comma(stats.Polls),
			humanize.Comma(stats.Skipped),
			humanize.Comma(stats.Fallbacks),
			humanize.Comma(stats.Notifications))
		return err
	},
}

// runMonitor runs mon until ctx is cancelled or the process is interrupted.
func runMonitor(ctx context.Context, mon *portwatch.Monitor, out io.Writer, log zerolog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	// Setup signal handler for Ctrl+C
	g.Go(func() error {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		select {
		case sig := <-sigChan:
			log.Info().Stringer("signal", sig).Msg("stopping monitor")
			cancel()
		case <-ctx.Done():
		}
		return nil
	})

	g.Go(func() error {
		defer cancel()
		return mon.Run(ctx, func(res portwatch.Result) {
			printResult(out, res)
		})
	})

	return g.Wait()
}

// printResult prints the list after startup and whenever it changed, and the
// status line for every cycle that is worth reporting.
func printResult(w io.Writer, res portwatch.Result) {
	switch res.Mode {
	case portwatch.ModeStartup:
		return
	case portwatch.ModeSettle:
		fmt.Fprintln(w, res.Status)
		printItems(w, res.Rendering)
		return
	}

	if (res.Diff == nil || res.Diff.Empty()) && !res.Changed {
		if monitorVerbose {
			fmt.Fprintln(w, res.Status)
		}
		return
	}

	fmt.Fprintln(w, res.Status)
	printItems(w, res.Rendering)
}

func printItems(w io.Writer, r portwatch.Rendering) {
	for item := range r.Items() {
		fmt.Fprintf(w, "  %s\n", item)
	}
}

func init() {
	rootCmd.AddCommand(monitorCmd)

	monitorCmd.Flags().DurationVarP(&monitorInterval, "interval", "i", time.Second,
		"Time between polls")
	monitorCmd.Flags().BoolVarP(&monitorVerbose, "verbose", "v", false,
		"Print a status line for every poll, not only on changes")
	monitorCmd.Flags().StringVar(&monitorMQTT.Broker, "mqtt-broker", "",
		"Publish notifications to this MQTT broker (e.g. tcp://localhost:1883)")
	monitorCmd.Flags().StringVar(&monitorMQTT.Topic, "mqtt-topic", portwatch.DefaultMQTTTopic,
		"MQTT topic for notifications")
	monitorCmd.Flags().Uint8Var(&monitorMQTT.QoS, "mqtt-qos", 0,
		"MQTT quality of service (0, 1 or 2)")
	monitorCmd.Flags().StringVar(&monitorMQTT.ClientID, "mqtt-client-id", "",
		"MQTT client ID (default: portwatch-<timestamp>)")
}
