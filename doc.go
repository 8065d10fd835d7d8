// Package portwatch watches the serial ports attached to a host and reports
// when USB serial adapters come and go.
//
// Ports are enumerated from two sources. The rich provider (sysfs on Linux)
// knows the device behind each port, its USB vendor and product IDs and a
// human-readable name, but it can be slow or come back empty. The minimal
// provider only lists device nodes under /dev; it is fast and always answers.
// Every poll prefers the rich answer whole and falls back to the minimal one
// whole, so the list never goes blank and never mixes fields from both.
//
// # Basic Usage
//
// Run a monitor and print what it sees:
//
//	mon, err := portwatch.New(
//	    portwatch.NewSysfsProvider(""),
//	    portwatch.NewDevProvider(""),
//	    portwatch.WithInterval(time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = mon.Run(ctx, func(res portwatch.Result) {
//	    fmt.Println(res.Status)
//	    for item := range res.Rendering.Items() {
//	        fmt.Println(item)
//	    }
//	})
//
// # Poll Cycle
//
// Each cycle enumerates, keeps only USB serial ports (IsUSBSerial), diffs
// against the previous cycle (ComputeDiff), records newly plugged ports in a
// RecencyTable, and renders the list with the most recently plugged port
// first. At startup the monitor renders once from the minimal provider and
// once more from a full reconciliation, neither of which diffs or notifies,
// so ports already attached at launch are not announced.
//
// Only one cycle runs at a time. Monitor.Refresh may be called from any
// goroutine; if a cycle is already in flight the call returns immediately.
//
// # Notifications
//
// Newly added ports produce a Notification titled "ports added". Removed
// ports are shown in the status line but never announced. Notifications are
// handed to every configured Notifier (see LogNotifier and MQTTNotifier).
//
// # Error Handling
//
// Enumeration failures never reach the caller. A failing, panicking, empty or
// slow rich provider is replaced by the minimal provider for that cycle; a
// failing minimal provider yields an empty list. The sentinel errors
// (ErrProviderUnavailable, ErrProviderEmpty, ErrProviderTimeout) appear only
// in Reconciliation.Err for diagnostics.
//
// # Platform Support
//
// The bundled providers read /dev and /sys and are Linux-only. Any other
// enumeration source can be plugged in through the Provider interface.
//
// # Default Configuration
//
//   - Interval: 1s
//   - RichTimeout: 5s
//   - NameWidth: 6
//   - NotifyLimit: 200 characters
//   - ShowAll: false (USB ports only)
package portwatch
