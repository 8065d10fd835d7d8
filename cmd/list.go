/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/allbin/portwatch"
	"github.com/allbin/portwatch/internal/logger"
	"github.com/charmbracelet/lipgloss"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// listing is the machine-readable form of the list command output.
type listing struct {
	Source   string               `json:"source" yaml:"source"`
	Fallback string               `json:"fallback,omitempty" yaml:"fallback,omitempty"`
	Count    int                  `json:"count" yaml:"count"`
	Ports    []portwatch.PortInfo `json:"ports" yaml:"ports"`
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List attached serial ports",
	Long: `List the serial ports attached to the system.

By default only USB serial ports are shown. Ports are resolved through sysfs
where possible; if sysfs is unavailable, empty or too slow the plain /dev
listing is used and ports are shown with a placeholder name.

Examples:
  portwatch list
  portwatch list --all --table
  portwatch list --output json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, closer, err := setupLogger(logger.OutputStderr)
		if err != nil {
			return err
		}
		defer closer.Close()

		tableFormat, _ := cmd.Flags().GetBool("table")
		output, _ := cmd.Flags().GetString("output")

		rec := newReconciler(log).Reconcile(cmd.Context())
		snap := rec.Snapshot
		if !viper.GetBool("all") {
			snap = snap.Filter(portwatch.IsUSBSerial)
		}

		out := cmd.OutOrStdout()

		switch strings.ToLower(output) {
		case "json":
			return writeJSON(out, newListing(rec, snap))
		case "yaml", "yml":
			return writeYAML(out, newListing(rec, snap))
		case "", "text":
		default:
			return fmt.Errorf("unknown output format %q (valid: text, json, yaml)", output)
		}

		if snap.Len() == 0 {
			fmt.Fprintln(out, "No serial ports found")
			return nil
		}

		if rec.Fallback != portwatch.FallbackNone {
			fmt.Fprintf(cmd.ErrOrStderr(), "Device metadata unavailable (%s), showing /dev listing\n", rec.Fallback)
		}

		if tableFormat {
			renderTable(out, snap)
		} else {
			renderSimple(out, snap, rec.Note())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolP("table", "t", false, "Display output in a styled table format")
	listCmd.Flags().StringP("output", "o", "text", "Output format: text, json, yaml")
}

func newListing(rec portwatch.Reconciliation, snap portwatch.Snapshot) listing {
	l := listing{
		Source: rec.Source.String(),
		Count:  snap.Len(),
		Ports:  snap.Ports(),
	}
	if rec.Fallback != portwatch.FallbackNone {
		l.Fallback = rec.Fallback.String()
	}
	return l
}

func writeJSON(w io.Writer, v any) error {
	enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// renderTable renders the port list in a styled static table format
func renderTable(w io.Writer, snap portwatch.Snapshot) {
	fmt.Fprintf(w, "Found %d serial port(s):\n\n", snap.Len())

	// Define column widths
	portWidth := 12
	typeWidth := 16
	idWidth := 18

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("240")).
		PaddingBottom(1)

	cellStyle := lipgloss.NewStyle().
		PaddingRight(2)

	header := fmt.Sprintf("%-*s %-*s %-*s %s",
		portWidth, "Port",
		typeWidth, "Type",
		idWidth, "VID/PID",
		"Description")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, port := range snap.Ports() {
		vidpid, ok := portwatch.ExtractVIDPID(port.DeviceID)
		if !ok {
			vidpid = "-"
		}
		row := fmt.Sprintf("%-*s %-*s %-*s %s",
			portWidth, port.Name,
			typeWidth, getPortType(port),
			idWidth, vidpid,
			port.DisplayName)
		fmt.Fprintln(w, cellStyle.Render(row))
	}
}

// renderSimple prints one label per port
func renderSimple(w io.Writer, snap portwatch.Snapshot, note string) {
	for item := range (portwatch.Formatter{Note: note}).Render(snap, nil).Items() {
		fmt.Fprintln(w, item)
	}
}

// getPortType returns a short classification for the port
func getPortType(port portwatch.PortInfo) string {
	switch {
	case port.DeviceID == "":
		return "Unknown"
	case portwatch.IsUSBSerial(port):
		return "USB Serial"
	default:
		return "Platform Serial"
	}
}
