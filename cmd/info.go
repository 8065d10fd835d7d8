/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/allbin/portwatch"
	"github.com/spf13/cobra"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <port|serial>",
	Short: "Display detailed information about a serial port",
	Long: `Display detailed information about a serial port including USB metadata.

Examples:
  portwatch info /dev/ttyUSB0
  portwatch info ttyACM0 --output json
  portwatch info FT123456

For USB devices, this displays vendor/product IDs, serial numbers, interface
numbers, and other USB-specific metadata extracted from sysfs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rich, _ := providers()
		output, _ := cmd.Flags().GetString("output")

		details, err := rich.Lookup(args[0])
		if err != nil {
			if errors.Is(err, portwatch.ErrDeviceNotFound) {
				return fmt.Errorf("no serial device or USB serial number %s", filepath.Base(args[0]))
			}
			return err
		}

		out := cmd.OutOrStdout()
		switch strings.ToLower(output) {
		case "json":
			return writeJSON(out, details)
		case "yaml", "yml":
			return writeYAML(out, details)
		case "", "text":
			printDetails(out, details)
			return nil
		default:
			return fmt.Errorf("unknown output format %q (valid: text, json, yaml)", output)
		}
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().StringP("output", "o", "text", "Output format: text, json, yaml")
}

func printDetails(w io.Writer, details portwatch.PortDetails) {
	fmt.Fprintf(w, "Port Information: %s\n\n", details.Name)
	fmt.Fprintf(w, "  Description: %s\n", details.DisplayName)
	fmt.Fprintf(w, "  Device ID:   %s\n", details.DeviceID)
	fmt.Fprintf(w, "  Driver:      %s\n", details.Driver)
	fmt.Fprintf(w, "  USB serial:  %t\n", portwatch.IsUSBSerial(details.PortInfo))

	usb, err := details.USBInfo()
	if err != nil {
		return
	}

	// USB Device Information
	fmt.Fprintln(w, "\nUSB Device Information:")
	fields := []struct {
		label string
		value string
	}{
		{"Vendor ID:   ", usb.VendorID},
		{"Product ID:  ", usb.ProductID},
		{"Serial:      ", usb.SerialNumber},
		{"Interface:   ", usb.InterfaceNumber},
		{"Bus:         ", usb.BusNumber},
		{"Device:      ", usb.DeviceNumber},
		{"Manufacturer:", usb.Manufacturer},
		{"Product:     ", usb.Product},
	}
	for _, f := range fields {
		if f.value != "" {
			fmt.Fprintf(w, "  %s %s\n", f.label, f.value)
		}
	}
	if path, ok := usb.BusPath(); ok {
		fmt.Fprintf(w, "  USB path:     %s\n", path)
	}
}
