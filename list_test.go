package portwatch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestListPorts(t *testing.T) {
	ports, err := ListPorts(DefaultDevDir)
	if err != nil {
		t.Errorf("ListPorts failed: %v", err)
	}

	// Check that all returned ports are valid paths
	for _, port := range ports {
		if !strings.HasPrefix(port, "/dev/") {
			t.Errorf("Port path doesn't start with /dev/: %s", port)
		}

		// Verify it's a character device
		if !isCharacterDevice(port) {
			t.Errorf("Port is not a character device: %s", port)
		}
	}

	// Check that ports are sorted
	for i := 1; i < len(ports); i++ {
		if ports[i-1] > ports[i] {
			t.Errorf("Ports are not sorted: %s > %s", ports[i-1], ports[i])
		}
	}
}

func TestListPortsMissingDir(t *testing.T) {
	if _, err := ListPorts(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestIsCharacterDevice(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"/dev/null", true},     // Should exist and be a character device
		{"/dev/zero", true},     // Should exist and be a character device
		{"/tmp", false},         // Directory, not character device
		{"/nonexistent", false}, // Doesn't exist
	}

	for _, test := range tests {
		result := isCharacterDevice(test.path)
		if result != test.expected {
			t.Errorf("isCharacterDevice(%s) = %v, expected %v", test.path, result, test.expected)
		}
	}
}

func TestDescribePort(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"ttyUSB0", "USB Serial Port"},
		{"ttyACM0", "USB CDC/ACM Device"},
		{"ttyS0", "Standard Serial Port"},
		{"ttyAMA0", "ARM Serial Port"},
		{"ttymxc0", "i.MX Serial Port"},
		{"ttyO0", "OMAP Serial Port"},
		{"ttySAC0", "Samsung Serial Port"},
		{"ttyTHS0", "Tegra Serial Port"},
		{"unknown", "Serial Port"},
	}

	for _, test := range tests {
		result := describePort(test.name)
		if result != test.expected {
			t.Errorf("describePort(%s) = %s, expected %s", test.name, result, test.expected)
		}
	}
}

// TestPortFiltering tests that we correctly filter different types of devices
func TestPortFiltering(t *testing.T) {
	testDevices := []struct {
		name        string
		shouldMatch bool
	}{
		{"ttyUSB0", true},
		{"ttyUSB1", true},
		{"ttyACM0", true},
		{"ttyS0", true},
		{"ttyAMA0", true},
		{"tty1", false},    // Virtual terminal - should be excluded
		{"tty2", false},    // Virtual terminal - should be excluded
		{"console", false}, // Console - should be excluded
		{"ptmx", false},    // Pseudo-terminal - should be excluded
		{"ptyp0", false},   // Pseudo-terminal - should be excluded
		{"random", false},  // Not a serial device
		{"urandom", false}, // Not a serial device
	}

	for _, device := range testDevices {
		if got := isSerialName(device.name); got != device.shouldMatch {
			t.Errorf("isSerialName(%s) = %v, expected %v", device.name, got, device.shouldMatch)
		}
	}
}

// TestDevProviderQuery uses regular files in a temp dir standing in for
// device nodes, since creating character devices needs root.
func TestDevProviderQuery(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"ttyUSB1", "ttyACM0", "tty1", "null", "ttyUSB0"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
	}

	p := NewDevProvider(dir)
	p.isDevice = func(string) bool { return true }

	snap, err := p.Query(context.Background())
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	names := snap.Names()
	expected := []string{"ttyACM0", "ttyUSB0", "ttyUSB1"}
	if strings.Join(names, ",") != strings.Join(expected, ",") {
		t.Fatalf("Names() = %v, expected %v", names, expected)
	}

	for _, port := range snap.Ports() {
		if port.DeviceID != "" {
			t.Errorf("%s: DeviceID = %q, expected empty", port.Name, port.DeviceID)
		}
		if port.DisplayName != "(no name) "+port.Name {
			t.Errorf("%s: DisplayName = %q", port.Name, port.DisplayName)
		}
	}
}

func TestDevProviderSkipsNonDevices(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ttyUSB0"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	// Default device check: a regular file is not a character device.
	snap, err := NewDevProvider(dir).Query(context.Background())
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if snap.Len() != 0 {
		t.Errorf("Expected no ports, got %v", snap.Names())
	}
}

// BenchmarkListPorts benchmarks the ListPorts function
func BenchmarkListPorts(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, err := ListPorts(DefaultDevDir)
		if err != nil {
			b.Errorf("ListPorts failed: %v", err)
		}
	}
}

// TestListPortsIntegration is an integration test that requires actual system
func TestListPortsIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	snap, err := NewDevProvider("").Query(context.Background())
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	t.Logf("Found %d serial ports:", snap.Len())
	rich := NewSysfsProvider("")
	for i, name := range snap.Names() {
		details, err := rich.Describe(name)
		if err != nil {
			t.Logf("  %d. %s (error getting info: %v)", i+1, name, err)
		} else {
			t.Logf("  %d. %s (%s)", i+1, name, details.DisplayName)
		}
	}
}
