package portwatch

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/sys/unix"
)

// DefaultDevDir is where ListPorts looks for serial device nodes.
const DefaultDevDir = "/dev"

// Regular expressions for different types of serial devices
var serialPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^ttyUSB\d+$`), // USB serial adapters
	regexp.MustCompile(`^ttyACM\d+$`), // USB CDC/ACM devices
	regexp.MustCompile(`^ttyS\d+$`),   // Standard serial ports
	regexp.MustCompile(`^ttyAMA\d+$`), // ARM/Raspberry Pi serial
	regexp.MustCompile(`^ttymxc\d+$`), // i.MX serial ports
	regexp.MustCompile(`^ttyO\d+$`),   // OMAP serial ports
	regexp.MustCompile(`^ttySAC\d+$`), // Samsung serial ports
	regexp.MustCompile(`^ttyTHS\d+$`), // Tegra serial ports
}

// Exclude patterns for virtual terminals and other non-serial devices
var excludePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^tty\d+$`),  // Virtual terminals (tty1, tty2, etc.)
	regexp.MustCompile(`^console$`), // Console
	regexp.MustCompile(`^ptmx$`),    // Pseudo-terminal multiplexer
	regexp.MustCompile(`^pty.*$`),   // Pseudo-terminals
	regexp.MustCompile(`^pts/.*$`),  // Pseudo-terminal slaves
}

// isSerialName reports whether a device name looks like a serial port and is
// not a virtual terminal.
func isSerialName(name string) bool {
	for _, p := range excludePatterns {
		if p.MatchString(name) {
			return false
		}
	}
	for _, p := range serialPatterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}

// ListPorts returns the serial device nodes under devDir, sorted.
// Filters for communication-capable devices and excludes virtual terminals
func ListPorts(devDir string) ([]string, error) {
	return listPorts(devDir, isCharacterDevice)
}

func listPorts(devDir string, isDevice func(string) bool) ([]string, error) {
	entries, err := os.ReadDir(devDir)
	if err != nil {
		return nil, err
	}

	var ports []string
	for _, entry := range entries {
		name := entry.Name()
		if !isSerialName(name) {
			continue
		}

		fullPath := filepath.Join(devDir, name)

		// Verify it's a character device (not a directory or regular file)
		if isDevice(fullPath) {
			ports = append(ports, fullPath)
		}
	}

	// Sort the ports for consistent ordering
	sort.Strings(ports)

	return ports, nil
}

// isCharacterDevice checks if the given path is a character device
func isCharacterDevice(path string) bool {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return false
	}
	return st.Mode&unix.S_IFMT == unix.S_IFCHR
}

// placeholderName is the display name given to ports whose metadata could
// not be obtained.
func placeholderName(name string) string {
	return "(no name) " + name
}

// describePort provides human-readable descriptions for different port types
func describePort(name string) string {
	switch {
	case strings.HasPrefix(name, "ttyUSB"):
		return "USB Serial Port"
	case strings.HasPrefix(name, "ttyACM"):
		return "USB CDC/ACM Device"
	case strings.HasPrefix(name, "ttyAMA"):
		return "ARM Serial Port"
	case strings.HasPrefix(name, "ttymxc"):
		return "i.MX Serial Port"
	case strings.HasPrefix(name, "ttySAC"):
		return "Samsung Serial Port"
	case strings.HasPrefix(name, "ttyTHS"):
		return "Tegra Serial Port"
	case strings.HasPrefix(name, "ttyO"):
		return "OMAP Serial Port"
	case strings.HasPrefix(name, "ttyS"):
		return "Standard Serial Port"
	default:
		return "Serial Port"
	}
}

// DevProvider is the minimal provider. It only lists device nodes, so every
// port it reports carries a placeholder display name and no device
// identifier. It never blocks for long and does not consult ctx.
type DevProvider struct {
	dir      string
	isDevice func(string) bool
}

// NewDevProvider returns a provider scanning dir, or DefaultDevDir when dir
// is empty.
func NewDevProvider(dir string) *DevProvider {
	if dir == "" {
		dir = DefaultDevDir
	}
	return &DevProvider{dir: dir, isDevice: isCharacterDevice}
}

func (p *DevProvider) Query(_ context.Context) (Snapshot, error) {
	paths, err := listPorts(p.dir, p.isDevice)
	if err != nil {
		return NewSnapshot(), err
	}

	snap := NewSnapshot()
	for _, path := range paths {
		name := filepath.Base(path)
		snap.Add(PortInfo{
			Name:        name,
			DisplayName: placeholderName(name),
		})
	}
	return snap, nil
}
