package portwatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSysfsRoot is the sysfs mount point read by SysfsProvider.
const DefaultSysfsRoot = "/sys"

// maxUSBWalkDepth bounds how far up from a tty's device directory we look
// for the USB device that owns it (tty -> interface -> device).
const maxUSBWalkDepth = 4

// USBDevice is the USB metadata sysfs exposes for the device behind a port.
type USBDevice struct {
	VendorID        string `json:"vendor_id" yaml:"vendor_id"`
	ProductID       string `json:"product_id" yaml:"product_id"`
	SerialNumber    string `json:"serial_number,omitempty" yaml:"serial_number,omitempty"`
	Manufacturer    string `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
	Product         string `json:"product,omitempty" yaml:"product,omitempty"`
	InterfaceNumber string `json:"interface_number,omitempty" yaml:"interface_number,omitempty"`
	BusNumber       string `json:"bus_number,omitempty" yaml:"bus_number,omitempty"`
	DeviceNumber    string `json:"device_number,omitempty" yaml:"device_number,omitempty"`
}

// Identifier renders the device in the bus\VID&PID\serial form that
// IsUSBSerial and ExtractVIDPID understand.
func (d USBDevice) Identifier() string {
	id := fmt.Sprintf(`USB\VID_%s&PID_%s`, strings.ToUpper(d.VendorID), strings.ToUpper(d.ProductID))
	if d.SerialNumber != "" {
		id += `\` + d.SerialNumber
	}
	return id
}

func (d USBDevice) label(port string) string {
	switch {
	case d.Product != "":
		return d.Product
	case d.Manufacturer != "":
		return d.Manufacturer + " USB Serial"
	default:
		return describePort(port)
	}
}

// PortDetails is everything the rich provider knows about one port.
type PortDetails struct {
	PortInfo `yaml:",inline"`
	Driver   string     `json:"driver" yaml:"driver"`
	USB      *USBDevice `json:"usb,omitempty" yaml:"usb,omitempty"`
}

// USBInfo returns the USB descriptors, or ErrUSBInfoNotAvailable for ports
// that are not on a USB bus.
func (d PortDetails) USBInfo() (USBDevice, error) {
	if d.USB == nil {
		return USBDevice{}, ErrUSBInfoNotAvailable
	}
	return *d.USB, nil
}

// SysfsProvider is the rich provider. It walks /sys/class/tty and resolves
// each serial port to its backing device, reading USB descriptors where the
// port sits on a USB bus.
type SysfsProvider struct {
	root string
}

// NewSysfsProvider returns a provider reading from root, or DefaultSysfsRoot
// when root is empty.
func NewSysfsProvider(root string) *SysfsProvider {
	if root == "" {
		root = DefaultSysfsRoot
	}
	return &SysfsProvider{root: root}
}

func (p *SysfsProvider) classDir() string {
	return filepath.Join(p.root, "class", "tty")
}

func (p *SysfsProvider) Query(ctx context.Context) (Snapshot, error) {
	entries, err := os.ReadDir(p.classDir())
	if err != nil {
		return NewSnapshot(), fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	snap := NewSnapshot()
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return NewSnapshot(), err
		}

		name := entry.Name()
		if !isSerialName(name) {
			continue
		}

		details, err := p.Describe(name)
		if err != nil {
			// No backing device: a tty class entry without hardware.
			continue
		}
		snap.Add(details.PortInfo)
	}
	return snap, nil
}

// Describe resolves a single port. name may be a bare port name or a device
// path such as /dev/ttyUSB0.
func (p *SysfsProvider) Describe(name string) (PortDetails, error) {
	name = filepath.Base(name)

	resolved, err := filepath.EvalSymlinks(filepath.Join(p.classDir(), name, "device"))
	if err != nil {
		return PortDetails{}, fmt.Errorf("%w: %s", ErrDeviceNotFound, name)
	}

	details := PortDetails{
		PortInfo: PortInfo{Name: name},
		Driver:   readDriver(resolved),
	}

	if usbDir, ok := findUSBDevice(resolved); ok {
		dev := readUSBDevice(usbDir, resolved)
		details.USB = &dev
		details.DisplayName = fmt.Sprintf("%s (%s)", dev.label(name), name)
		details.DeviceID = dev.Identifier()
		return details, nil
	}

	details.DisplayName = fmt.Sprintf("%s (%s)", describePort(name), name)
	details.DeviceID = fmt.Sprintf(`PLATFORM\%s\%s`, details.Driver, name)
	return details, nil
}

// findUSBDevice walks up from a tty device directory to the first ancestor
// carrying USB descriptors.
func findUSBDevice(start string) (string, bool) {
	dir := start
	for i := 0; i < maxUSBWalkDepth; i++ {
		if readSysfsFile(filepath.Join(dir, "idVendor")) != "" {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false
}

func readUSBDevice(usbDir, ttyDevice string) USBDevice {
	dev := USBDevice{
		VendorID:     readSysfsFile(filepath.Join(usbDir, "idVendor")),
		ProductID:    readSysfsFile(filepath.Join(usbDir, "idProduct")),
		SerialNumber: readSysfsFile(filepath.Join(usbDir, "serial")),
		Manufacturer: readSysfsFile(filepath.Join(usbDir, "manufacturer")),
		Product:      readSysfsFile(filepath.Join(usbDir, "product")),
		BusNumber:    readSysfsFile(filepath.Join(usbDir, "busnum")),
		DeviceNumber: readSysfsFile(filepath.Join(usbDir, "devnum")),
	}

	// The interface directory sits between the tty and the USB device; for
	// CDC/ACM ports the tty device link points straight at it.
	for dir := ttyDevice; dir != usbDir && dir != filepath.Dir(dir); dir = filepath.Dir(dir) {
		if n := readSysfsFile(filepath.Join(dir, "bInterfaceNumber")); n != "" {
			dev.InterfaceNumber = n
			break
		}
	}
	return dev
}

func readDriver(deviceDir string) string {
	driver, err := filepath.EvalSymlinks(filepath.Join(deviceDir, "driver"))
	if err != nil {
		return "unknown"
	}
	return filepath.Base(driver)
}

// readSysfsFile returns the trimmed contents of a sysfs attribute, or "" if
// it cannot be read.
func readSysfsFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
