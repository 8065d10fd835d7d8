package portwatch

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// BusPath renders the bus/device pair as BBB/DDD, the form usbreset and
// /dev/bus/usb use. It returns false when sysfs did not report both numbers.
func (d USBDevice) BusPath() (string, bool) {
	bus, err := strconv.Atoi(d.BusNumber)
	if err != nil {
		return "", false
	}
	dev, err := strconv.Atoi(d.DeviceNumber)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%03d/%03d", bus, dev), true
}

// Lookup resolves a port by name, device path or USB serial number. The
// serial number is handy when device names move around after a replug or a
// reboot.
func (p *SysfsProvider) Lookup(nameOrSerial string) (PortDetails, error) {
	details, err := p.Describe(nameOrSerial)
	if err == nil {
		return details, nil
	}
	if !errors.Is(err, ErrDeviceNotFound) {
		return PortDetails{}, err
	}

	entries, readErr := os.ReadDir(p.classDir())
	if readErr != nil {
		return PortDetails{}, err
	}

	for _, entry := range entries {
		if !isSerialName(entry.Name()) {
			continue
		}

		candidate, err := p.Describe(entry.Name())
		if err != nil || candidate.USB == nil {
			continue
		}

		if strings.EqualFold(candidate.USB.SerialNumber, nameOrSerial) {
			return candidate, nil
		}
	}

	return PortDetails{}, fmt.Errorf("%w: no port or serial number %s", ErrDeviceNotFound, nameOrSerial)
}
