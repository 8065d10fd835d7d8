package portwatch

import "strings"

// Identifier prefixes of devices enumerated on a USB bus.
var usbBusPrefixes = []string{`USB\`, `USBSTOR\`}

// vendorIDMarker appears in identifiers of devices that carry a USB vendor ID
// even when enumerated through another bus driver (FTDIBUS\VID_0403+... etc).
const vendorIDMarker = `\VID_`

// IsUSBSerial reports whether p is a USB-attached serial device.
//
// Ports without a device identifier count as USB: they come from the minimal
// provider, which cannot prove otherwise, and hiding them would show less
// than the minimal provider already knows.
func IsUSBSerial(p PortInfo) bool {
	id := strings.TrimSpace(p.DeviceID)
	if id == "" {
		return true
	}

	id = strings.ToUpper(id)
	for _, prefix := range usbBusPrefixes {
		if strings.HasPrefix(id, prefix) {
			return true
		}
	}
	return strings.Contains(id, vendorIDMarker)
}
