package portwatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotCaseInsensitiveKeys(t *testing.T) {
	s := NewSnapshot(
		PortInfo{Name: "COM3", DisplayName: "first"},
		PortInfo{Name: "com3", DisplayName: "second"},
	)

	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Has("Com3"))

	p, ok := s.Get("COM3")
	assert.True(t, ok)
	assert.Equal(t, "second", p.DisplayName, "later port replaces earlier one")
}

func TestSnapshotNamesSorted(t *testing.T) {
	s := NewSnapshot(
		PortInfo{Name: "ttyUSB1"},
		PortInfo{Name: "COM10"},
		PortInfo{Name: "com2"},
		PortInfo{Name: "ttyACM0"},
	)

	assert.Equal(t, []string{"COM10", "com2", "ttyACM0", "ttyUSB1"}, s.Names())

	ports := s.Ports()
	assert.Len(t, ports, 4)
	assert.Equal(t, "COM10", ports[0].Name)
}

func TestSnapshotAddOnZeroValue(t *testing.T) {
	var s Snapshot
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Has("COM1"))

	s.Add(PortInfo{Name: "COM1"})
	assert.True(t, s.Has("com1"))
}

func TestSnapshotFilterLeavesOriginal(t *testing.T) {
	s := NewSnapshot(
		PortInfo{Name: "COM1", DeviceID: `ACPI\PNP0501\0`},
		PortInfo{Name: "COM3", DeviceID: `USB\VID_0403&PID_6001\A1`},
	)

	usb := s.Filter(IsUSBSerial)

	assert.Equal(t, []string{"COM3"}, usb.Names())
	assert.Equal(t, 2, s.Len())
}

func TestSnapshotEqual(t *testing.T) {
	a := NewSnapshot(PortInfo{Name: "COM1", DisplayName: "x"})

	assert.True(t, a.Equal(NewSnapshot(PortInfo{Name: "COM1", DisplayName: "x"})))
	assert.False(t, a.Equal(NewSnapshot(PortInfo{Name: "COM1", DisplayName: "y"})))
	assert.False(t, a.Equal(NewSnapshot()))
	assert.True(t, NewSnapshot().Equal(Snapshot{}))
}

func TestCompareNames(t *testing.T) {
	assert.Equal(t, 0, compareNames("COM1", "COM1"))
	assert.Negative(t, compareNames("com1", "COM2"))
	assert.Positive(t, compareNames("COM2", "com1"))
	// Case-only differences still order deterministically.
	assert.NotEqual(t, 0, compareNames("COM1", "com1"))
}
