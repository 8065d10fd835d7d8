package portwatch

import (
	"slices"
	"strings"
)

// PortInfo describes one serial port as seen in a single poll.
//
// Name is the only identity key: two PortInfo values with the same Name
// (compared case-insensitively) are the same logical port, whatever the
// other fields say. DeviceID is the raw, provider-specific device path and
// is empty when the provider cannot supply one.
type PortInfo struct {
	Name        string `json:"name" yaml:"name"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	DeviceID    string `json:"device_id,omitempty" yaml:"device_id,omitempty"`
}

// portKey folds a port name into its snapshot key.
func portKey(name string) string {
	return strings.ToUpper(name)
}

// compareNames orders port names ordinally, ignoring case. Names that differ
// only by case fall back to a byte-wise comparison so the order is total.
func compareNames(a, b string) int {
	if c := strings.Compare(portKey(a), portKey(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// Snapshot is the complete set of ports observed at one instant, keyed by
// port name without regard to case. It carries no ordering; Names and Ports
// sort on the way out.
//
// Snapshots are treated as values: once a provider has returned one, nothing
// mutates it. Use Filter to derive a new one.
type Snapshot struct {
	ports map[string]PortInfo
}

// NewSnapshot builds a snapshot from ports. A later port replaces an earlier
// one with the same name.
func NewSnapshot(ports ...PortInfo) Snapshot {
	s := Snapshot{ports: make(map[string]PortInfo, len(ports))}
	for _, p := range ports {
		s.ports[portKey(p.Name)] = p
	}
	return s
}

// Add inserts or replaces p.
func (s *Snapshot) Add(p PortInfo) {
	if s.ports == nil {
		s.ports = make(map[string]PortInfo)
	}
	s.ports[portKey(p.Name)] = p
}

func (s Snapshot) Get(name string) (PortInfo, bool) {
	p, ok := s.ports[portKey(name)]
	return p, ok
}

func (s Snapshot) Has(name string) bool {
	_, ok := s.ports[portKey(name)]
	return ok
}

func (s Snapshot) Len() int {
	return len(s.ports)
}

// Names returns the port names sorted case-insensitively.
func (s Snapshot) Names() []string {
	names := make([]string, 0, len(s.ports))
	for _, p := range s.ports {
		names = append(names, p.Name)
	}
	slices.SortFunc(names, compareNames)
	return names
}

// Ports returns the ports sorted by name.
func (s Snapshot) Ports() []PortInfo {
	ports := make([]PortInfo, 0, len(s.ports))
	for _, p := range s.ports {
		ports = append(ports, p)
	}
	slices.SortFunc(ports, func(a, b PortInfo) int {
		return compareNames(a.Name, b.Name)
	})
	return ports
}

// Filter returns a new snapshot holding the ports for which keep is true.
func (s Snapshot) Filter(keep func(PortInfo) bool) Snapshot {
	out := Snapshot{ports: make(map[string]PortInfo, len(s.ports))}
	for k, p := range s.ports {
		if keep(p) {
			out.ports[k] = p
		}
	}
	return out
}

// Equal reports whether both snapshots hold the same ports with the same fields.
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s.ports) != len(other.ports) {
		return false
	}
	for k, p := range s.ports {
		if q, ok := other.ports[k]; !ok || q != p {
			return false
		}
	}
	return true
}
