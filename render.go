package portwatch

import (
	"fmt"
	"iter"
	"regexp"
	"slices"
	"strings"
	"time"
)

// DefaultNameWidth is the minimum width of the port-name column in labels.
const DefaultNameWidth = 6

const statusTimeLayout = "15:04:05"

var vidPIDPattern = regexp.MustCompile(`(?i)VID_([0-9A-F]{4}).*PID_([0-9A-F]{4})`)

// ExtractVIDPID pulls the vendor/product pair out of a device identifier,
// formatted as "VID_XXXX PID_YYYY". It returns false when the identifier
// carries no such pair.
func ExtractVIDPID(deviceID string) (string, bool) {
	if strings.TrimSpace(deviceID) == "" {
		return "", false
	}

	m := vidPIDPattern.FindStringSubmatch(deviceID)
	if m == nil {
		return "", false
	}
	return fmt.Sprintf("VID_%s PID_%s", strings.ToUpper(m[1]), strings.ToUpper(m[2])), true
}

// Entry is one rendered row of the port list.
type Entry struct {
	Port       PortInfo  `json:"port" yaml:"port"`
	Label      string    `json:"label" yaml:"label"`
	InsertedAt time.Time `json:"inserted_at" yaml:"inserted_at"`
}

// Rendering is the ordered port list produced for one poll cycle.
type Rendering struct {
	Entries []Entry `json:"entries" yaml:"entries"`
	Count   int     `json:"count" yaml:"count"`
}

// Items yields the display labels in order. The sequence can be ranged over
// any number of times.
func (r Rendering) Items() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, e := range r.Entries {
			if !yield(e.Label) {
				return
			}
		}
	}
}

// Formatter turns snapshots into display labels.
type Formatter struct {
	// NameWidth pads the port name column; DefaultNameWidth when <= 0.
	NameWidth int
	// Note is appended in brackets to ports without a device identifier.
	Note string
}

// Label formats one port: the padded name, its display name and, when the
// identifier carries one, the vendor/product pair in brackets. Ports with no
// identifier get the formatter's note instead.
func (f Formatter) Label(p PortInfo) string {
	width := f.NameWidth
	if width <= 0 {
		width = DefaultNameWidth
	}

	label := fmt.Sprintf("%-*s  %s", width, p.Name, p.DisplayName)
	if vidpid, ok := ExtractVIDPID(p.DeviceID); ok {
		label += "  [" + vidpid + "]"
	} else if p.DeviceID == "" && f.Note != "" {
		label += "  [" + f.Note + "]"
	}
	return label
}

// Render orders the snapshot most recently inserted first and labels each
// port. Ports with equal timestamps are ordered by name.
func (f Formatter) Render(s Snapshot, t *RecencyTable) Rendering {
	ports := s.Ports()
	insertedAt := func(p PortInfo) time.Time {
		if t == nil {
			return Earliest
		}
		at, _ := t.InsertedAt(p.Name)
		return at
	}

	slices.SortStableFunc(ports, func(a, b PortInfo) int {
		return insertedAt(b).Compare(insertedAt(a))
	})

	entries := make([]Entry, 0, len(ports))
	for _, p := range ports {
		entries = append(entries, Entry{
			Port:       p,
			Label:      f.Label(p),
			InsertedAt: insertedAt(p),
		})
	}
	return Rendering{Entries: entries, Count: len(entries)}
}

// Render renders s with the default formatter.
func Render(s Snapshot, t *RecencyTable) Rendering {
	return Formatter{}.Render(s, t)
}

// StatusLine summarises a cycle as "detected: N / HH:MM:SS" followed by the
// diff. A nil diff marks a cycle that did not diff and gets no suffix.
func StatusLine(count int, now time.Time, d *Diff) string {
	var b strings.Builder
	fmt.Fprintf(&b, "detected: %d / %s", count, now.Format(statusTimeLayout))
	if d == nil {
		return b.String()
	}

	if d.Empty() {
		b.WriteString(" no change")
		return b.String()
	}
	if len(d.Added) > 0 {
		b.WriteString(" added: " + strings.Join(d.Added, ", "))
	}
	if len(d.Removed) > 0 {
		b.WriteString(" removed: " + strings.Join(d.Removed, ", "))
	}
	return b.String()
}
