package portwatch

import "time"

// Earliest is the insertion time recorded for ports that were already
// attached when tracking began. It sorts below every real timestamp.
var Earliest = time.Time{}

// RecencyTable records when each port was last seen being plugged in. It is
// owned by a single poll loop and is not safe for concurrent use.
type RecencyTable struct {
	entries map[string]time.Time
}

func NewRecencyTable() *RecencyTable {
	return &RecencyTable{entries: make(map[string]time.Time)}
}

// OnDiff stamps every added port with now and forgets every removed one.
// Ports that merely stay attached keep their original timestamp.
func (t *RecencyTable) OnDiff(d Diff, now time.Time) {
	for _, name := range d.Added {
		t.entries[portKey(name)] = now
	}
	for _, name := range d.Removed {
		delete(t.entries, portKey(name))
	}
}

// EnsureSeeded gives every port in s that has no entry yet the Earliest
// timestamp, so ports found at startup sort below newly plugged ones.
func (t *RecencyTable) EnsureSeeded(s Snapshot) {
	for k := range s.ports {
		if _, ok := t.entries[k]; !ok {
			t.entries[k] = Earliest
		}
	}
}

// InsertedAt returns the recorded insertion time of a port.
func (t *RecencyTable) InsertedAt(name string) (time.Time, bool) {
	at, ok := t.entries[portKey(name)]
	return at, ok
}

func (t *RecencyTable) Len() int {
	return len(t.entries)
}
