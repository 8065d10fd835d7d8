package portwatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func snapshotOf(names ...string) Snapshot {
	s := NewSnapshot()
	for _, n := range names {
		s.Add(PortInfo{Name: n, DisplayName: n})
	}
	return s
}

func TestComputeDiff(t *testing.T) {
	tests := []struct {
		name        string
		previous    Snapshot
		current     Snapshot
		wantAdded   []string
		wantRemoved []string
	}{
		{
			name:     "no change",
			previous: snapshotOf("COM3", "COM4"),
			current:  snapshotOf("COM3", "COM4"),
		},
		{
			name:      "from empty",
			previous:  snapshotOf(),
			current:   snapshotOf("COM9", "COM3"),
			wantAdded: []string{"COM3", "COM9"},
		},
		{
			name:        "to empty",
			previous:    snapshotOf("COM3"),
			current:     snapshotOf(),
			wantRemoved: []string{"COM3"},
		},
		{
			name:        "swap",
			previous:    snapshotOf("COM3", "COM5"),
			current:     snapshotOf("COM3", "COM7", "com4"),
			wantAdded:   []string{"com4", "COM7"},
			wantRemoved: []string{"COM5"},
		},
		{
			name:     "case only change is no change",
			previous: snapshotOf("COM3"),
			current:  snapshotOf("com3"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ComputeDiff(tt.previous, tt.current)
			assert.Equal(t, tt.wantAdded, d.Added)
			assert.Equal(t, tt.wantRemoved, d.Removed)
			assert.Equal(t, len(tt.wantAdded) == 0 && len(tt.wantRemoved) == 0, d.Empty())
		})
	}
}

func TestComputeDiffSymmetric(t *testing.T) {
	a := snapshotOf("COM1", "COM2", "COM3")
	b := snapshotOf("COM2", "COM4")

	forward := ComputeDiff(a, b)
	backward := ComputeDiff(b, a)

	assert.Equal(t, forward.Added, backward.Removed)
	assert.Equal(t, forward.Removed, backward.Added)
}

func TestComputeDiffDisjoint(t *testing.T) {
	d := ComputeDiff(snapshotOf("COM1", "COM2"), snapshotOf("COM2", "COM3"))

	for _, added := range d.Added {
		assert.NotContains(t, d.Removed, added)
	}
}
