package portwatch

import "slices"

// Diff is the set of port names that appeared and disappeared between two
// consecutive filtered snapshots. Both lists are sorted case-insensitively so
// output is reproducible.
type Diff struct {
	Added   []string `json:"added" yaml:"added"`
	Removed []string `json:"removed" yaml:"removed"`
}

// Empty reports whether nothing changed.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// ComputeDiff returns the ports present in current but not previous (Added)
// and those present in previous but not current (Removed).
func ComputeDiff(previous, current Snapshot) Diff {
	return Diff{
		Added:   missingFrom(current, previous),
		Removed: missingFrom(previous, current),
	}
}

// missingFrom lists the names in s that other does not contain.
func missingFrom(s, other Snapshot) []string {
	var names []string
	for _, p := range s.ports {
		if !other.Has(p.Name) {
			names = append(names, p.Name)
		}
	}
	slices.SortFunc(names, compareNames)
	return names
}
