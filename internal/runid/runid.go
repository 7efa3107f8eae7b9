// Package runid generates the identifier that tags a single simulation
// run's log lines, metric labels, and persisted snapshots, so multiple
// concurrent runs (a parameter sweep) never collide.
package runid

import "github.com/google/uuid"

// ID is a run identifier.
type ID string

// New generates a fresh, random run identifier.
func New() ID {
	return ID(uuid.NewString())
}

// String returns the identifier's string form.
func (i ID) String() string { return string(i) }
