package credits

import (
	"fmt"
	"time"

	"github.com/agentstation/credits/pkg/people"
	"github.com/agentstation/credits/pkg/reconciler"
)

// Result describes one generation run.
type Result struct {
	// Registry is the reconciled registry.
	Registry *people.Registry

	Stats    reconciler.Stats
	Warnings []string

	// Written lists paths whose content changed, in commit order. In a
	// dry run they are the paths that would have been written.
	Written []string

	// Unchanged lists paths already up to date.
	Unchanged []string

	// Snapshot holds the release contributors when a since reference is set.
	Snapshot     []string
	SnapshotPath string

	DryRun   bool
	Duration time.Duration
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	verb := "wrote"
	if r.DryRun {
		verb = "would write"
	}
	return fmt.Sprintf("%d persons (%d new, %d updated), %s %d files, %d unchanged",
		r.Registry.Len(), r.Stats.Created, r.Stats.Matched, verb, len(r.Written), len(r.Unchanged))
}
