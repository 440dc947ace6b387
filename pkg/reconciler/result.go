package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/credits/pkg/people"
)

// Result represents the outcome of a reconciliation pass.
type Result struct {
	// Registry is the reconciled registry: existing persons in their
	// original order followed by newcomers.
	Registry *people.Registry

	Stats    Stats
	Warnings []string
	Duration time.Duration
}

// Stats counts what happened to each person and observation.
type Stats struct {
	Observations int // observations read
	Skipped      int // observations without an email or below the commit threshold
	Matched      int // existing persons with fresh statistics
	Created      int // persons created from unknown emails
	Unchanged    int // existing persons with no observations this pass
}

// Summary returns a one-line human summary.
func (r *Result) Summary() string {
	return fmt.Sprintf("%d persons: %d updated, %d new, %d unchanged",
		r.Registry.Len(), r.Stats.Matched, r.Stats.Created, r.Stats.Unchanged)
}
