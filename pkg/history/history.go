// Package history defines what the reconciliation engine needs from a
// version-control history source. Readers are pure: they never touch the
// registry or any generated artifact.
package history

import (
	"context"
	"sort"

	"github.com/agentstation/credits/pkg/people"
)

// Observation is what history records for one author email.
type Observation struct {
	Email       string
	Name        string
	Commits     int
	FirstCommit people.Date
}

// Observations maps an author email, as written in history, to its facts.
type Observations map[string]Observation

// Emails returns the observed emails in ascending order.
func (o Observations) Emails() []string {
	emails := make([]string, 0, len(o))
	for email := range o {
		emails = append(emails, email)
	}
	sort.Strings(emails)
	return emails
}

// Sorted returns the observations ordered by email.
func (o Observations) Sorted() []Observation {
	out := make([]Observation, 0, len(o))
	for _, email := range o.Emails() {
		obs := o[email]
		if obs.Email == "" {
			obs.Email = email
		}
		out = append(out, obs)
	}
	return out
}

// Reader reads author facts from a repository.
type Reader interface {
	// FullHistory returns observations for every commit reachable from HEAD.
	FullHistory(ctx context.Context) (Observations, error)

	// EmailsSince returns the author emails of commits made after ref.
	// An empty ref means the whole history.
	EmailsSince(ctx context.Context, ref string) ([]string, error)
}
