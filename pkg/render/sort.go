package render

import (
	"sort"
	"strings"

	"github.com/agentstation/credits/pkg/errors"
	"github.com/agentstation/credits/pkg/people"
)

// SortPolicy names an ordering for the ledger.
type SortPolicy string

// Sort policies.
const (
	// SortByCommits orders by commit count, most commits first.
	SortByCommits SortPolicy = "num_commits"
	// SortByFirstCommit orders by first contribution, oldest first. Unknown dates sort last.
	SortByFirstCommit SortPolicy = "first_commit"
	// SortAlphabetical orders by display name, byte-wise.
	SortAlphabetical SortPolicy = "alphabetical"
)

// Policies returns every supported policy.
func Policies() []SortPolicy {
	return []SortPolicy{SortByCommits, SortByFirstCommit, SortAlphabetical}
}

// ParseSortPolicy returns the policy named s.
func ParseSortPolicy(s string) (SortPolicy, error) {
	p := SortPolicy(strings.TrimSpace(s))
	if !p.IsValid() {
		names := make([]string, 0, 3)
		for _, known := range Policies() {
			names = append(names, string(known))
		}
		return "", errors.NewValidationError("sort", s, "unknown sort policy, expected one of "+strings.Join(names, ", "))
	}
	return p, nil
}

// IsValid reports whether p is a known policy.
func (p SortPolicy) IsValid() bool {
	switch p {
	case SortByCommits, SortByFirstCommit, SortAlphabetical:
		return true
	}
	return false
}

// String returns the policy name.
func (p SortPolicy) String() string {
	return string(p)
}

// Description is the phrase substituted for {sorting_text}.
func (p SortPolicy) Description() string {
	switch p {
	case SortByCommits:
		return "sorted by number of commits"
	case SortByFirstCommit:
		return "sorted by date of first contribution"
	case SortAlphabetical:
		return "sorted alphabetically"
	}
	return ""
}

// Sort returns a sorted copy of persons. Ties keep their input order.
func Sort(persons []people.Person, policy SortPolicy) ([]people.Person, error) {
	if !policy.IsValid() {
		return nil, errors.NewValidationError("sort", string(policy), "unknown sort policy")
	}

	out := make([]people.Person, len(persons))
	copy(out, persons)

	var less func(a, b *people.Person) bool
	switch policy {
	case SortByCommits:
		less = func(a, b *people.Person) bool { return a.NumCommits > b.NumCommits }
	case SortByFirstCommit:
		less = func(a, b *people.Person) bool {
			if a.FirstCommit.IsZero() || b.FirstCommit.IsZero() {
				return !a.FirstCommit.IsZero() && b.FirstCommit.IsZero()
			}
			return a.FirstCommit.Before(b.FirstCommit)
		}
	case SortAlphabetical:
		less = func(a, b *people.Person) bool { return a.Name < b.Name }
	}

	sort.SliceStable(out, func(i, j int) bool { return less(&out[i], &out[j]) })
	return out, nil
}
