// Package reconciler merges version-control history into the identity
// registry. Emails are the only merge key: an observation belongs to the
// person who owns its email, otherwise it becomes a new person. Derived
// statistics are recomputed from the full observation set on every pass.
package reconciler

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/agentstation/credits/pkg/errors"
	"github.com/agentstation/credits/pkg/history"
	"github.com/agentstation/credits/pkg/logging"
	"github.com/agentstation/credits/pkg/people"
)

// Reconciler merges observations into a registry.
type Reconciler interface {
	// Reconcile returns a new registry built from existing and obs.
	// existing is never modified.
	Reconcile(ctx context.Context, existing *people.Registry, obs history.Observations) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	minCommits int
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{minCommits: options.minCommits}, nil
}

// Reconcile is shorthand for New().Reconcile with default options.
func Reconcile(ctx context.Context, existing *people.Registry, obs history.Observations) (*Result, error) {
	r, _ := New()
	return r.Reconcile(ctx, existing, obs)
}

// tally accumulates one person's observations during a pass.
type tally struct {
	seen    bool
	commits int
	first   people.Date
}

func (t *tally) add(o history.Observation) {
	t.seen = true
	t.commits += o.Commits
	t.first = people.Earliest(t.first, o.FirstCommit)
}

// newcomer gathers every observed spelling of one unknown email key. The
// commit threshold applies to the combined count.
type newcomer struct {
	email        string
	name         string
	observations int
	commits      int
	first        people.Date
}

func (n *newcomer) add(o history.Observation) {
	n.observations++
	n.commits += o.Commits
	n.first = people.Earliest(n.first, o.FirstCommit)
	if n.name == "" {
		n.name = strings.TrimSpace(o.Name)
	}
}

func (n newcomer) person() people.Person {
	name := n.name
	if name == "" {
		name = n.email
	}
	return people.Person{
		Name:        name,
		Email:       n.email,
		NumCommits:  n.commits,
		FirstCommit: n.first,
	}
}

// Reconcile implements Reconciler.
func (r *reconciler) Reconcile(ctx context.Context, existing *people.Registry, obs history.Observations) (*Result, error) {
	start := time.Now()
	logger := logging.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		return nil, errors.WrapCanceled("reconcile", err)
	}

	persons := existing.List()
	owners, conflicts := indexEmails(persons)
	if len(conflicts) > 0 {
		return nil, errors.NewIdentityConflictError(conflicts)
	}
	aliases := indexAliases(persons)

	result := &Result{}
	tallies := make([]tally, len(persons))
	var (
		pending      []newcomer
		pendingIndex = make(map[string]int)
		seenConflict = make(map[string]bool)
	)

	for _, o := range obs.Sorted() {
		result.Stats.Observations++
		key := people.EmailKey(o.Email)
		if key == "" || o.Commits <= 0 {
			result.Stats.Skipped++
			continue
		}

		if i, ok := owners[key]; ok {
			tallies[i].add(o)
			for _, j := range aliases[people.NameKey(o.Name)] {
				if j == i {
					continue
				}
				c := errors.Conflict{
					Kind:    "alias",
					Key:     o.Name,
					Persons: []string{persons[i].Email, persons[j].Email},
				}
				if id := c.String(); !seenConflict[id] {
					seenConflict[id] = true
					conflicts = append(conflicts, c)
				}
			}
			continue
		}

		if j, ok := pendingIndex[key]; ok {
			pending[j].add(o)
			continue
		}
		pendingIndex[key] = len(pending)
		n := newcomer{email: o.Email}
		n.add(o)
		pending = append(pending, n)
	}

	var created []people.Person
	for _, n := range pending {
		if n.commits < r.minCommits {
			result.Stats.Skipped += n.observations
			continue
		}
		for _, j := range aliases[people.NameKey(n.name)] {
			msg := "name " + n.name + " is an alias of " + persons[j].Email + "; add " + n.email + " to its alternate_emails if they are the same person"
			result.Warnings = append(result.Warnings, msg)
			logger.Warn().
				Str("email", n.email).
				Str("name", n.name).
				Str("alias_of", persons[j].Email).
				Msg("Unmatched email uses a known alias")
		}
		created = append(created, n.person())
	}

	if len(conflicts) > 0 {
		return nil, errors.NewIdentityConflictError(conflicts)
	}

	for i := range persons {
		t := tallies[i]
		if !t.seen {
			result.Stats.Unchanged++
			continue
		}
		result.Stats.Matched++
		persons[i].NumCommits = t.commits
		persons[i].FirstCommit = people.Earliest(persons[i].FirstCommit, t.first)
	}

	sortNewcomers(created)
	result.Stats.Created = len(created)

	reg, err := people.NewRegistry(append(persons, created...)...)
	if err != nil {
		return nil, err
	}
	result.Registry = reg
	result.Duration = time.Since(start)

	logger.Debug().
		Int("matched", result.Stats.Matched).
		Int("created", result.Stats.Created).
		Int("unchanged", result.Stats.Unchanged).
		Int("skipped", result.Stats.Skipped).
		Dur("duration", result.Duration).
		Msg("Reconciled registry")

	return result, nil
}

// indexEmails maps every owned email key to its person. An email claimed
// by two different persons is a conflict.
func indexEmails(persons []people.Person) (map[string]int, []errors.Conflict) {
	owners := make(map[string]int)
	var conflicts []errors.Conflict
	for i := range persons {
		for _, email := range persons[i].Emails() {
			key := people.EmailKey(email)
			if key == "" {
				continue
			}
			j, taken := owners[key]
			if !taken {
				owners[key] = i
				continue
			}
			if j != i {
				conflicts = append(conflicts, errors.Conflict{
					Kind:    "email",
					Key:     email,
					Persons: []string{persons[j].Email, persons[i].Email},
				})
			}
		}
	}
	return owners, conflicts
}

// indexAliases maps alias name keys to the persons that list them.
func indexAliases(persons []people.Person) map[string][]int {
	aliases := make(map[string][]int)
	for i := range persons {
		for _, a := range persons[i].Aliases {
			key := people.NameKey(a)
			if key == "" {
				continue
			}
			if list := aliases[key]; len(list) > 0 && list[len(list)-1] == i {
				continue
			}
			aliases[key] = append(aliases[key], i)
		}
	}
	return aliases
}

// sortNewcomers orders new persons by first contribution, unknown dates
// last, then by email.
func sortNewcomers(p []people.Person) {
	sort.SliceStable(p, func(i, j int) bool {
		a, b := p[i].FirstCommit, p[j].FirstCommit
		if !a.Equal(b) {
			if a.IsZero() || b.IsZero() {
				return b.IsZero()
			}
			return a.Before(b)
		}
		return people.EmailKey(p[i].Email) < people.EmailKey(p[j].Email)
	})
}
