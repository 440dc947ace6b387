package reconciler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/credits/pkg/errors"
	"github.com/agentstation/credits/pkg/history"
	"github.com/agentstation/credits/pkg/logging"
	"github.com/agentstation/credits/pkg/people"
)

func mustRegistry(t *testing.T, persons ...people.Person) *people.Registry {
	t.Helper()
	reg, err := people.NewRegistry(persons...)
	require.NoError(t, err)
	return reg
}

func alice() people.Person {
	return people.Person{
		Name:            "Alice",
		Email:           "alice@x.com",
		AlternateEmails: []string{"a@y.com"},
		NumCommits:      10,
		FirstCommit:     people.MustParseDate("2020-01-01"),
	}
}

func TestReconcileAccumulatesAlternateEmails(t *testing.T) {
	existing := mustRegistry(t, alice())
	obs := history.Observations{
		"alice@x.com": {Name: "Alice", Commits: 12, FirstCommit: people.MustParseDate("2019-06-01")},
		"a@y.com":     {Name: "Alice", Commits: 3, FirstCommit: people.MustParseDate("2021-02-02")},
	}

	result, err := Reconcile(context.Background(), existing, obs)
	require.NoError(t, err)

	got, ok := result.Registry.Get("alice@x.com")
	require.True(t, ok)
	assert.Equal(t, 15, got.NumCommits)
	assert.Equal(t, "2019-06-01", got.FirstCommit.String())
	assert.Equal(t, 1, result.Registry.Len())
	assert.Equal(t, Stats{Observations: 2, Matched: 1}, result.Stats)
}

func TestReconcileCreatesNewcomer(t *testing.T) {
	existing := mustRegistry(t, alice())
	obs := history.Observations{
		"alice@x.com": {Name: "Alice", Commits: 10, FirstCommit: people.MustParseDate("2020-01-01")},
		"bob@z.com":   {Name: "Bob", Commits: 1, FirstCommit: people.MustParseDate("2023-03-03")},
	}

	result, err := Reconcile(context.Background(), existing, obs)
	require.NoError(t, err)

	list := result.Registry.List()
	require.Len(t, list, 2)
	assert.Equal(t, "alice@x.com", list[0].Email)
	assert.Equal(t, people.Person{
		Name:        "Bob",
		Email:       "bob@z.com",
		NumCommits:  1,
		FirstCommit: people.MustParseDate("2023-03-03"),
	}, list[1])
	assert.Equal(t, 1, result.Stats.Created)
	assert.Equal(t, "2 persons: 1 updated, 1 new, 0 unchanged", result.Summary())
}

func TestReconcileNewcomerOrdering(t *testing.T) {
	obs := history.Observations{
		"zed@z.com":    {Name: "Zed", Commits: 1, FirstCommit: people.MustParseDate("2020-01-01")},
		"amy@a.com":    {Name: "Amy", Commits: 1, FirstCommit: people.MustParseDate("2021-01-01")},
		"nodate@n.com": {Name: "Nodate", Commits: 1},
		"bea@b.com":    {Name: "Bea", Commits: 1, FirstCommit: people.MustParseDate("2020-01-01")},
	}

	result, err := Reconcile(context.Background(), nil, obs)
	require.NoError(t, err)

	var emails []string
	for _, p := range result.Registry.List() {
		emails = append(emails, p.Email)
	}
	assert.Equal(t, []string{"bea@b.com", "zed@z.com", "amy@a.com", "nodate@n.com"}, emails)
}

func TestReconcileSkipsEmptyObservations(t *testing.T) {
	obs := history.Observations{
		"ghost@x.com": {Name: "Ghost", Commits: 0},
		"":            {Name: "Nobody", Commits: 4},
	}

	result, err := Reconcile(context.Background(), nil, obs)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Registry.Len())
	assert.Equal(t, 2, result.Stats.Skipped)
}

func TestReconcileMissingNameFallsBackToEmail(t *testing.T) {
	obs := history.Observations{
		"anon@x.com": {Commits: 2},
	}

	result, err := Reconcile(context.Background(), nil, obs)
	require.NoError(t, err)
	got, ok := result.Registry.Get("anon@x.com")
	require.True(t, ok)
	assert.Equal(t, "anon@x.com", got.Name)
}

func TestReconcileBlankNameFallsBackToEmail(t *testing.T) {
	result, err := Reconcile(context.Background(), nil, history.Observations{
		"bob@z.com": {Name: "   ", Commits: 3},
		"cy@z.com":  {Name: " Cy ", Commits: 1},
	})
	require.NoError(t, err)

	bob, ok := result.Registry.Get("bob@z.com")
	require.True(t, ok)
	assert.Equal(t, "bob@z.com", bob.Name)

	cy, _ := result.Registry.Get("cy@z.com")
	assert.Equal(t, "Cy", cy.Name)
}

func TestReconcileNameFromLaterCaseVariant(t *testing.T) {
	result, err := Reconcile(context.Background(), nil, history.Observations{
		"Bob@z.com": {Commits: 1},
		"bob@z.com": {Name: "Bob", Commits: 1},
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Registry.Len())
	assert.Equal(t, "Bob", result.Registry.List()[0].Name)
}

func TestReconcilePreservesCuratedFields(t *testing.T) {
	curated := alice()
	curated.GitHub = "alice"
	curated.Aliases = []string{"Ally"}
	existing := mustRegistry(t, curated)

	obs := history.Observations{
		"alice@x.com": {Name: "alice smith", Commits: 11, FirstCommit: people.MustParseDate("2020-01-01")},
	}

	result, err := Reconcile(context.Background(), existing, obs)
	require.NoError(t, err)
	got, _ := result.Registry.Get("alice@x.com")
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "alice", got.GitHub)
	assert.Equal(t, []string{"Ally"}, got.Aliases)
	assert.Equal(t, []string{"a@y.com"}, got.AlternateEmails)
	assert.Equal(t, 11, got.NumCommits)
}

func TestReconcileDoesNotRegressFirstCommit(t *testing.T) {
	existing := mustRegistry(t, alice())
	obs := history.Observations{
		"alice@x.com": {Name: "Alice", Commits: 4, FirstCommit: people.MustParseDate("2022-05-05")},
	}

	result, err := Reconcile(context.Background(), existing, obs)
	require.NoError(t, err)
	got, _ := result.Registry.Get("alice@x.com")
	assert.Equal(t, "2020-01-01", got.FirstCommit.String())
	assert.Equal(t, 4, got.NumCommits)
}

func TestReconcileRetainsUnobservedPersons(t *testing.T) {
	carol := people.Person{Name: "Carol", Email: "carol@c.com", NumCommits: 7, FirstCommit: people.MustParseDate("2018-08-08")}
	existing := mustRegistry(t, carol, alice())

	result, err := Reconcile(context.Background(), existing, history.Observations{
		"alice@x.com": {Name: "Alice", Commits: 10, FirstCommit: people.MustParseDate("2020-01-01")},
	})
	require.NoError(t, err)

	got, ok := result.Registry.Get("carol@c.com")
	require.True(t, ok)
	assert.Equal(t, carol, got)
	assert.Equal(t, "carol@c.com", result.Registry.List()[0].Email)
	assert.Equal(t, 1, result.Stats.Unchanged)
}

func TestReconcileDoesNotMutateInput(t *testing.T) {
	existing := mustRegistry(t, alice())
	before := existing.List()

	_, err := Reconcile(context.Background(), existing, history.Observations{
		"alice@x.com": {Name: "Alice", Commits: 99, FirstCommit: people.MustParseDate("2001-01-01")},
		"new@n.com":   {Name: "New", Commits: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, before, existing.List())
}

func TestReconcileIsIdempotent(t *testing.T) {
	existing := mustRegistry(t, alice())
	obs := history.Observations{
		"alice@x.com": {Name: "Alice", Commits: 12, FirstCommit: people.MustParseDate("2019-06-01")},
		"bob@z.com":   {Name: "Bob", Commits: 1, FirstCommit: people.MustParseDate("2023-03-03")},
	}

	first, err := Reconcile(context.Background(), existing, obs)
	require.NoError(t, err)
	second, err := Reconcile(context.Background(), first.Registry, obs)
	require.NoError(t, err)
	assert.Equal(t, first.Registry.List(), second.Registry.List())
	assert.Equal(t, 0, second.Stats.Created)
}

func TestReconcileEmailCaseInsensitive(t *testing.T) {
	existing := mustRegistry(t, alice())
	result, err := Reconcile(context.Background(), existing, history.Observations{
		"Alice@X.com": {Name: "Alice", Commits: 10, FirstCommit: people.MustParseDate("2020-01-01")},
		"A@Y.COM":     {Name: "Alice", Commits: 1, FirstCommit: people.MustParseDate("2020-01-01")},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Registry.Len())
	got, _ := result.Registry.Get("alice@x.com")
	assert.Equal(t, 11, got.NumCommits)
}

func TestReconcileFoldsNewcomerCaseVariants(t *testing.T) {
	result, err := Reconcile(context.Background(), nil, history.Observations{
		"Bob@Z.com": {Name: "Bob", Commits: 2, FirstCommit: people.MustParseDate("2022-01-01")},
		"bob@z.com": {Name: "Bob", Commits: 3, FirstCommit: people.MustParseDate("2021-01-01")},
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Registry.Len())
	got := result.Registry.List()[0]
	assert.Equal(t, 5, got.NumCommits)
	assert.Equal(t, "2021-01-01", got.FirstCommit.String())
}

func TestReconcileMinCommitsCountsCaseVariantsTogether(t *testing.T) {
	r, err := New(WithMinCommits(2))
	require.NoError(t, err)

	result, err := r.Reconcile(context.Background(), nil, history.Observations{
		"Bob@z.com": {Name: "Bob", Commits: 1, FirstCommit: people.MustParseDate("2019-01-01")},
		"bob@z.com": {Name: "Bob", Commits: 5, FirstCommit: people.MustParseDate("2020-01-01")},
		"one@x.com": {Name: "Once", Commits: 1},
	})
	require.NoError(t, err)

	require.Equal(t, 1, result.Registry.Len())
	got := result.Registry.List()[0]
	assert.Equal(t, 6, got.NumCommits)
	assert.Equal(t, "2019-01-01", got.FirstCommit.String())
	assert.Equal(t, 1, result.Stats.Skipped)
	assert.Equal(t, 1, result.Stats.Created)
}

func TestReconcileEmailConflict(t *testing.T) {
	bob := people.Person{Name: "Bob", Email: "bob@z.com", AlternateEmails: []string{"a@y.com"}}
	existing := mustRegistry(t, alice(), bob)

	_, err := Reconcile(context.Background(), existing, history.Observations{})
	require.Error(t, err)
	assert.True(t, errors.IsConflict(err))

	var conflict *errors.IdentityConflictError
	require.True(t, errors.As(err, &conflict))
	require.Len(t, conflict.Conflicts, 1)
	assert.Equal(t, errors.Conflict{
		Kind:    "email",
		Key:     "a@y.com",
		Persons: []string{"alice@x.com", "bob@z.com"},
	}, conflict.Conflicts[0])
}

func TestReconcileAliasConflict(t *testing.T) {
	bob := people.Person{Name: "Bob", Email: "bob@z.com", Aliases: []string{"Al"}}
	existing := mustRegistry(t, alice(), bob)

	_, err := Reconcile(context.Background(), existing, history.Observations{
		"alice@x.com": {Name: "Al", Commits: 1, FirstCommit: people.MustParseDate("2020-01-01")},
		"a@y.com":     {Name: "Al", Commits: 1, FirstCommit: people.MustParseDate("2020-01-01")},
	})
	require.Error(t, err)

	var conflict *errors.IdentityConflictError
	require.True(t, errors.As(err, &conflict))
	require.Len(t, conflict.Conflicts, 1)
	assert.Equal(t, "alias", conflict.Conflicts[0].Kind)
	assert.Equal(t, []string{"alice@x.com", "bob@z.com"}, conflict.Conflicts[0].Persons)
}

func TestReconcileOwnAliasIsNotConflict(t *testing.T) {
	curated := alice()
	curated.Aliases = []string{"Al"}
	existing := mustRegistry(t, curated)

	_, err := Reconcile(context.Background(), existing, history.Observations{
		"alice@x.com": {Name: "Al", Commits: 1},
	})
	assert.NoError(t, err)
}

func TestReconcileAliasNeverMerges(t *testing.T) {
	curated := alice()
	curated.Aliases = []string{"Al"}
	existing := mustRegistry(t, curated)

	logger := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), logger.Logger)

	result, err := Reconcile(ctx, existing, history.Observations{
		"al@elsewhere.com": {Name: "Al", Commits: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Registry.Len())
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "alias of alice@x.com")
	assert.True(t, logger.Contains("Unmatched email uses a known alias"))
}

func TestReconcileUniquePrimaryEmails(t *testing.T) {
	existing := mustRegistry(t, alice())
	result, err := Reconcile(context.Background(), existing, history.Observations{
		"a@y.com":     {Name: "Alice", Commits: 1},
		"c@c.com":     {Name: "C", Commits: 1},
		"C@C.com":     {Name: "C", Commits: 1},
		"alice@x.com": {Name: "Alice", Commits: 1},
	})
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, p := range result.Registry.List() {
		for _, e := range p.Emails() {
			key := people.EmailKey(e)
			assert.False(t, seen[key], "email %s owned twice", e)
			seen[key] = true
		}
	}
}

func TestReconcileCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Reconcile(ctx, nil, history.Observations{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, errors.IsCanceled(err))
}

func TestWithMinCommits(t *testing.T) {
	_, err := New(WithMinCommits(0))
	assert.True(t, errors.IsValidationError(err))

	r, err := New(WithMinCommits(3))
	require.NoError(t, err)

	existing := mustRegistry(t, alice())
	result, err := r.Reconcile(context.Background(), existing, history.Observations{
		"alice@x.com":   {Name: "Alice", Commits: 1},
		"drive@by.com":  {Name: "Drive", Commits: 2},
		"regular@r.com": {Name: "Regular", Commits: 3},
	})
	require.NoError(t, err)
	_, ok := result.Registry.Get("drive@by.com")
	assert.False(t, ok)
	_, ok = result.Registry.Get("regular@r.com")
	assert.True(t, ok)
	got, _ := result.Registry.Get("alice@x.com")
	assert.Equal(t, 1, got.NumCommits)
}
