// Package gitlog reads author history from a git repository with go-git.
// It implements history.Reader and never writes to the repository.
package gitlog

import (
	"context"
	stderrors "errors"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/agentstation/credits/pkg/errors"
	"github.com/agentstation/credits/pkg/history"
	"github.com/agentstation/credits/pkg/logging"
	"github.com/agentstation/credits/pkg/people"
)

const source = "git"

// Reader reads commit authors from a repository.
type Reader struct {
	repo *git.Repository
	path string
}

var _ history.Reader = (*Reader)(nil)

// Open opens the repository containing path, searching parent
// directories for .git.
func Open(path string) (*Reader, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if stderrors.Is(err, git.ErrRepositoryNotExists) {
			return nil, errors.NewHistoryUnavailableError(source, "no git repository at "+path, err)
		}
		return nil, errors.NewHistoryUnavailableError(source, "cannot open "+path, err)
	}
	return &Reader{repo: repo, path: path}, nil
}

// New wraps an already opened repository.
func New(repo *git.Repository) *Reader {
	return &Reader{repo: repo}
}

// FullHistory implements history.Reader. Each author email gets a commit
// count, the UTC day of its earliest authored commit and the name used on
// its most recent commit.
func (r *Reader) FullHistory(ctx context.Context) (history.Observations, error) {
	head, err := r.head()
	if err != nil {
		return nil, err
	}

	type entry struct {
		obs    history.Observation
		latest object.Signature
	}
	entries := make(map[string]*entry)

	err = r.walk(ctx, head, nil, func(c *object.Commit) {
		email := c.Author.Email
		e, ok := entries[email]
		if !ok {
			e = &entry{obs: history.Observation{Email: email, Name: c.Author.Name}, latest: c.Author}
			entries[email] = e
		}
		e.obs.Commits++
		e.obs.FirstCommit = people.Earliest(e.obs.FirstCommit, people.NewDate(c.Author.When))
		if c.Author.When.After(e.latest.When) {
			e.latest = c.Author
			e.obs.Name = c.Author.Name
		}
	})
	if err != nil {
		return nil, err
	}

	obs := make(history.Observations, len(entries))
	for email, e := range entries {
		obs[email] = e.obs
	}
	logging.FromContext(ctx).Debug().
		Int("authors", len(obs)).
		Str("head", head.String()).
		Msg("Read git history")
	return obs, nil
}

// EmailsSince implements history.Reader. It returns the author emails of
// commits reachable from HEAD but not from ref, sorted and unique.
func (r *Reader) EmailsSince(ctx context.Context, ref string) ([]string, error) {
	head, err := r.head()
	if err != nil {
		return nil, err
	}

	var exclude map[plumbing.Hash]bool
	if ref != "" {
		base, err := r.repo.ResolveRevision(plumbing.Revision(ref))
		if err != nil {
			return nil, errors.NewHistoryUnavailableError(source, "cannot resolve "+ref, err)
		}
		exclude = make(map[plumbing.Hash]bool)
		if err := r.walk(ctx, *base, nil, func(c *object.Commit) { exclude[c.Hash] = true }); err != nil {
			return nil, err
		}
	}

	seen := make(map[string]bool)
	err = r.walk(ctx, head, exclude, func(c *object.Commit) {
		seen[c.Author.Email] = true
	})
	if err != nil {
		return nil, err
	}

	emails := make([]string, 0, len(seen))
	for email := range seen {
		emails = append(emails, email)
	}
	sort.Strings(emails)
	return emails, nil
}

func (r *Reader) head() (plumbing.Hash, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return plumbing.ZeroHash, errors.NewHistoryUnavailableError(source, "repository has no HEAD", err)
	}
	return ref.Hash(), nil
}

// walk visits every commit reachable from from, skipping hashes in
// exclude. Cancellation stops the walk.
func (r *Reader) walk(ctx context.Context, from plumbing.Hash, exclude map[plumbing.Hash]bool, visit func(*object.Commit)) error {
	iter, err := r.repo.Log(&git.LogOptions{From: from})
	if err != nil {
		return errors.NewHistoryUnavailableError(source, "cannot walk log from "+from.String(), err)
	}
	defer iter.Close()

	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !exclude[c.Hash] {
			visit(c)
		}
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errors.WrapCanceled("history walk", ctxErr)
		}
		return errors.NewHistoryUnavailableError(source, "log walk failed", err)
	}
	return nil
}
