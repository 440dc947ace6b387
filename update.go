package credits

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/spf13/afero"

	"github.com/agentstation/credits/pkg/errors"
	"github.com/agentstation/credits/pkg/logging"
	"github.com/agentstation/credits/pkg/people"
	"github.com/agentstation/credits/pkg/registry"
	"github.com/agentstation/credits/pkg/release"
	"github.com/agentstation/credits/pkg/render"
	"github.com/agentstation/credits/pkg/save"
	"github.com/agentstation/credits/pkg/snapshot"
)

// Update reconciles history into the stored registry and rewrites every
// artifact whose content changed.
func (g *Generator) Update(ctx context.Context) (*Result, error) {
	ctx = g.context(ctx)
	existing, err := g.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return g.run(ctx, existing)
}

// Init builds the registry and artifacts from history alone. It refuses
// to overwrite existing files unless force is set.
func (g *Generator) Init(ctx context.Context, force bool) (*Result, error) {
	ctx = g.context(ctx)
	if !force {
		present, err := g.existingFiles()
		if err != nil {
			return nil, err
		}
		if len(present) > 0 {
			return nil, &errors.ExistingFilesError{Paths: present}
		}
	} else {
		stored, err := g.store.Exists()
		if err != nil {
			return nil, err
		}
		if stored {
			logging.FromContext(ctx).Warn().
				Str("path", g.store.Path()).
				Msg("Replacing stored registry; curated names, aliases and alternate emails are discarded")
		}
	}
	empty, _ := people.NewRegistry()
	return g.run(ctx, empty)
}

// run is the pipeline shared by Update and Init. Nothing is written until
// every artifact has been rendered and staged.
func (g *Generator) run(ctx context.Context, existing *people.Registry) (*Result, error) {
	start := time.Now()
	logger := logging.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		return nil, errors.WrapCanceled("update", err)
	}
	logger.Debug().Msg("Reading history")
	obs, err := g.reader.FullHistory(ctx)
	if err != nil {
		return nil, err
	}

	logger.Debug().Int("observations", len(obs)).Int("persons", existing.Len()).Msg("Reconciling")
	reconciled, err := g.reconciler.Reconcile(ctx, existing, obs)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Registry: reconciled.Registry,
		Stats:    reconciled.Stats,
		Warnings: reconciled.Warnings,
		DryRun:   g.cfg.DryRun,
	}

	artifacts, err := g.render(ctx, reconciled.Registry, result)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapCanceled("update", err)
	}

	tx := save.NewTransaction(g.ws.Fs, g.saveOptions...)
	for _, a := range artifacts {
		changed, err := g.changed(a)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		if !changed {
			result.Unchanged = append(result.Unchanged, a.Path)
			continue
		}
		result.Written = append(result.Written, a.Path)
		if g.cfg.DryRun {
			continue
		}
		if err := tx.Stage(a.Path, a.Content); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		tx.Rollback()
		return nil, errors.WrapCanceled("update", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	if !g.cfg.DryRun {
		g.hooks.triggerRegistryUpdate(existing, reconciled.Registry)
	}

	result.Duration = time.Since(start)
	for _, w := range result.Warnings {
		logger.Warn().Msg(w)
	}
	logger.Info().
		Int("persons", result.Registry.Len()).
		Int("created", result.Stats.Created).
		Int("written", len(result.Written)).
		Bool("dry_run", result.DryRun).
		Dur("duration", result.Duration).
		Msg("Generated contributor artifacts")
	return result, nil
}

// render produces every artifact in commit order: ledger, mailmap,
// snapshot, then the registry.
func (g *Generator) render(ctx context.Context, reg *people.Registry, result *Result) ([]render.Artifact, error) {
	persons := reg.List()

	ledger, err := render.Ledger(persons, g.policy, g.cfg.HeaderTemplate, g.cfg.ItemFormat)
	if err != nil {
		return nil, err
	}
	artifacts := []render.Artifact{{Path: g.ws.Path(g.cfg.LedgerPath), Content: []byte(ledger)}}

	if g.cfg.MailmapPath != "" {
		artifacts = append(artifacts, render.Artifact{
			Path:    g.ws.Path(g.cfg.MailmapPath),
			Content: []byte(render.Mailmap(persons)),
		})
	}

	if g.cfg.Since != "" {
		since, err := g.reader.EmailsSince(ctx, g.cfg.Since)
		if err != nil {
			return nil, err
		}
		path, err := release.ResolvePath(g.cfg.SnapshotPath, g.cfg.Version)
		if err != nil {
			return nil, err
		}
		path = g.ws.Path(path)

		ids := snapshot.Select(persons, since)
		data, err := snapshot.Encode(ids, save.FormatFromPath(path))
		if err != nil {
			return nil, err
		}
		result.Snapshot = ids
		result.SnapshotPath = path
		artifacts = append(artifacts, render.Artifact{Path: path, Content: data})

		logging.FromContext(ctx).Debug().
			Str("since", g.cfg.Since).
			Int("contributors", len(ids)).
			Str("path", path).
			Msg("Rendered release snapshot")
	}

	data, err := registry.Encode(reg)
	if err != nil {
		return nil, err
	}
	return append(artifacts, render.Artifact{Path: g.store.Path(), Content: data}), nil
}

// changed reports whether a differs from what is on disk.
func (g *Generator) changed(a render.Artifact) (bool, error) {
	current, err := afero.ReadFile(g.ws.Fs, a.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, errors.WrapIO("read", a.Path, err)
	}
	return !bytes.Equal(current, a.Content), nil
}

// existingFiles lists the generated files Init would overwrite.
func (g *Generator) existingFiles() ([]string, error) {
	paths := []string{g.ws.Path(g.cfg.LedgerPath), g.store.Path()}
	if g.cfg.MailmapPath != "" {
		paths = append(paths, g.ws.Path(g.cfg.MailmapPath))
	}

	var present []string
	for _, p := range paths {
		ok, err := afero.Exists(g.ws.Fs, p)
		if err != nil {
			return nil, errors.WrapIO("stat", p, err)
		}
		if ok {
			present = append(present, p)
		}
	}
	return present, nil
}

// context attaches the workspace logger, when set, and tags every entry
// with the workspace root.
func (g *Generator) context(ctx context.Context) context.Context {
	if g.ws.Logger != nil {
		ctx = logging.WithLogger(ctx, g.ws.Logger)
	}
	if g.ws.Root != "" {
		ctx = logging.WithField(ctx, "root", g.ws.Root)
	}
	return ctx
}
