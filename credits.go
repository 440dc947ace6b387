// Package credits generates a project's contributor ledger from git
// history and a hand-curated identity registry.
//
// A Generator runs the whole pipeline: load the registry, read history,
// reconcile, render the ledger, mailmap and release snapshot, then write
// every changed artifact through one staged transaction with the registry
// committed last. A failure before the commit leaves every file untouched.
package credits

import (
	"context"

	"github.com/spf13/afero"

	"github.com/agentstation/credits/pkg/errors"
	"github.com/agentstation/credits/pkg/history"
	"github.com/agentstation/credits/pkg/people"
	"github.com/agentstation/credits/pkg/reconciler"
	"github.com/agentstation/credits/pkg/registry"
	"github.com/agentstation/credits/pkg/render"
	"github.com/agentstation/credits/pkg/save"
)

// Generator reconciles history into the registry and writes artifacts.
type Generator struct {
	ws          Workspace
	cfg         Config
	policy      render.SortPolicy
	reader      history.Reader
	reconciler  reconciler.Reconciler
	store       *registry.Store
	saveOptions []save.Option
	hooks       *hooks
}

// New creates a Generator. cfg is validated once here.
func New(ws Workspace, cfg Config, reader history.Reader, opts ...Option) (*Generator, error) {
	if reader == nil {
		return nil, errors.NewConfigError("generator", "a history reader is required", nil)
	}
	if ws.Fs == nil {
		ws.Fs = afero.NewOsFs()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	policy, _ := cfg.SortPolicy()

	g := &Generator{
		ws:     ws,
		cfg:    cfg,
		policy: policy,
		reader: reader,
		store:  registry.New(ws.Fs, ws.Path(cfg.RegistryPath)),
		hooks:  newHooks(),
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, errors.NewConfigError("generator", "applying options", err)
		}
	}

	if g.reconciler == nil {
		r, err := reconciler.New(reconciler.WithMinCommits(cfg.MinCommits))
		if err != nil {
			return nil, errors.NewConfigError("generator", "creating reconciler", err)
		}
		g.reconciler = r
	}
	return g, nil
}

// Config returns the generator configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// Workspace returns the generator workspace.
func (g *Generator) Workspace() Workspace {
	return g.ws
}

// Registry loads the registry as currently stored.
func (g *Generator) Registry(ctx context.Context) (*people.Registry, error) {
	return g.store.Load(g.context(ctx))
}

// Ledger renders the ledger for the stored registry without reading
// history or writing anything.
func (g *Generator) Ledger(ctx context.Context) (string, error) {
	reg, err := g.Registry(ctx)
	if err != nil {
		return "", err
	}
	return render.Ledger(reg.List(), g.policy, g.cfg.HeaderTemplate, g.cfg.ItemFormat)
}

// Mailmap renders the mailmap for the stored registry.
func (g *Generator) Mailmap(ctx context.Context) (string, error) {
	reg, err := g.Registry(ctx)
	if err != nil {
		return "", err
	}
	return render.Mailmap(reg.List()), nil
}
