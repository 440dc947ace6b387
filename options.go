package credits

import (
	"github.com/agentstation/credits/pkg/reconciler"
	"github.com/agentstation/credits/pkg/save"
)

// Option is a function that configures a Generator
type Option func(*Generator) error

// WithReconciler replaces the default reconciler
func WithReconciler(r reconciler.Reconciler) Option {
	return func(g *Generator) error {
		g.reconciler = r
		return nil
	}
}

// WithSaveOptions configures how artifacts are staged and written
func WithSaveOptions(opts ...save.Option) Option {
	return func(g *Generator) error {
		g.saveOptions = append(g.saveOptions, opts...)
		return nil
	}
}

// WithPersonAddedHook registers a callback for persons created by a run
func WithPersonAddedHook(fn PersonAddedHook) Option {
	return func(g *Generator) error {
		g.hooks.OnPersonAdded(fn)
		return nil
	}
}

// WithPersonUpdatedHook registers a callback for persons changed by a run
func WithPersonUpdatedHook(fn PersonUpdatedHook) Option {
	return func(g *Generator) error {
		g.hooks.OnPersonUpdated(fn)
		return nil
	}
}
