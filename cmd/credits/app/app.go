// Package app provides the application context and dependency management
// for the credits CLI. It centralizes configuration, logging and the
// history reader so commands only see the application.Application
// interface.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/credits"
	"github.com/agentstation/credits/cmd/application"
	"github.com/agentstation/credits/internal/gitlog"
	"github.com/agentstation/credits/pkg/history"
)

// App represents the credits application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
	fs     afero.Fs

	// History reader (lazy-initialized, singleton)
	mu     sync.RWMutex
	reader history.Reader
}

// New creates a new App instance with the given version information.
// Configuration is loaded from the environment and the default config
// file, then customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		fs:      afero.NewOsFs(),
	}

	config, err := LoadConfig("", "")
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// CreditsConfig returns the generator configuration.
func (a *App) CreditsConfig() credits.Config {
	return a.config.Credits
}

// Root returns the repository root.
func (a *App) Root() string {
	return a.config.Root
}

// OutputFormat returns the requested output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// NoColor reports whether colored output is disabled.
func (a *App) NoColor() bool {
	return a.config.NoColor
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Reader returns the git history reader for the root, opening the
// repository on first use. Safe for concurrent use.
func (a *App) Reader() (history.Reader, error) {
	a.mu.RLock()
	if a.reader != nil {
		r := a.reader
		a.mu.RUnlock()
		return r, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.reader != nil {
		return a.reader, nil
	}

	r, err := gitlog.Open(a.config.Root)
	if err != nil {
		return nil, err
	}
	a.reader = r
	return r, nil
}

// Generator creates a generator for cfg rooted at the repository root.
// The repository is opened when history is first needed.
func (a *App) Generator(cfg credits.Config) (*credits.Generator, error) {
	ws := credits.Workspace{
		Root:   a.config.Root,
		Fs:     a.fs,
		Logger: a.logger,
	}
	return credits.New(ws, cfg, lazyReader{app: a})
}

// Shutdown releases application resources. The git reader holds no open
// handles, so there is nothing to stop yet.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	a.reader = nil
	a.mu.Unlock()
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithReader sets the history reader (useful for testing).
func WithReader(r history.Reader) Option {
	return func(a *App) error {
		a.reader = r
		return nil
	}
}

// WithFs sets the filesystem artifacts are read from and written to.
func WithFs(fs afero.Fs) Option {
	return func(a *App) error {
		a.fs = fs
		return nil
	}
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)
