// Package application provides the application interface for credits commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            gen, err := app.Generator(app.CreditsConfig())
//	            if err != nil {
//	                return err
//	            }
//	            _, err = gen.Update(cmd.Context())
//	            return err
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    GeneratorFunc: func(cfg credits.Config) (*credits.Generator, error) {
//	        return credits.New(ws, cfg, &history.Static{...})
//	    },
//	}
//	cmd := NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/credits"
)

// Application provides the application interface that commands need.
// The App struct from cmd/credits/app implements this interface.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// CreditsConfig returns the generator configuration after config
	// files and environment variables. Commands layer their flags on top.
	CreditsConfig() credits.Config

	// Generator creates a generator for cfg in the application workspace.
	Generator(cfg credits.Config) (*credits.Generator, error)

	// Root returns the repository root.
	Root() string

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, wide).
	OutputFormat() string

	// NoColor reports whether colored output is disabled.
	NoColor() bool

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
