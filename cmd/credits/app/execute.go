package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/credits/internal/cmd/emoji"
	"github.com/agentstation/credits/pkg/errors"
)

// Execute runs the credits CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "credits",
		Short:   "Contributor ledger generator",
		Version: a.version,
		Long: `Credits keeps a project's list of contributors in sync with its git
history. It maintains an identity registry that maps every email a person
has committed with to one canonical entry, and renders that registry into
a human-readable ledger, a git mailmap and per-release contributor
snapshots.

Generated files are only written when a run succeeds completely. If two
people claim the same email the run stops and nothing changes on disk.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is .credits.yaml in the root)")
	flags.StringP("root", "C", "", "repository root (default is the working directory)")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("format", "o", "", "output format: table, json, yaml, wide")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("credits {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs. It reloads the config
// when --root or --config point somewhere else, then applies the global
// flags and rebuilds the logger.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	root := mustGetString(cmd, "root")
	configFile := mustGetString(cmd, "config")
	if root != "" || configFile != "" {
		config, err := LoadConfig(root, configFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
		mustGetString(cmd, "format"),
		mustGetString(cmd, "log-level"),
	)

	logger := NewLogger(a.config)
	a.logger = &logger

	a.logger.Debug().
		Str("root", a.config.Root).
		Str("config_file", a.config.ConfigFile).
		Msg("Configuration loaded")

	return nil
}

// Exit statuses reported by ExitOnError.
const (
	exitFailure  = 1
	exitInvalid  = 2
	exitCanceled = 130
)

// ExitOnError is a helper that prints an error and exits. Invalid input
// exits with status 2, an interrupted run with 130, anything else with 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString(emoji.Error + " " + err.Error() + "\n")
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case errors.IsCanceled(err):
		return exitCanceled
	case errors.IsValidationError(err):
		return exitInvalid
	default:
		return exitFailure
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
