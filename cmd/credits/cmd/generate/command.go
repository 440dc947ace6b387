// Package generate provides the init and update commands, which run the
// full generation pipeline.
package generate

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/credits/cmd/application"
)

// NewUpdateCommand creates the update command using app context.
func NewUpdateCommand(app application.Application) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "update",
		GroupID: "core",
		Short:   "Reconcile git history into the registry and regenerate artifacts",
		Long: `Update reads the full git history, merges it into the identity registry
and rewrites every generated file whose content changed:

• the contributor ledger (AUTHORS.md by default)
• the mailmap (.mailmap), unless disabled
• the release snapshot, when --since is given
• the registry itself, always written last

Commit counts are recomputed from history on every run. First-contribution
dates never move later. If any identity is ambiguous nothing is written.`,
		Example: `  credits update                               # Regenerate everything
  credits update --dry-run                     # Preview changes
  credits update --sort first_commit           # Order by first contribution
  credits update --since v1.2.0 --release 1.3.0  # Write the 1.3.0 snapshot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen, err := app.Generator(flags.apply(cmd.Flags(), app.CreditsConfig()))
			if err != nil {
				return err
			}
			result, err := gen.Update(cmd.Context())
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), app, "Updated", result)
			return nil
		},
	}

	flags = addFlags(cmd, app.CreditsConfig())
	return cmd
}

// NewInitCommand creates the init command using app context.
func NewInitCommand(app application.Application) *cobra.Command {
	var (
		flags *Flags
		force bool
	)

	cmd := &cobra.Command{
		Use:     "init",
		GroupID: "core",
		Short:   "Create the registry and artifacts from git history",
		Long: `Init builds a fresh identity registry from git history and writes the
ledger and mailmap. It refuses to overwrite existing generated files unless
--force is given, in which case the stored registry is ignored.`,
		Example: `  credits init           # First run in a repository
  credits init --force   # Start over from history`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen, err := app.Generator(flags.apply(cmd.Flags(), app.CreditsConfig()))
			if err != nil {
				return err
			}
			result, err := gen.Init(cmd.Context(), force)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), app, "Initialized", result)
			return nil
		},
	}

	flags = addFlags(cmd, app.CreditsConfig())
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing generated files")
	return cmd
}
