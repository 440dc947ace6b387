// Package completion provides the completion command.
package completion

import (
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/agentstation/credits/cmd/application"
	"github.com/agentstation/credits/internal/cmd/completion"
	"github.com/agentstation/credits/internal/cmd/constants"
	"github.com/agentstation/credits/internal/cmd/output"
)

// NewCommand creates the completion command. Scripts are written to
// stdout unless --install or --uninstall is given.
func NewCommand(app application.Application) *cobra.Command {
	var install, uninstall bool

	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `To load completions:

Bash:
  $ source <(credits completion bash)

Zsh:
  $ credits completion zsh > "${fpath[1]}/_credits"

Fish:
  $ credits completion fish | source

Use --install to write the script to the per-user completion directory
(bash, zsh and fish), and --uninstall to remove it again.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             constants.Shells(),
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := args[0]
			if !install && !uninstall {
				return completion.Generate(cmd.Root(), cmd.OutOrStdout(), shell)
			}

			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			fs := afero.NewOsFs()
			p := output.NewPrinter(cmd.OutOrStdout(), app.NoColor())

			if uninstall {
				path, removed, err := completion.Uninstall(fs, cmd.Root().Name(), home, shell)
				if err != nil {
					return err
				}
				if !removed {
					p.Info("No %s completions found at %s", shell, path)
					return nil
				}
				p.Success("Removed %s completions from %s", shell, path)
				return nil
			}

			path, err := completion.Install(fs, cmd.Root(), home, shell)
			if err != nil {
				return err
			}
			p.Success("%s completions installed to %s", shell, path)
			p.Detail("start a new shell session to enable them")
			return nil
		},
	}

	cmd.Flags().BoolVar(&install, "install", false, "install the script for the current user")
	cmd.Flags().BoolVar(&uninstall, "uninstall", false, "remove an installed script")
	cmd.MarkFlagsMutuallyExclusive("install", "uninstall")
	return cmd
}
