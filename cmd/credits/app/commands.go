package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/credits/cmd/credits/cmd/completion"
	"github.com/agentstation/credits/cmd/credits/cmd/generate"
	"github.com/agentstation/credits/cmd/credits/cmd/list"
	"github.com/agentstation/credits/cmd/credits/cmd/mailmap"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(generate.NewInitCommand(a))
	rootCmd.AddCommand(generate.NewUpdateCommand(a))
	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(mailmap.NewCommand(a))
	rootCmd.AddCommand(completion.NewCommand(a))
	rootCmd.AddCommand(a.newVersionCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("credits %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
