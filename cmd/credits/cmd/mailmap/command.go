// Package mailmap provides the mailmap command, which prints the mailmap
// derived from the stored registry.
package mailmap

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/credits/cmd/application"
)

// NewCommand creates the mailmap command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "mailmap",
		GroupID: "core",
		Short:   "Print the mailmap for the stored registry",
		Long: `Mailmap prints the git mailmap that update would write, built from the
stored registry's aliases and alternate emails.`,
		Example: `  credits mailmap > .mailmap
  git -c mailmap.file=<(credits mailmap) shortlog -sne`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen, err := app.Generator(app.CreditsConfig())
			if err != nil {
				return err
			}
			text, err := gen.Mailmap(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}
}
