// Package list provides the list command, which prints the registry.
package list

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/credits/cmd/application"
	"github.com/agentstation/credits/internal/cmd/output"
	"github.com/agentstation/credits/pkg/render"
)

// NewCommand creates the list command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var sortFlag string

	cmd := &cobra.Command{
		Use:     "list",
		GroupID: "core",
		Short:   "List persons in the identity registry",
		Long: `List prints the stored registry without reading history or writing
anything. Use --format to choose table, wide, json or yaml output.`,
		Example: `  credits list
  credits list --sort alphabetical
  credits list -o wide
  credits list -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}
			if format == "" {
				format = output.DetectFormat("")
			}
			cfg := app.CreditsConfig()
			if cmd.Flags().Changed("sort") {
				cfg.Sort = sortFlag
			}
			policy, err := render.ParseSortPolicy(cfg.Sort)
			if err != nil {
				return err
			}

			gen, err := app.Generator(cfg)
			if err != nil {
				return err
			}
			reg, err := gen.Registry(cmd.Context())
			if err != nil {
				return err
			}
			persons, err := render.Sort(reg.List(), policy)
			if err != nil {
				return err
			}
			return output.FormatPersons(cmd.OutOrStdout(), persons, format)
		},
	}

	cmd.Flags().StringVarP(&sortFlag, "sort", "s", app.CreditsConfig().Sort, "order: num_commits, first_commit, alphabetical")
	return cmd
}
