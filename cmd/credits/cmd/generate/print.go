package generate

import (
	"io"
	"path/filepath"

	"github.com/agentstation/credits"
	"github.com/agentstation/credits/cmd/application"
	"github.com/agentstation/credits/internal/cmd/emoji"
	"github.com/agentstation/credits/internal/cmd/output"
)

func printResult(w io.Writer, app application.Application, verb string, result *credits.Result) {
	p := output.NewPrinter(w, app.NoColor())

	if result.DryRun {
		p.Info("Dry run: nothing was written")
	}
	p.Success("%s %d persons (%d new, %d updated)",
		verb, result.Registry.Len(), result.Stats.Created, result.Stats.Matched)

	for _, path := range result.Written {
		if result.DryRun {
			p.Detail("would write %s", relative(app.Root(), path))
			continue
		}
		p.Detail("wrote %s", relative(app.Root(), path))
	}
	for _, path := range result.Unchanged {
		p.Detail("%s %s unchanged", emoji.Unchanged, relative(app.Root(), path))
	}
	if result.SnapshotPath != "" {
		p.Info("Release snapshot lists %d contributors", len(result.Snapshot))
	}
	for _, warning := range result.Warnings {
		p.Warning("%s", warning)
	}
}

func relative(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
