// Package cmdtest provides fixtures for command tests: an in-memory
// repository served through application.Mock.
package cmdtest

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/credits"
	"github.com/agentstation/credits/internal/cmd/application"
	"github.com/agentstation/credits/pkg/history"
	"github.com/agentstation/credits/pkg/logging"
	"github.com/agentstation/credits/pkg/people"
)

// Root is the repository root used by the fixtures.
const Root = "/repo"

// Reader returns a history with two contributors. Bob has more commits,
// Alice contributed first.
func Reader() *history.Static {
	return &history.Static{
		Observations: history.Observations{
			"alice@x.com": {Name: "Alice", Commits: 3, FirstCommit: people.MustParseDate("2021-05-01")},
			"bob@z.com":   {Name: "Bob", Commits: 5, FirstCommit: people.MustParseDate("2022-02-02")},
		},
		Since: map[string][]string{"v1.0.0": {"bob@z.com"}},
	}
}

// Mock returns an application whose generators run on fs with reader.
func Mock(fs afero.Fs, reader history.Reader) *application.Mock {
	return &application.Mock{
		RootFunc: func() string { return Root },
		GeneratorFunc: func(cfg credits.Config) (*credits.Generator, error) {
			ws := credits.Workspace{Root: Root, Fs: fs, Logger: logging.NewNopLogger()}
			return credits.New(ws, cfg, reader)
		},
	}
}

// Run executes cmd with args and returns what it printed.
func Run(cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// Read returns the content of rel under Root.
func Read(t *testing.T, fs afero.Fs, rel string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, filepath.Join(Root, rel))
	require.NoError(t, err)
	return string(data)
}

// Exists reports whether rel exists under Root.
func Exists(t *testing.T, fs afero.Fs, rel string) bool {
	t.Helper()
	ok, err := afero.Exists(fs, filepath.Join(Root, rel))
	require.NoError(t, err)
	return ok
}
