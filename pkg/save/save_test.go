package save_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/credits/pkg/save"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want save.Format
	}{
		{"contributors.yaml", save.FormatYAML},
		{"contributors.yml", save.FormatYAML},
		{"contributors.JSON", save.FormatJSON},
		{"contributors.toml", save.FormatTOML},
		{"contributors", save.FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := save.FormatFromPath(tt.path)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
	assert.Equal(t, "unknown", save.Format(42).String())
}

func tempFiles(t *testing.T, fs afero.Fs, dir string) []string {
	t.Helper()
	matches, err := afero.Glob(fs, dir+"/.credits-*.tmp")
	require.NoError(t, err)
	return matches
}

func TestTransactionCommit(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/repo/AUTHORS.md", []byte("old\n"), 0644))

	tx := save.NewTransaction(fs)
	require.NoError(t, tx.Stage("/repo/AUTHORS.md", []byte("new\n")))
	require.NoError(t, tx.Stage("/repo/docs/releases/v1/contributors.yaml", []byte("- a@x.com\n")))
	assert.Equal(t, []string{"/repo/AUTHORS.md", "/repo/docs/releases/v1/contributors.yaml"}, tx.Targets())

	// Nothing visible before commit.
	data, err := afero.ReadFile(fs, "/repo/AUTHORS.md")
	require.NoError(t, err)
	assert.Equal(t, "old\n", string(data))

	require.NoError(t, tx.Commit())

	data, err = afero.ReadFile(fs, "/repo/AUTHORS.md")
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(data))
	assert.Empty(t, tempFiles(t, fs, "/repo"))
}

func TestTransactionRollback(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/repo/AUTHORS.md", []byte("old\n"), 0644))

	tx := save.NewTransaction(fs)
	require.NoError(t, tx.Stage("/repo/AUTHORS.md", []byte("new\n")))
	assert.Len(t, tempFiles(t, fs, "/repo"), 1)

	tx.Rollback()

	data, err := afero.ReadFile(fs, "/repo/AUTHORS.md")
	require.NoError(t, err)
	assert.Equal(t, "old\n", string(data))
	assert.Empty(t, tempFiles(t, fs, "/repo"))
}

func TestStageReadOnly(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	err := save.WriteFile(fs, "/repo/AUTHORS.md", []byte("x"))
	assert.Error(t, err)
}
