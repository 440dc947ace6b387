package completion

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/credits/pkg/errors"
)

func rootCommand() *cobra.Command {
	root := &cobra.Command{Use: "credits"}
	root.AddCommand(&cobra.Command{Use: "update", Run: func(*cobra.Command, []string) {}})
	return root
}

func TestGenerate(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, Generate(rootCommand(), &out, shell))
			assert.Contains(t, out.String(), "credits")
		})
	}

	err := Generate(rootCommand(), &bytes.Buffer{}, "tcsh")
	assert.True(t, errors.IsValidationError(err))
}

func TestPath(t *testing.T) {
	tests := []struct {
		shell string
		want  string
	}{
		{"bash", "/home/u/.local/share/bash-completion/completions/credits"},
		{"zsh", "/home/u/.zsh/completions/_credits"},
		{"fish", "/home/u/.config/fish/completions/credits.fish"},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			got, err := Path("/home/u", "credits", tt.shell)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Path("/home/u", "credits", "powershell")
	assert.Error(t, err)
}

func TestInstallUninstall(t *testing.T) {
	fs := afero.NewMemMapFs()

	path, err := Install(fs, rootCommand(), "/home/u", "zsh")
	require.NoError(t, err)
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "#compdef credits")

	_, removed, err := Uninstall(fs, "credits", "/home/u", "zsh")
	require.NoError(t, err)
	assert.True(t, removed)

	_, removed, err = Uninstall(fs, "credits", "/home/u", "zsh")
	require.NoError(t, err)
	assert.False(t, removed)
}
