// Package completion generates and installs shell completion scripts.
package completion

import (
	"bytes"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/agentstation/credits/internal/cmd/constants"
	pkgconstants "github.com/agentstation/credits/pkg/constants"
	"github.com/agentstation/credits/pkg/errors"
)

// Generate writes the completion script for shell to w.
func Generate(root *cobra.Command, w io.Writer, shell string) error {
	switch shell {
	case constants.ShellBash:
		return root.GenBashCompletionV2(w, true)
	case constants.ShellZsh:
		return root.GenZshCompletion(w)
	case constants.ShellFish:
		return root.GenFishCompletion(w, true)
	case constants.ShellPowerShell:
		return root.GenPowerShellCompletionWithDesc(w)
	}
	return unsupported(shell)
}

// Path returns where a user-level completion script for shell lives
// under home.
func Path(home, name, shell string) (string, error) {
	switch shell {
	case constants.ShellBash:
		return filepath.Join(home, ".local", "share", "bash-completion", "completions", name), nil
	case constants.ShellZsh:
		return filepath.Join(home, ".zsh", "completions", "_"+name), nil
	case constants.ShellFish:
		return filepath.Join(home, ".config", "fish", "completions", name+".fish"), nil
	}
	return "", unsupported(shell)
}

// Install writes the completion script for shell into home and returns
// the path written.
func Install(fs afero.Fs, root *cobra.Command, home, shell string) (string, error) {
	target, err := Path(home, root.Name(), shell)
	if err != nil {
		return "", err
	}

	var script bytes.Buffer
	if err := Generate(root, &script, shell); err != nil {
		return "", err
	}

	if err := fs.MkdirAll(filepath.Dir(target), pkgconstants.DirPermissions); err != nil {
		return "", errors.WrapIO("mkdir", filepath.Dir(target), err)
	}
	if err := afero.WriteFile(fs, target, script.Bytes(), pkgconstants.FilePermissions); err != nil {
		return "", errors.WrapIO("write", target, err)
	}
	return target, nil
}

// Uninstall removes the completion script Install wrote. It reports
// whether a file was removed.
func Uninstall(fs afero.Fs, name, home, shell string) (string, bool, error) {
	target, err := Path(home, name, shell)
	if err != nil {
		return "", false, err
	}
	ok, err := afero.Exists(fs, target)
	if err != nil || !ok {
		return target, false, errors.WrapIO("stat", target, err)
	}
	if err := fs.Remove(target); err != nil {
		return target, false, errors.WrapIO("remove", target, err)
	}
	return target, true, nil
}

func unsupported(shell string) error {
	return errors.NewValidationError("shell", shell, "must be one of: bash, zsh, fish, powershell")
}
