package credits

import (
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Workspace is the repository the generator works in. It replaces the
// working directory and environment lookups with explicit values.
type Workspace struct {
	// Root is the repository root. Relative config paths resolve against it.
	Root string

	// Fs is where artifacts and the registry are read and written.
	Fs afero.Fs

	// Logger is used for the run; nil means the context or default logger.
	Logger *zerolog.Logger
}

// NewWorkspace returns a workspace on the OS filesystem.
func NewWorkspace(root string) Workspace {
	return Workspace{Root: root, Fs: afero.NewOsFs()}
}

// Path resolves p against the workspace root.
func (w Workspace) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(w.Root, p)
}
