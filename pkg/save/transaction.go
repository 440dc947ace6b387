package save

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/agentstation/credits/pkg/constants"
	"github.com/agentstation/credits/pkg/errors"
)

// staged is a fully written temp file waiting to replace its target.
type staged struct {
	temp   string
	target string
}

// Transaction stages file contents next to their targets and moves them
// into place on Commit. Nothing visible changes until Commit.
type Transaction struct {
	fs      afero.Fs
	options Options
	staged  []staged
}

// NewTransaction starts a transaction on fs.
func NewTransaction(fs afero.Fs, opts ...Option) *Transaction {
	return &Transaction{
		fs:      fs,
		options: Defaults().Apply(opts...),
	}
}

// Stage writes data to a temp file in the target's directory. Targets are
// committed in the order they were staged.
func (t *Transaction) Stage(target string, data []byte) error {
	dir := filepath.Dir(target)
	if err := t.fs.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	f, err := afero.TempFile(t.fs, dir, t.options.pattern)
	if err != nil {
		return errors.WrapIO("write", target, err)
	}
	temp := f.Name()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = t.fs.Remove(temp)
		return errors.WrapIO("write", target, err)
	}
	if err := f.Close(); err != nil {
		_ = t.fs.Remove(temp)
		return errors.WrapIO("write", target, err)
	}
	if err := t.fs.Chmod(temp, os.FileMode(t.options.perm)); err != nil {
		_ = t.fs.Remove(temp)
		return errors.WrapIO("chmod", target, err)
	}

	t.staged = append(t.staged, staged{temp: temp, target: target})
	return nil
}

// Targets returns the staged target paths in commit order.
func (t *Transaction) Targets() []string {
	out := make([]string, len(t.staged))
	for i, s := range t.staged {
		out[i] = s.target
	}
	return out
}

// Commit renames every staged file over its target. On a rename failure
// the remaining temp files are removed and the error is returned.
func (t *Transaction) Commit() error {
	for i, s := range t.staged {
		if err := t.fs.Rename(s.temp, s.target); err != nil {
			t.staged = t.staged[i:]
			t.Rollback()
			return errors.WrapIO("rename", s.target, err)
		}
	}
	t.staged = nil
	return nil
}

// Rollback removes all staged temp files. Targets are left untouched.
func (t *Transaction) Rollback() {
	for _, s := range t.staged {
		_ = t.fs.Remove(s.temp)
	}
	t.staged = nil
}

// WriteFile stages and commits a single file.
func WriteFile(fs afero.Fs, target string, data []byte, opts ...Option) error {
	tx := NewTransaction(fs, opts...)
	if err := tx.Stage(target, data); err != nil {
		return err
	}
	return tx.Commit()
}
