// Package registry loads and saves the identity registry: the hand-curated
// list of people plus the statistics reconciliation derives for them.
//
// The registry is stored as a YAML sequence. A missing file is an empty
// registry; anything that fails to parse is fatal, because the next save
// rewrites the whole file and would drop whatever could not be read.
package registry

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"

	"github.com/agentstation/credits/pkg/errors"
	"github.com/agentstation/credits/pkg/logging"
	"github.com/agentstation/credits/pkg/people"
	"github.com/agentstation/credits/pkg/save"
)

const header = `# Contributor identity registry.
#
# Required: name, email. Optional: github, aliases, alternate_emails.
# num_commits and first_commit are autogenerated on every run.
`

// Store reads and writes a registry file.
type Store struct {
	fs   afero.Fs
	path string
}

// New creates a store for the registry at path on fs.
func New(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Path returns the registry location.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the registry file is present.
func (s *Store) Exists() (bool, error) {
	ok, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return false, errors.WrapIO("stat", s.path, err)
	}
	return ok, nil
}

// Load reads the registry. A missing file yields an empty registry.
func (s *Store) Load(ctx context.Context) (*people.Registry, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			logging.FromContext(ctx).Debug().Str("path", s.path).Msg("Registry not found, starting empty")
			return people.NewRegistry()
		}
		return nil, errors.WrapIO("read", s.path, err)
	}

	reg, err := Decode(data, s.path)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Debug().
		Str("path", s.path).
		Int("persons", reg.Len()).
		Msg("Loaded registry")
	return reg, nil
}

// Save replaces the registry file with reg.
func (s *Store) Save(ctx context.Context, reg *people.Registry) error {
	tx := save.NewTransaction(s.fs)
	if err := s.Stage(tx, reg); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	logging.FromContext(ctx).Debug().Str("path", s.path).Int("persons", reg.Len()).Msg("Saved registry")
	return nil
}

// Stage encodes reg into tx without committing it.
func (s *Store) Stage(tx *save.Transaction, reg *people.Registry) error {
	data, err := Encode(reg)
	if err != nil {
		return err
	}
	return tx.Stage(s.path, data)
}

// Decode parses registry YAML. Empty input is an empty registry. Unknown
// keys are a ParseError so a misspelled field is never dropped on the
// next save.
func Decode(data []byte, path string) (*people.Registry, error) {
	if len(bytes.TrimSpace(stripComments(data))) == 0 {
		return people.NewRegistry()
	}

	var persons []people.Person
	if err := yaml.UnmarshalWithOptions(data, &persons, yaml.Strict()); err != nil {
		return nil, errors.NewParseError("yaml", path, yaml.FormatError(err, false, false), err)
	}

	reg, _ := people.NewRegistry()
	for i, p := range persons {
		if err := reg.Add(p); err != nil {
			var verr *errors.ValidationError
			if errors.As(err, &verr) {
				return nil, &errors.ValidationError{
					Field:   fmt.Sprintf("%s[%d].%s", path, i, verr.Field),
					Value:   verr.Value,
					Message: verr.Message,
				}
			}
			return nil, err
		}
	}
	return reg, nil
}

// Encode renders reg as YAML in insertion order, one blank line between
// entries.
func Encode(reg *people.Registry) ([]byte, error) {
	persons := reg.List()
	if len(persons) == 0 {
		return []byte(header + "[]\n"), nil
	}

	data, err := yaml.MarshalWithOptions(persons,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return nil, errors.WrapParse("yaml", "", err)
	}

	var b strings.Builder
	b.WriteString(header)
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		if strings.HasPrefix(line, "- ") {
			b.WriteString("\n")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}

// stripComments drops full-line comments so a header-only file counts as empty.
func stripComments(data []byte) []byte {
	var out bytes.Buffer
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimSpace(line), []byte("#")) {
			continue
		}
		out.Write(line)
		out.WriteByte('\n')
	}
	return out.Bytes()
}
