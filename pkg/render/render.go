// Package render turns a reconciled registry into text artifacts: the
// human-readable ledger and the git mailmap. Rendering is pure; output
// depends only on the persons, the sort policy and the templates.
package render

import (
	"strings"
	"unicode"

	"github.com/agentstation/credits/pkg/errors"
	"github.com/agentstation/credits/pkg/people"
	"github.com/agentstation/credits/pkg/template"
)

// Artifact is rendered content bound for a path.
type Artifact struct {
	Path    string
	Content []byte
}

// Header placeholders.
const (
	AuthorsField     = "authors"
	SortingTextField = "sorting_text"
)

// CheckHeader validates a ledger header template. It must reference
// {authors} and may reference {sorting_text}.
func CheckHeader(header string) error {
	if err := template.Check(header, AuthorsField, SortingTextField); err != nil {
		return err
	}
	names, _ := template.Placeholders(header)
	for _, n := range names {
		if n == AuthorsField {
			return nil
		}
	}
	return errors.NewValidationError("header", header, "must contain {authors}")
}

// CheckItem validates a per-person item format.
func CheckItem(item string) error {
	return template.Check(item, people.FieldNames()...)
}

// Ledger renders persons, sorted by policy, into header. Each person is
// formatted through item and the results are concatenated into {authors}.
// The output ends with exactly one newline terminating the last line:
// trailing whitespace and blank lines in the rendered header are dropped,
// so the file never ends in an empty line.
func Ledger(persons []people.Person, policy SortPolicy, header, item string) (string, error) {
	sorted, err := Sort(persons, policy)
	if err != nil {
		return "", err
	}
	if err := CheckItem(item); err != nil {
		return "", err
	}

	var authors strings.Builder
	for i := range sorted {
		line, err := template.Substitute(item, sorted[i].Fields())
		if err != nil {
			return "", err
		}
		authors.WriteString(line)
	}

	out, err := template.Substitute(header, map[string]string{
		AuthorsField:     authors.String(),
		SortingTextField: policy.Description(),
	})
	if err != nil {
		return "", err
	}
	return strings.TrimRightFunc(out, unicode.IsSpace) + "\n", nil
}
