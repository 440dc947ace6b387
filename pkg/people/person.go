// Package people defines the canonical contributor identity record and the
// ordered registry that holds them.
package people

import (
	"slices"
	"strconv"
	"strings"

	"github.com/agentstation/credits/pkg/errors"
)

// Person is a canonical contributor identity.
type Person struct {
	Name            string   `yaml:"name" json:"name"`
	Email           string   `yaml:"email" json:"email"`
	GitHub          string   `yaml:"github,omitempty" json:"github,omitempty"`
	Aliases         []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	AlternateEmails []string `yaml:"alternate_emails,omitempty" json:"alternate_emails,omitempty"`

	// Autogenerated by reconciliation.
	NumCommits  int  `yaml:"num_commits" json:"num_commits"`
	FirstCommit Date `yaml:"first_commit,omitempty" json:"first_commit,omitempty"`
}

// Emails returns the primary email followed by the alternates.
func (p *Person) Emails() []string {
	emails := make([]string, 0, 1+len(p.AlternateEmails))
	emails = append(emails, p.Email)
	return append(emails, p.AlternateEmails...)
}

// Owns reports whether email is the primary or an alternate of p.
func (p *Person) Owns(email string) bool {
	key := EmailKey(email)
	for _, e := range p.Emails() {
		if EmailKey(e) == key {
			return true
		}
	}
	return false
}

// HasAlias reports whether name is one of p's aliases.
func (p *Person) HasAlias(name string) bool {
	key := NameKey(name)
	for _, a := range p.Aliases {
		if NameKey(a) == key {
			return true
		}
	}
	return false
}

// Validate checks the required fields.
func (p *Person) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.NewValidationError("name", p.Email, "cannot be empty")
	}
	if strings.TrimSpace(p.Email) == "" {
		return errors.NewValidationError("email", p.Name, "cannot be empty")
	}
	if p.NumCommits < 0 {
		return errors.NewValidationError("num_commits", p.NumCommits, "cannot be negative")
	}
	return nil
}

// Fields returns the values available to ledger item formats.
func (p *Person) Fields() map[string]string {
	return map[string]string{
		"name":             p.Name,
		"email":            p.Email,
		"github":           p.GitHub,
		"aliases":          strings.Join(p.Aliases, ", "),
		"alternate_emails": strings.Join(p.AlternateEmails, ", "),
		"num_commits":      strconv.Itoa(p.NumCommits),
		"first_commit":     p.FirstCommit.String(),
	}
}

// FieldNames lists the keys returned by Fields.
func FieldNames() []string {
	return []string{"name", "email", "github", "aliases", "alternate_emails", "num_commits", "first_commit"}
}

// Clone returns a deep copy of p.
func (p Person) Clone() Person {
	p.Aliases = slices.Clone(p.Aliases)
	p.AlternateEmails = slices.Clone(p.AlternateEmails)
	return p
}
