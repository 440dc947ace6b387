package render

import (
	"sort"
	"strings"

	"github.com/agentstation/credits/pkg/people"
)

// MailmapHeader opens every generated mailmap.
const MailmapHeader = `# This file maps commit identities to canonical names and emails.
# It is generated from the identity registry; do not edit by hand.
`

// Mailmap renders git mailmap lines for every alias and alternate email.
// Aliases map to the canonical name and primary email:
//
//	Name <primary> Alias <primary>
//
// Alternate emails map to the canonical identity:
//
//	Name <primary> <alternate>
//
// Lines are unique and byte-sorted so reruns produce identical output.
func Mailmap(persons []people.Person) string {
	seen := make(map[string]bool)
	var lines []string
	add := func(line string) {
		if !seen[line] {
			seen[line] = true
			lines = append(lines, line)
		}
	}

	for _, p := range persons {
		canonical := p.Name + " <" + p.Email + ">"
		for _, alias := range p.Aliases {
			if alias = strings.TrimSpace(alias); alias != "" && alias != p.Name {
				add(canonical + " " + alias + " <" + p.Email + ">")
			}
		}
		for _, alt := range p.AlternateEmails {
			if alt = strings.TrimSpace(alt); alt != "" && people.EmailKey(alt) != people.EmailKey(p.Email) {
				add(canonical + " <" + alt + ">")
			}
		}
	}
	sort.Strings(lines)

	var b strings.Builder
	b.WriteString(MailmapHeader)
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
