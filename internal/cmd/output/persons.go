package output

import (
	"io"
	"strconv"
	"strings"

	"github.com/agentstation/credits/pkg/people"
)

// PersonsToTableData converts persons to table rows. Wide adds the
// curated identity columns.
func PersonsToTableData(persons []people.Person, wide bool) Data {
	headers := []string{"Name", "Email", "Commits", "First Commit"}
	align := []Align{AlignLeft, AlignLeft, AlignRight, AlignLeft}
	if wide {
		headers = append(headers, "GitHub", "Aliases", "Alternate Emails")
		align = append(align, AlignLeft, AlignLeft, AlignLeft)
	}

	rows := make([][]string, 0, len(persons))
	for _, p := range persons {
		first := p.FirstCommit.String()
		if first == "" {
			first = "-"
		}
		row := []string{p.Name, p.Email, strconv.Itoa(p.NumCommits), first}
		if wide {
			row = append(row,
				dash(p.GitHub),
				dash(strings.Join(p.Aliases, ", ")),
				dash(strings.Join(p.AlternateEmails, ", ")),
			)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// FormatPersons writes persons in format.
func FormatPersons(w io.Writer, persons []people.Person, format Format) error {
	formatter := NewFormatter(format)

	var data any
	switch format {
	case FormatTable, FormatWide, "":
		data = PersonsToTableData(persons, format == FormatWide)
	default:
		if persons == nil {
			persons = []people.Person{}
		}
		data = persons
	}
	return formatter.Format(w, data)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
