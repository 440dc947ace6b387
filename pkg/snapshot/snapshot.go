// Package snapshot produces the per-release contributor list: the primary
// emails of everyone who contributed after a reference point.
package snapshot

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/goccy/go-yaml"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/agentstation/credits/pkg/errors"
	"github.com/agentstation/credits/pkg/people"
	"github.com/agentstation/credits/pkg/save"
)

// Select returns the primary email of every person owning at least one
// email in since. The result is sorted and unique.
func Select(persons []people.Person, since []string) []string {
	active := make(map[string]bool, len(since))
	for _, email := range since {
		if key := people.EmailKey(email); key != "" {
			active[key] = true
		}
	}

	seen := make(map[string]bool)
	ids := make([]string, 0)
	for i := range persons {
		for _, email := range persons[i].Emails() {
			if !active[people.EmailKey(email)] {
				continue
			}
			if primary := persons[i].Email; !seen[primary] {
				seen[primary] = true
				ids = append(ids, primary)
			}
			break
		}
	}
	sort.Strings(ids)
	return ids
}

// document is the TOML shape; TOML has no top-level arrays.
type document struct {
	Contributors []string `toml:"contributors"`
}

// Encode serialises ids in format. An empty list still encodes as an
// empty sequence.
func Encode(ids []string, format save.Format) ([]byte, error) {
	if ids == nil {
		ids = []string{}
	}

	switch format {
	case save.FormatYAML:
		if len(ids) == 0 {
			return []byte("[]\n"), nil
		}
		data, err := yaml.MarshalWithOptions(ids, yaml.IndentSequence(false))
		if err != nil {
			return nil, errors.WrapParse("yaml", "", err)
		}
		return data, nil

	case save.FormatJSON:
		data, err := json.MarshalIndent(ids, "", "  ")
		if err != nil {
			return nil, errors.WrapParse("json", "", err)
		}
		return append(data, '\n'), nil

	case save.FormatTOML:
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.SetArraysMultiline(true)
		if err := enc.Encode(document{Contributors: ids}); err != nil {
			return nil, errors.WrapParse("toml", "", err)
		}
		return buf.Bytes(), nil
	}
	return nil, errors.NewValidationError("format", format.String(), "unsupported snapshot format")
}

// Decode parses a snapshot written by Encode.
func Decode(data []byte, format save.Format) ([]string, error) {
	var ids []string
	switch format {
	case save.FormatYAML:
		if err := yaml.Unmarshal(data, &ids); err != nil {
			return nil, errors.WrapParse("yaml", "", err)
		}
	case save.FormatJSON:
		if err := json.Unmarshal(data, &ids); err != nil {
			return nil, errors.WrapParse("json", "", err)
		}
	case save.FormatTOML:
		var doc document
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, errors.WrapParse("toml", "", err)
		}
		ids = doc.Contributors
	default:
		return nil, errors.NewValidationError("format", format.String(), "unsupported snapshot format")
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
