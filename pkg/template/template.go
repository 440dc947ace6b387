// Package template substitutes named {placeholder} fields into format
// strings. Literal braces are written as {{ and }}. Unknown placeholders
// are an error rather than being left in the output.
package template

import (
	"strings"

	"github.com/agentstation/credits/pkg/errors"
)

// token is one piece of a parsed format: literal text or a placeholder.
type token struct {
	text        string
	placeholder bool
}

func parse(format string) ([]token, error) {
	var (
		tokens []token
		lit    strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, token{text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(format); i++ {
		c := format[i]
		switch c {
		case '{':
			if i+1 < len(format) && format[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(format[i+1:], '}')
			if end < 0 {
				return nil, errors.NewValidationError("format", format, "unclosed '{'")
			}
			name := format[i+1 : i+1+end]
			if name == "" || strings.ContainsAny(name, "{ \t\n") {
				return nil, errors.NewValidationError("format", format, "invalid placeholder {"+name+"}")
			}
			flush()
			tokens = append(tokens, token{text: name, placeholder: true})
			i += end + 1
		case '}':
			if i+1 < len(format) && format[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			return nil, errors.NewValidationError("format", format, "single '}' must be written as '}}'")
		default:
			lit.WriteByte(c)
		}
	}
	flush()
	return tokens, nil
}

// Substitute replaces every {name} in format with fields[name].
func Substitute(format string, fields map[string]string) (string, error) {
	tokens, err := parse(format)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(format))
	for _, t := range tokens {
		if !t.placeholder {
			b.WriteString(t.text)
			continue
		}
		v, ok := fields[t.text]
		if !ok {
			return "", errors.NewValidationError("format", t.text, "unknown placeholder {"+t.text+"}")
		}
		b.WriteString(v)
	}
	return b.String(), nil
}

// Placeholders returns the placeholder names used by format, in order of
// first appearance.
func Placeholders(format string) ([]string, error) {
	tokens, err := parse(format)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var names []string
	for _, t := range tokens {
		if t.placeholder && !seen[t.text] {
			seen[t.text] = true
			names = append(names, t.text)
		}
	}
	return names, nil
}

// Check verifies that format only references names in allowed.
func Check(format string, allowed ...string) error {
	names, err := Placeholders(format)
	if err != nil {
		return err
	}
	ok := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		ok[a] = true
	}
	for _, n := range names {
		if !ok[n] {
			return errors.NewValidationError("format", n, "unknown placeholder {"+n+"}")
		}
	}
	return nil
}
