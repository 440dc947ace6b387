// Package release builds version-aware artifact paths such as
// docs/releases/{version}/contributors.yaml.
package release

import (
	"strings"

	"golang.org/x/mod/semver"

	"github.com/agentstation/credits/pkg/errors"
	"github.com/agentstation/credits/pkg/template"
)

// Path placeholders.
const (
	VersionField    = "version"
	MajorField      = "major"
	MajorMinorField = "major_minor"
)

// Fields returns the placeholder values for version. Both "1.2.3" and
// "v1.2.3" are accepted; {version} keeps the form it was given.
func Fields(version string) (map[string]string, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		return nil, errors.NewValidationError("version", version, "a release version is required")
	}
	v := version
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return nil, errors.NewValidationError("version", version, "not a semantic version")
	}
	return map[string]string{
		VersionField:    version,
		MajorField:      strings.TrimPrefix(semver.Major(v), "v"),
		MajorMinorField: strings.TrimPrefix(semver.MajorMinor(v), "v"),
	}, nil
}

// HasPlaceholders reports whether pathTemplate needs a version.
func HasPlaceholders(pathTemplate string) (bool, error) {
	names, err := template.Placeholders(pathTemplate)
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

// Check validates pathTemplate without resolving it.
func Check(pathTemplate string) error {
	return template.Check(pathTemplate, VersionField, MajorField, MajorMinorField)
}

// ResolvePath substitutes version into pathTemplate. A template without
// placeholders is returned as is and needs no version.
func ResolvePath(pathTemplate, version string) (string, error) {
	if err := Check(pathTemplate); err != nil {
		return "", err
	}
	needsVersion, err := HasPlaceholders(pathTemplate)
	if err != nil {
		return "", err
	}
	if !needsVersion {
		return template.Substitute(pathTemplate, nil)
	}

	fields, err := Fields(version)
	if err != nil {
		return "", err
	}
	return template.Substitute(pathTemplate, fields)
}
