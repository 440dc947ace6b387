package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/credits/pkg/errors"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name     string
		template string
		version  string
		want     string
		wantErr  bool
	}{
		{name: "version", template: "docs/releases/{version}/contributors.yaml", version: "1.4.2", want: "docs/releases/1.4.2/contributors.yaml"},
		{name: "v prefix kept", template: "releases/{version}.json", version: "v2.0.0", want: "releases/v2.0.0.json"},
		{name: "major", template: "v{major}/contributors.yaml", version: "3.1.0", want: "v3/contributors.yaml"},
		{name: "major minor", template: "docs/{major_minor}/contributors.yaml", version: "v1.10.7", want: "docs/1.10/contributors.yaml"},
		{name: "prerelease", template: "{version}", version: "1.0.0-rc.1", want: "1.0.0-rc.1"},
		{name: "no placeholders", template: "contributors.yaml", version: "", want: "contributors.yaml"},
		{name: "no placeholders ignores bad version", template: "contributors.yaml", version: "junk", want: "contributors.yaml"},
		{name: "missing version", template: "{version}/c.yaml", version: "", wantErr: true},
		{name: "invalid version", template: "{version}/c.yaml", version: "one.two", wantErr: true},
		{name: "unknown placeholder", template: "{release}/c.yaml", version: "1.0.0", wantErr: true},
		{name: "unbalanced brace", template: "{version/c.yaml", version: "1.0.0", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePath(tt.template, tt.version)
			if tt.wantErr {
				assert.True(t, errors.IsValidationError(err), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFields(t *testing.T) {
	fields, err := Fields(" v1.2.3 ")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"version":     "v1.2.3",
		"major":       "1",
		"major_minor": "1.2",
	}, fields)
}

func TestHasPlaceholders(t *testing.T) {
	has, err := HasPlaceholders("a/{version}/b")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = HasPlaceholders("a/b")
	require.NoError(t, err)
	assert.False(t, has)
}
