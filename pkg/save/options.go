// Package save selects artifact encodings and writes generated files
// through staged temp files so a run either replaces every artifact or
// none of them.
package save

import (
	"path/filepath"
	"strings"

	"github.com/agentstation/credits/pkg/constants"
)

// Format is a structured artifact encoding.
type Format int

// Format constants.
const (
	FormatYAML Format = iota
	FormatJSON
	FormatTOML
)

// IsValid checks if the format is valid.
func (f Format) IsValid() bool {
	switch f {
	case FormatYAML, FormatJSON, FormatTOML:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	case FormatTOML:
		return "toml"
	}
	return "unknown"
}

// FormatFromPath picks a format from the file extension. Unknown
// extensions fall back to YAML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

// Options is the configuration for staged writes.
type Options struct {
	pattern string
	perm    uint32
}

// Pattern returns the temp file pattern.
func (o *Options) Pattern() string {
	return o.pattern
}

// Defaults returns the default save options.
func Defaults() *Options {
	return &Options{
		pattern: constants.TempFilePattern,
		perm:    constants.FilePermissions,
	}
}

// Apply applies the given options to the save options.
func (o *Options) Apply(opts ...Option) Options {
	for _, opt := range opts {
		opt(o)
	}
	return *o
}

// Option is a function that configures save options.
type Option func(*Options)

// WithTempPattern sets the pattern used for staged temp file names.
func WithTempPattern(pattern string) Option {
	return func(o *Options) {
		o.pattern = pattern
	}
}

// WithPermissions sets the mode of committed files.
func WithPermissions(perm uint32) Option {
	return func(o *Options) {
		o.perm = perm
	}
}
