// Package application provides test doubles for the command application interface.
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/credits"
	"github.com/agentstation/credits/cmd/application"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	ConfigFunc       func() credits.Config
	GeneratorFunc    func(cfg credits.Config) (*credits.Generator, error)
	RootFunc         func() string
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// CreditsConfig returns the config from the mock function or the defaults.
func (m *Mock) CreditsConfig() credits.Config {
	if m.ConfigFunc != nil {
		return m.ConfigFunc()
	}
	return credits.DefaultConfig()
}

// Generator returns a generator using the mock function or nil.
func (m *Mock) Generator(cfg credits.Config) (*credits.Generator, error) {
	if m.GeneratorFunc != nil {
		return m.GeneratorFunc(cfg)
	}
	return nil, nil
}

// Root returns the root using the mock function or "/repo".
func (m *Mock) Root() string {
	if m.RootFunc != nil {
		return m.RootFunc()
	}
	return "/repo"
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// NoColor always disables color so output can be compared.
func (m *Mock) NoColor() bool {
	return true
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ application.Application = (*Mock)(nil)
