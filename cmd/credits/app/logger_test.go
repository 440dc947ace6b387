package app

import (
	"testing"
)

// TestDetermineLogLevel tests the log level precedence logic.
func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		env      string
		expected string
	}{
		{
			name:     "default level when no flags set",
			config:   &Config{},
			expected: "info",
		},
		{
			name:     "verbose flag sets debug",
			config:   &Config{Verbose: true},
			expected: "debug",
		},
		{
			name:     "quiet flag sets warn",
			config:   &Config{Quiet: true},
			expected: "warn",
		},
		{
			name:     "both flags prefer quiet",
			config:   &Config{Verbose: true, Quiet: true},
			expected: "warn",
		},
		{
			name:     "explicit log-level overrides verbose",
			config:   &Config{LogLevel: "error", Verbose: true},
			expected: "error",
		},
		{
			name:     "invalid log-level falls back to info",
			config:   &Config{LogLevel: "loud"},
			expected: "info",
		},
		{
			name:     "LOG_LEVEL used without flags",
			config:   &Config{},
			env:      "trace",
			expected: "trace",
		},
		{
			name:     "verbose beats LOG_LEVEL",
			config:   &Config{Verbose: true},
			env:      "error",
			expected: "debug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.env)
			if got := determineLogLevel(tt.config); got != tt.expected {
				t.Errorf("determineLogLevel() = %s, want %s", got, tt.expected)
			}
		})
	}
}

// TestValidateLogLevel tests the accepted level names.
func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"trace", "debug", "info", "warn", "error"} {
		if got := validateLogLevel(level); got != level {
			t.Errorf("validateLogLevel(%q) = %s", level, got)
		}
	}
	if got := validateLogLevel("WARN"); got != "info" {
		t.Errorf("validateLogLevel(WARN) = %s, want info", got)
	}
}

// TestNewLogger verifies the logger honors the resolved level.
func TestNewLogger(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	logger := NewLogger(&Config{Quiet: true, LogOutput: "discard"})
	if logger.GetLevel().String() != "warn" {
		t.Errorf("level = %s, want warn", logger.GetLevel())
	}
}
