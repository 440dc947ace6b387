// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all commands.
package emoji

const (
	// Success represents successful completion of an operation.
	Success = "✓"

	// Error represents a failed operation.
	Error = "✗"

	// Warning represents a non-fatal issue, such as an alias-name collision.
	Warning = "!"

	// Info represents informational messages.
	Info = "i"

	// Unchanged marks an artifact that was already up to date.
	Unchanged = "="
)
