package errors_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/agentstation/credits/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Field: "email", Message: "cannot be empty"}
		assert.Equal(t, "validation failed for field email: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "bad template"}
		assert.Equal(t, "validation failed: bad template", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestIdentityConflictError(t *testing.T) {
	t.Run("single conflict", func(t *testing.T) {
		err := pkgerrors.NewIdentityConflictError([]pkgerrors.Conflict{
			{Kind: "email", Key: "a@y.com", Persons: []string{"alice@x.com", "bob@z.com"}},
		})
		assert.Equal(t, `identity conflict: email "a@y.com" claimed by alice@x.com, bob@z.com`, err.Error())
		assert.True(t, pkgerrors.IsConflict(err))
	})

	t.Run("sorted for stable output", func(t *testing.T) {
		err := pkgerrors.NewIdentityConflictError([]pkgerrors.Conflict{
			{Kind: "email", Key: "z@z.com", Persons: []string{"a", "b"}},
			{Kind: "alias", Key: "Al", Persons: []string{"a", "c"}},
			{Kind: "email", Key: "b@b.com", Persons: []string{"a", "b"}},
		})
		assert.Equal(t, "alias", err.Conflicts[0].Kind)
		assert.Equal(t, "b@b.com", err.Conflicts[1].Key)
		assert.Equal(t, "z@z.com", err.Conflicts[2].Key)
		assert.Contains(t, err.Error(), "3 identity conflicts")
	})

	t.Run("wrapped", func(t *testing.T) {
		err := fmt.Errorf("reconcile: %w", pkgerrors.NewIdentityConflictError(nil))
		assert.True(t, pkgerrors.IsConflict(err))
	})
}

func TestHistoryUnavailableError(t *testing.T) {
	base := errors.New("reference not found")
	err := pkgerrors.NewHistoryUnavailableError("git", "no HEAD", base)
	assert.Equal(t, "history unavailable from git: no HEAD: reference not found", err.Error())
	assert.True(t, pkgerrors.IsHistoryUnavailable(err))
	assert.ErrorIs(t, err, base)
}

func TestExistingFilesError(t *testing.T) {
	err := &pkgerrors.ExistingFilesError{Paths: []string{"AUTHORS.md", ".mailmap"}}
	assert.Contains(t, err.Error(), "AUTHORS.md, .mailmap")
	assert.True(t, pkgerrors.IsAlreadyExists(err))
}

func TestCanceledError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pkgerrors.WrapCanceled("update", ctx.Err())
	assert.Equal(t, "update canceled: context canceled", err.Error())
	assert.True(t, pkgerrors.IsCanceled(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name string
		err  *pkgerrors.ParseError
		want string
	}{
		{
			name: "with position",
			err:  &pkgerrors.ParseError{Format: "yaml", File: "registry.yaml", Line: 3, Column: 7, Message: "bad indent"},
			want: "parse error in yaml at registry.yaml:3:7: bad indent",
		},
		{
			name: "file only",
			err:  &pkgerrors.ParseError{Format: "yaml", File: "registry.yaml", Message: "bad indent"},
			want: "parse error in yaml file registry.yaml: bad indent",
		},
		{
			name: "no file",
			err:  &pkgerrors.ParseError{Format: "toml", Message: "bad key"},
			want: "toml parse error: bad key",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestWrapHelpers(t *testing.T) {
	assert.NoError(t, pkgerrors.WrapIO("write", "x", nil))
	assert.NoError(t, pkgerrors.WrapParse("yaml", "x", nil))
	assert.NoError(t, pkgerrors.WrapCanceled("update", nil))

	base := errors.New("permission denied")
	err := pkgerrors.WrapIO("write", "AUTHORS.md", base)
	assert.Equal(t, "IO error during write of AUTHORS.md: permission denied", err.Error())
	assert.ErrorIs(t, err, base)

	var cfgErr *pkgerrors.ConfigError
	err = fmt.Errorf("load: %w", pkgerrors.NewConfigError("config", "bad sort", base))
	assert.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "configuration error in config: bad sort", cfgErr.Error())
}
