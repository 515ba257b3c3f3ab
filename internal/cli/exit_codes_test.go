package cli

import (
	"errors"
	"fmt"
	"testing"

	clierrors "github.com/ariel-frischer/sdk-lints/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want int
	}{
		"nil is success":      {err: nil, want: ExitSuccess},
		"exit error code":     {err: NewExitError(ExitLintFailed), want: ExitLintFailed},
		"wrapped exit error":  {err: fmt.Errorf("ctx: %w", &ExitError{Code: ExitEnvironment}), want: ExitEnvironment},
		"argument error":      {err: clierrors.New(clierrors.Argument, "bad"), want: ExitInvalidArguments},
		"input error":         {err: clierrors.New(clierrors.Input, "bad"), want: ExitInvalidInput},
		"configuration error": {err: clierrors.New(clierrors.Configuration, "bad"), want: ExitInvalidInput},
		"environment error":   {err: clierrors.New(clierrors.Environment, "bad"), want: ExitEnvironment},
		"runtime error":       {err: clierrors.New(clierrors.Runtime, "bad"), want: ExitLintFailed},
		"plain error":         {err: errors.New("boom"), want: ExitLintFailed},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestExitErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "exit code 4", NewExitError(4).Error())

	inner := errors.New("inner")
	err := &ExitError{Code: 1, Err: inner}
	assert.Equal(t, "inner", err.Error())
	assert.ErrorIs(t, err, inner)
}
