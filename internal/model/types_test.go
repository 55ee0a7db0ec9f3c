package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStatus_String verifies that Status values produce the expected string
// representations for log output and JSON serialization.
func TestStatus_String(t *testing.T) {
	tests := []struct {
		status   Status
		expected string
	}{
		{StatusOK, "ok"},
		{StatusEmptyName, "emptyName"},
		{StatusInvalidNpmName, "invalidNpmName"},
		{StatusAlreadyExistsOnNpm, "alreadyExistsOnNpm"},
		{StatusDirAlreadyExists, "dirAlreadyExists"},
		{StatusCouldNotClone, "couldNotClone"},
		{StatusUnknownError, "unknownError"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.String())
			assert.True(t, tt.status.IsValid())
		})
	}

	assert.False(t, Status("unknown").IsValid())
	assert.False(t, Status("").IsValid())
}

// TestStatus_ExitCode checks the ok <=> 0 invariant.
func TestStatus_ExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, StatusOK.ExitCode())

	for _, s := range []Status{
		StatusEmptyName, StatusInvalidNpmName, StatusAlreadyExistsOnNpm,
		StatusDirAlreadyExists, StatusCouldNotClone, StatusUnknownError,
	} {
		assert.Equal(t, ExitGeneralError, s.ExitCode(), "status %s", s)
	}
}

// TestParseStatus verifies string-to-status conversion,
// including case normalization and error cases.
func TestParseStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected Status
		hasError bool
	}{
		{"ok", StatusOK, false},
		{"OK", StatusOK, false},
		{"couldnotclone", StatusCouldNotClone, false},
		{"dirAlreadyExists", StatusDirAlreadyExists, false},
		{"unknown", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseStatus(tt.input)
			if tt.hasError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestProjectResult_SetStatus(t *testing.T) {
	r := &ProjectResult{}

	r.SetStatus(StatusCouldNotClone)
	assert.Equal(t, StatusCouldNotClone, r.Status)
	assert.Equal(t, ExitGeneralError, r.ExitCode)

	r.SetStatus(StatusOK)
	assert.Equal(t, StatusOK, r.Status)
	assert.Equal(t, ExitSuccess, r.ExitCode)
}

func TestProjectRequest_CloneID(t *testing.T) {
	r := &ProjectRequest{Owner: "octo", Template: "starter"}
	assert.Equal(t, "octo/starter", r.CloneID())
}

// TestCLIError verifies the custom error type used for exit code mapping.
func TestCLIError(t *testing.T) {
	t.Run("simple error", func(t *testing.T) {
		err := NewCLIError(ExitGeneralError, "no template configured")
		assert.Equal(t, ExitGeneralError, err.Code)
		assert.Equal(t, "no template configured", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("wrapped error", func(t *testing.T) {
		inner := errors.New("permission denied")
		err := WrapCLIError(ExitGeneralError, "failed to load configuration", inner)
		assert.Equal(t, ExitGeneralError, err.Code)
		assert.Contains(t, err.Error(), "permission denied")
		assert.Equal(t, inner, err.Unwrap())
	})

	// Verify errors.Is works with unwrapped errors (Go 1.13+ error chain).
	t.Run("errors.Is chain", func(t *testing.T) {
		inner := errors.New("permission denied")
		err := WrapCLIError(ExitGeneralError, "failed to load configuration", inner)
		assert.True(t, errors.Is(err, inner))
	})
}
