package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		code ErrorCode
		want string
	}{
		{
			name: "registered save code",
			code: SaveInProgress,
			want: "A save operation with this name is already in progress",
		},
		{
			name: "registered calc code",
			code: CalcConversionUnavailable,
			want: "Currency conversion unavailable, raw amount used",
		},
		{
			name: "unknown code falls back to generic message",
			code: ErrorCode("NOPE_999"),
			want: "An error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetErrorMessage(tt.code))
		})
	}
}

func TestIsValidErrorCode(t *testing.T) {
	assert.True(t, IsValidErrorCode(SaveFailed))
	assert.True(t, IsValidErrorCode(AccrualPostingDuplicate))
	assert.False(t, IsValidErrorCode(ErrorCode("SAVE_999")))
}

func TestAppError_Error(t *testing.T) {
	cause := errors.New("version mismatch")

	err := New(SaveFailed, WithOperation("import_batch"), WithCause(cause))
	assert.Contains(t, err.Error(), "SAVE_002")
	assert.Contains(t, err.Error(), `"import_batch"`)
	assert.Contains(t, err.Error(), "version mismatch")

	bare := New(SaveInProgress)
	assert.Equal(t, "SAVE_001: A save operation with this name is already in progress", bare.Error())
}

func TestAppError_UnwrapAndIs(t *testing.T) {
	cause := errors.New("commit failed")
	err := New(SaveFailed, WithOperation("add_transaction"), WithCause(cause))

	require.ErrorIs(t, err, cause)
	assert.True(t, errors.Is(err, New(SaveFailed)))
	assert.False(t, errors.Is(err, New(SaveInProgress)))

	wrapped := fmt.Errorf("outer: %w", err)
	assert.True(t, errors.Is(wrapped, New(SaveFailed)))
	assert.Equal(t, SaveFailed, CodeOf(wrapped))
	assert.Equal(t, SystemInternalError, CodeOf(errors.New("plain")))
}

func TestAppError_WithMessage(t *testing.T) {
	err := New(ValidationOutOfRange, WithMessage("posting day 42 is not a calendar day"))
	assert.Equal(t, "VALIDATION_004: posting day 42 is not a calendar day", err.Error())
}
