package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodecError_Error(t *testing.T) {
	tests := []struct {
		name     string
		context  string
		cause    error
		expected string
	}{
		{
			name:     "simple error",
			context:  "reading envelope",
			cause:    errors.New("invalid magic"),
			expected: "reading envelope: invalid magic",
		},
		{
			name:     "directory error",
			context:  "parsing directory",
			cause:    errors.New("count mismatch"),
			expected: "parsing directory: count mismatch",
		},
		{
			name:     "empty context",
			context:  "",
			cause:    errors.New("some error"),
			expected: ": some error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &CodecError{
				Context: tt.context,
				Cause:   tt.cause,
			}
			require.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestWrapError(t *testing.T) {
	tests := []struct {
		name    string
		context string
		cause   error
		wantNil bool
	}{
		{
			name:    "wrap non-nil error",
			context: "reading data",
			cause:   errors.New("IO error"),
			wantNil: false,
		},
		{
			name:    "wrap nil error returns nil",
			context: "some operation",
			cause:   nil,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapError(tt.context, tt.cause)

			if tt.wantNil {
				require.Nil(t, err)
				return
			}

			require.NotNil(t, err)

			var codecErr *CodecError
			ok := errors.As(err, &codecErr)
			require.True(t, ok, "error should be CodecError type")
			require.Equal(t, tt.context, codecErr.Context)
			require.Equal(t, tt.cause, codecErr.Cause)
		})
	}
}

func TestCodecError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	wrapped := WrapError("context", originalErr)

	require.NotNil(t, wrapped)

	unwrapped := errors.Unwrap(wrapped)
	require.Equal(t, originalErr, unwrapped)
}

func TestCodecError_ErrorsIs(t *testing.T) {
	originalErr := errors.New("specific error")
	wrapped := WrapError("first level", originalErr)
	doubleWrapped := WrapError("second level", wrapped)

	require.True(t, errors.Is(doubleWrapped, originalErr))
	require.True(t, errors.Is(wrapped, originalErr))
}

func TestCodecError_ErrorsAs(t *testing.T) {
	originalErr := errors.New("base error")
	wrapped := WrapError("context", originalErr)

	var codecErr *CodecError
	require.True(t, errors.As(wrapped, &codecErr))
	require.Equal(t, "context", codecErr.Context)
	require.Equal(t, originalErr, codecErr.Cause)
}

func TestWrapError_ChainedWrapping(t *testing.T) {
	baseErr := errors.New("base error")
	level1 := WrapError("level 1", baseErr)
	level2 := WrapError("level 2", level1)
	level3 := WrapError("level 3", level2)

	require.NotNil(t, level3)

	errMsg := level3.Error()
	require.Contains(t, errMsg, "level 3")
	require.Contains(t, errMsg, "level 2")

	require.True(t, errors.Is(level3, baseErr))

	var codecErr *CodecError

	require.True(t, errors.As(level3, &codecErr))
	require.Equal(t, "level 3", codecErr.Context)

	unwrapped1 := errors.Unwrap(level3)
	require.True(t, errors.As(unwrapped1, &codecErr))
	require.Equal(t, "level 2", codecErr.Context)

	unwrapped2 := errors.Unwrap(unwrapped1)
	require.True(t, errors.As(unwrapped2, &codecErr))
	require.Equal(t, "level 1", codecErr.Context)

	unwrapped3 := errors.Unwrap(unwrapped2)
	require.Equal(t, baseErr, unwrapped3)
}

func TestWrapError_RealWorldScenarios(t *testing.T) {
	t.Run("file reading error", func(t *testing.T) {
		ioErr := errors.New("unexpected EOF")
		err := WrapError("reading envelope", ioErr)

		require.NotNil(t, err)
		require.Contains(t, err.Error(), "reading envelope")
		require.Contains(t, err.Error(), "unexpected EOF")
		require.True(t, errors.Is(err, ioErr))
	})

	t.Run("parsing error chain", func(t *testing.T) {
		parseErr := errors.New("invalid format")
		dirErr := WrapError("parsing directory", parseErr)
		sir0Err := WrapError("parsing envelope", dirErr)
		fileErr := WrapError("opening file", sir0Err)

		require.NotNil(t, fileErr)
		require.True(t, errors.Is(fileErr, parseErr))

		msg := fileErr.Error()
		require.Contains(t, msg, "opening file")
	})

	t.Run("nil error in chain", func(t *testing.T) {
		var baseErr error
		wrapped := WrapError("some context", baseErr)

		require.Nil(t, wrapped, "wrapping nil should return nil")
	})

	t.Run("sentinel causes are matchable", func(t *testing.T) {
		err := WrapError("parsing envelope", ErrBadMagic)
		require.True(t, errors.Is(err, ErrBadMagic))
		require.False(t, errors.Is(err, ErrBadVarint))
	})
}

func TestCodecError_StructFields(t *testing.T) {
	ctx := "test context"
	cause := errors.New("test cause")

	err := &CodecError{
		Context: ctx,
		Cause:   cause,
	}

	require.Equal(t, ctx, err.Context)
	require.Equal(t, cause, err.Cause)
}

func BenchmarkWrapError(b *testing.B) {
	baseErr := errors.New("base error")

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = WrapError("context", baseErr)
	}
}

func BenchmarkWrapErrorNil(b *testing.B) {
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = WrapError("context", nil)
	}
}

func BenchmarkErrorMessage(b *testing.B) {
	err := WrapError("reading envelope",
		WrapError("parsing directory",
			errors.New("invalid magic")))

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = err.Error()
	}
}
