package seed

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryWithBackoff_EventualSuccess(t *testing.T) {
	attempts := 0
	err := RetryWithBackoff(context.Background(), nil, func() error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	}, 5, time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryWithBackoff_AllAttemptsFail(t *testing.T) {
	expected := errors.New("persistent error")
	attempts := 0
	err := RetryWithBackoff(context.Background(), nil, func() error {
		attempts++
		return expected
	}, 3, time.Millisecond)

	assert.Equal(t, expected, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryWithBackoff_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	err := RetryWithBackoff(ctx, nil, func() error {
		attempts++
		cancel()
		return errors.New("fail")
	}, 5, time.Hour)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestRetryWithBackoff_InvalidMaxAttempts(t *testing.T) {
	err := RetryWithBackoff(context.Background(), nil, func() error { return nil }, 0, time.Millisecond)
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
}

func TestRetryWithBackoff_UsesLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	attempts := 0
	err := RetryWithBackoff(context.Background(), logger, func() error {
		attempts++
		if attempts == 1 {
			return errors.New("temporary error")
		}
		return nil
	}, 3, time.Millisecond)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "insert failed, will retry")
	assert.Contains(t, buf.String(), "insert succeeded after retry")
}
