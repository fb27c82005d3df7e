package camunda

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "retention-workers/internal/common/errors"
)

var fastRetry = &RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

func TestRetry_SucceedsAfterTransientErrors(t *testing.T) {
	attempts := 0
	err := Retry(context.Background(), fastRetry, "dial", func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("dial tcp 127.0.0.1:26500: connection refused")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetry_StopsOnPermanentError(t *testing.T) {
	attempts := 0
	err := Retry(context.Background(), fastRetry, "dial", func(context.Context) error {
		attempts++
		return errors.New("password authentication failed")
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.Contains(t, err.Error(), "dial failed")
}

func TestRetry_GivesUp(t *testing.T) {
	attempts := 0
	err := Retry(context.Background(), fastRetry, "ping", func(context.Context) error {
		attempts++
		return errors.New("i/o timeout")
	})

	require.Error(t, err)
	assert.Equal(t, fastRetry.MaxRetries+1, attempts)
}

func TestRetry_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := &RetryConfig{MaxRetries: 5, BaseDelay: time.Hour, MaxDelay: time.Hour}

	err := Retry(ctx, cfg, "ping", func(context.Context) error {
		cancel()
		return errors.New("service unavailable")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(errors.New("rpc error: code = Unavailable")))
	assert.True(t, IsTransient(errors.New("context deadline exceeded")))
	assert.True(t, IsTransient(errors.New("lookup zeebe: no such host")))
	assert.False(t, IsTransient(errors.New("invalid job type")))
}

func TestMapZeebeError(t *testing.T) {
	timeout := MapZeebeError(errors.New("context deadline exceeded"), "topology")
	assert.Equal(t, apperrors.ErrCodeBrokerTimeout, apperrors.AsStandardError(timeout).Code)

	down := MapZeebeError(errors.New("connection refused"), "topology")
	stdErr := apperrors.AsStandardError(down)
	assert.Equal(t, apperrors.ErrCodeBrokerUnavailable, stdErr.Code)
	assert.Contains(t, stdErr.Details, "zeebe operation 'topology' failed")
}
