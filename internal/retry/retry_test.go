package retry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
	}
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

type httpError struct {
	code int
}

func (e *httpError) Error() string       { return fmt.Sprintf("status %d", e.code) }
func (e *httpError) HTTPStatusCode() int { return e.code }

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o wait" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

var _ net.Error = timeoutError{}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil", nil, false},
		{"net timeout", timeoutError{}, true},
		{"dns failure", &net.DNSError{Err: "no such host"}, true},
		{"conn reset", syscall.ECONNRESET, true},
		{"conn timed out", syscall.ETIMEDOUT, true},
		{"http 429", &httpError{429}, true},
		{"http 503", &httpError{503}, true},
		{"http 404", &httpError{404}, false},
		{"http 500", &httpError{500}, false},
		{"unavailable marker", errors.New("backend unavailable"), true},
		{"deadline marker", errors.New("deadline-exceeded"), true},
		{"timeout marker", errors.New("operation timeout"), true},
		{"temporary marker", errors.New("temporary failure"), true},
		{"plain error", errors.New("validation failed"), false},
		{"wrapped reset", fmt.Errorf("upload: %w", syscall.ECONNRESET), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.retryable, IsRetryable(tc.err))
		})
	}
}

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	result, err := Do(context.Background(), testConfig(), testLogger(), "op", func(ctx context.Context) (string, error) {
		attempts++
		if attempts < 3 {
			return "", errors.New("backend unavailable")
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, attempts)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	attempts := 0
	transient := errors.New("temporary failure")
	_, err := Do(context.Background(), testConfig(), testLogger(), "op", func(ctx context.Context) (int, error) {
		attempts++
		return 0, transient
	})
	require.ErrorIs(t, err, transient)
	assert.Equal(t, 3, attempts)
}

func TestDo_FatalErrorRunsOnce(t *testing.T) {
	attempts := 0
	fatal := errors.New("validation failed")
	_, err := Do(context.Background(), testConfig(), testLogger(), "op", func(ctx context.Context) (int, error) {
		attempts++
		return 0, fatal
	})
	require.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, attempts)
}

func TestDo_FirstAttemptSuccessSkipsDelay(t *testing.T) {
	start := time.Now()
	result, err := Do(context.Background(), testConfig(), testLogger(), "op", func(ctx context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestDo_ContextCancellationStopsRetries(t *testing.T) {
	cfg := testConfig()
	cfg.InitialDelay = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	done := make(chan error, 1)
	go func() {
		_, err := Do(ctx, cfg, testLogger(), "op", func(ctx context.Context) (int, error) {
			attempts++
			return 0, errors.New("temporary failure")
		})
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, attempts)
	case <-time.After(time.Second):
		t.Fatal("retry loop did not observe cancellation")
	}
}
