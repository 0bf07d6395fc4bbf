// Package retry wraps fallible operations with bounded exponential backoff.
// Errors are classified as retryable (transient network/backend conditions)
// or fatal; fatal errors and attempt exhaustion propagate immediately.
package retry

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

// Config controls the retry loop
type Config struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultConfig matches the pipeline's standard transient-failure policy
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: time.Second,
		MaxDelay:     10 * time.Second,
		Multiplier:   2,
	}
}

// statusCoder is implemented by HTTP-backed errors that carry a status code
type statusCoder interface {
	HTTPStatusCode() int
}

// IsRetryable classifies an error as a transient condition worth retrying
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	// Network errors
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ETIMEDOUT) {
		return true
	}

	// HTTP-backed errors (storage, outbound APIs)
	var sc statusCoder
	if errors.As(err, &sc) {
		code := sc.HTTPStatusCode()
		if code == 429 || code == 503 {
			return true
		}
	}

	// Backend error strings (store/storage drivers wrap these inconsistently)
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"unavailable", "deadline-exceeded", "timeout", "temporary"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	return false
}

// Do runs op with retries per cfg. Retryable failures sleep
// min(delay*multiplier, maxDelay) between attempts; fatal failures and the
// final attempt's failure return the last error. The operation never runs
// more than cfg.MaxAttempts times regardless of classification.
func Do[T any](ctx context.Context, cfg Config, log *logrus.Logger, name string, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		retryable := IsRetryable(err)
		if !retryable || attempt == cfg.MaxAttempts {
			log.WithFields(logrus.Fields{
				"operation": name,
				"attempts":  attempt,
				"retryable": retryable,
			}).Error(err.Error())
			return zero, err
		}

		log.WithFields(logrus.Fields{
			"operation":   name,
			"attempt":     attempt,
			"maxAttempts": cfg.MaxAttempts,
			"nextRetryIn": delay.String(),
		}).Warn(err.Error())

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return zero, ctx.Err()
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	return zero, lastErr
}
