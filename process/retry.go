package process

import (
	"context"
	"time"
)

// RecognizeFunc is the signature for a recognition function.
type RecognizeFunc func(ctx context.Context, image []byte) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for recognition retries:
// 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// RecognizeWithRetry attempts recognition with exponential backoff retry
// logic. It retries up to 3 times (4 total attempts) with delays of 1s, 2s,
// 4s. The logger function, if provided, is called for each retry attempt.
func RecognizeWithRetry(ctx context.Context, image []byte, recognize RecognizeFunc, logger LogFunc) (string, error) {
	return RecognizeWithRetryDelays(ctx, image, recognize, logger, DefaultRetryDelays())
}

// RecognizeWithRetryDelays is like RecognizeWithRetry but allows
// configurable delays. This is useful for testing without waiting for real
// delays.
func RecognizeWithRetryDelays(ctx context.Context, image []byte, recognize RecognizeFunc, logger LogFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		text, err := recognize(ctx, image)
		if err == nil {
			return text, nil
		}
		lastErr = err

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		// Check context before sleeping
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if logger != nil {
			logger("  retry recognition (attempt %d): %v", attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
