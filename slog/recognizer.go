package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/otalvaro/escrutinio"
)

// Ensure LoggingRecognizer implements escrutinio.Recognizer.
var _ escrutinio.Recognizer = (*LoggingRecognizer)(nil)

// LoggingRecognizer wraps a Recognizer with per-image logging.
type LoggingRecognizer struct {
	next   escrutinio.Recognizer
	logger *slog.Logger
}

// NewLoggingRecognizer creates a new LoggingRecognizer.
func NewLoggingRecognizer(next escrutinio.Recognizer, logger *slog.Logger) *LoggingRecognizer {
	return &LoggingRecognizer{next: next, logger: logger}
}

// Recognize delegates to the wrapped recognizer and logs the operation.
func (r *LoggingRecognizer) Recognize(ctx context.Context, image []byte) (text string, err error) {
	defer func(begin time.Time) {
		r.logger.Info("text recognition",
			"image_bytes", len(image),
			"text_length", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Recognize(ctx, image)
}
