// Package slog provides logging decorators for escrutinio services.
package slog

import (
	"log/slog"
	"time"

	"github.com/otalvaro/escrutinio"
)

// Ensure LoggingParser implements escrutinio.RecordParser.
var _ escrutinio.RecordParser = (*LoggingParser)(nil)

// LoggingParser wraps a RecordParser with per-page logging.
type LoggingParser struct {
	next   escrutinio.RecordParser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next escrutinio.RecordParser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs the outcome.
func (p *LoggingParser) Parse(lines []string) (*escrutinio.BallotRecord, escrutinio.Warnings) {
	begin := time.Now()
	record, warnings := p.next.Parse(lines)
	p.logger.Info("page parsed",
		"lines", len(lines),
		"page", record.Page,
		"parties", len(record.Parties),
		"warnings", len(warnings),
		"critical", warnings.Critical(),
		"duration", time.Since(begin),
	)
	return record, warnings
}
