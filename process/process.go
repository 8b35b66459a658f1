// Package process provides batch processing orchestration for tally-sheet
// pages. It coordinates text recognition, parsing, deduplication, and
// storage of the resulting ballot records.
package process

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/otalvaro/escrutinio"
	"github.com/otalvaro/escrutinio/bloom"
	"golang.org/x/sync/errgroup"
)

// Page is one unit of work: either raw image bytes to be recognized, or
// already-recognized text. When Text is non-empty the recognizer is skipped.
type Page struct {
	Name  string
	Image []byte
	Text  string
}

// Processor orchestrates batch processing of tally-sheet pages.
type Processor struct {
	Recognizer   escrutinio.Recognizer
	Parsers      escrutinio.ParserRegistry
	DocumentType escrutinio.DocumentType
	Records      escrutinio.RecordService
	Writer       escrutinio.RecordWriter
	Seen         *bloom.SeenFilter
	RateLimiter  *Limiter
	Concurrency  int
	RetryDelays  []time.Duration
}

// Result holds the outcome of a batch run.
type Result struct {
	Saved   int
	Skipped int
	Failed  int
	Audit   int
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Page      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single page.
type pageResult struct {
	position int
	page     string
	record   *escrutinio.StoredRecord
	skipped  bool
	err      error
}

// ProcessBatch processes all pages and persists the resulting records.
// The progress callback, if provided, receives events as processing proceeds.
func (p *Processor) ProcessBatch(ctx context.Context, pages []Page, progress ProgressFunc) (*Result, error) {
	docType := p.DocumentType
	if docType == "" {
		docType = escrutinio.DocumentTypeE14
	}
	parser := p.Parsers.Get(docType)
	if parser == nil {
		return nil, escrutinio.Errorf(escrutinio.EINVALID, "no parser registered for document type %q", docType)
	}

	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	resultCh := make(chan pageResult, len(pages))

	var completed atomic.Int64
	total := len(pages)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, page := range pages {
			i, page := i, page
			g.Go(func() error {
				resultCh <- p.processPage(gctx, i, page, parser)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results in order
	results := make([]pageResult, len(pages))
	var failedCount, skippedCount int
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		eventType := ProgressCompleted
		switch {
		case result.err != nil:
			failedCount++
			eventType = ProgressFailed
		case result.skipped:
			skippedCount++
			eventType = ProgressSkipped
		}
		if progress != nil {
			progress(ProgressEvent{
				Type:      eventType,
				Completed: int(completed.Load()),
				Total:     total,
				Page:      result.page,
				Error:     result.err,
			})
		}
	}

	// Persist surviving records and accumulate stats
	var savedCount, auditCount int
	for _, result := range results {
		if result.err != nil || result.skipped {
			continue
		}

		if p.Records != nil {
			if err := p.Records.CreateRecord(ctx, result.record); err != nil {
				failedCount++
				continue
			}
		}
		if p.Writer != nil {
			if err := p.Writer.WriteRecord(ctx, result.record); err != nil {
				failedCount++
				continue
			}
		}

		savedCount++
		if result.record.NeedsAudit {
			auditCount++
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return &Result{
		Saved:   savedCount,
		Skipped: skippedCount,
		Failed:  failedCount,
		Audit:   auditCount,
	}, nil
}

// processPage recognizes and parses a single page.
func (p *Processor) processPage(ctx context.Context, position int, page Page, parser escrutinio.RecordParser) pageResult {
	result := pageResult{
		position: position,
		page:     page.Name,
	}

	text := page.Text
	if text == "" {
		if p.RateLimiter != nil {
			if err := p.RateLimiter.Wait(ctx); err != nil {
				result.err = err
				return result
			}
		}

		delays := p.RetryDelays
		if delays == nil {
			delays = DefaultRetryDelays()
		}
		recognized, err := RecognizeWithRetryDelays(ctx, page.Image, p.Recognizer.Recognize, nil, delays)
		if err != nil {
			result.err = err
			return result
		}
		text = recognized
	}

	hash := ComputeHash(text)
	if p.Seen != nil && p.Seen.Observe(hash) {
		result.skipped = true
		return result
	}

	record, warnings := parser.Parse(splitLines(text))

	result.record = &escrutinio.StoredRecord{
		SourceHash: hash,
		Record:     record,
		Warnings:   warnings,
		NeedsAudit: record.NeedsAudit() || warnings.Critical(),
	}
	return result
}

// splitLines splits recognized text into trimmed lines, preserving blank
// lines because they terminate table bodies.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}
