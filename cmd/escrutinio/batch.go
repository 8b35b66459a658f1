package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/otalvaro/escrutinio"
	"github.com/otalvaro/escrutinio/bloom"
	"github.com/otalvaro/escrutinio/fs"
	"github.com/otalvaro/escrutinio/process"
	escslog "github.com/otalvaro/escrutinio/slog"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	pages, err := loadPages(c.Dir)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	if len(pages) == 0 {
		fmt.Fprintf(deps.Stdout, "No pages found in %s\n", c.Dir)
		return nil
	}

	recognizer := deps.Recognizer
	parsers := deps.Parsers
	if c.Verbose {
		logger := slog.New(slog.NewTextHandler(deps.Stderr, nil))
		recognizer = escslog.NewLoggingRecognizer(recognizer, logger)
		parsers = &loggingRegistry{next: parsers, logger: logger}
	}

	processor := &process.Processor{
		Recognizer:  recognizer,
		Parsers:     parsers,
		Records:     deps.Records,
		Seen:        bloom.NewSeenFilter(uint(len(pages)*2), 0.001),
		RateLimiter: process.NewLimiter(c.RPS),
		Concurrency: c.Concurrency,
	}
	if c.OutDir != "" {
		processor.Writer = fs.NewWriter(c.OutDir)
	}

	progress := func(event process.ProgressEvent) {
		switch event.Type {
		case process.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d pages\n", event.Total)
		case process.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  skip %s: duplicate page\n", event.Page)
		case process.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  fail %s: %v\n", event.Page, event.Error)
		}
	}

	result, err := processor.ProcessBatch(deps.Ctx, pages, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error processing: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "  Saved %d records (%d skipped, %d failed, %d need audit)\n",
		result.Saved, result.Skipped, result.Failed, result.Audit)

	return nil
}

// imageExtensions are the file types handed to the OCR engine. Anything
// with a .txt extension is treated as already-recognized text.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
}

// loadPages reads all processable files in dir, in name order.
func loadPages(dir string) ([]process.Page, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var pages []process.Page
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".txt" && !imageExtensions[ext] {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		page := process.Page{Name: entry.Name()}
		if ext == ".txt" {
			page.Text = string(data)
		} else {
			page.Image = data
		}
		pages = append(pages, page)
	}

	return pages, nil
}

// loggingRegistry wraps every parser returned by the underlying registry in
// a logging decorator.
type loggingRegistry struct {
	next   escrutinio.ParserRegistry
	logger *slog.Logger
}

func (r *loggingRegistry) Get(dt escrutinio.DocumentType) escrutinio.RecordParser {
	p := r.next.Get(dt)
	if p == nil {
		return nil
	}
	return escslog.NewLoggingParser(p, r.logger)
}

func (r *loggingRegistry) Register(dt escrutinio.DocumentType, p escrutinio.RecordParser) {
	r.next.Register(dt, p)
}

func (r *loggingRegistry) List() []escrutinio.DocumentType {
	return r.next.List()
}
