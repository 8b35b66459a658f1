package main

import (
	"context"
	"io"

	"github.com/otalvaro/escrutinio"
	"github.com/otalvaro/escrutinio/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	DB         *sqlite.DB
	Parsers    escrutinio.ParserRegistry
	Records    escrutinio.RecordService
	Recognizer escrutinio.Recognizer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Parse ParseCmd `cmd:"" help:"Parse one recognized text file and print the record as JSON"`
	Batch BatchCmd `cmd:"" help:"Process a directory of scanned pages or text files"`
	List  ListCmd  `cmd:"" help:"List stored records"`
	Show  ShowCmd  `cmd:"" help:"Show one stored record as JSON"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	File string `arg:"" help:"Path to a recognized text file (one line per form line)"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	Dir         string  `arg:"" help:"Directory of page images (.png, .jpg, .tif) or recognized text (.txt)"`
	Engine      string  `short:"e" default:"tesseract" enum:"tesseract,gemini" help:"OCR engine for image files"`
	Language    string  `short:"l" default:"spa" help:"Tesseract language code"`
	OutDir      string  `short:"o" help:"Also write one JSON artifact per record under this directory"`
	Concurrency int     `short:"c" default:"4" help:"Concurrent page limit"`
	RPS         float64 `default:"1" help:"Recognition calls per second"`
	Verbose     bool    `short:"v" help:"Log per-page parse and recognition details"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Audit      bool   `help:"Only records flagged for human review"`
	Department string `short:"d" help:"Filter by department code"`
	Table      string `short:"t" help:"Filter by table (mesa) code"`
	Limit      int    `default:"50" help:"Maximum records to list"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Record ID"`
}
