package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/otalvaro/escrutinio"
	"github.com/otalvaro/escrutinio/gemini"
	"github.com/otalvaro/escrutinio/parse"
	"github.com/otalvaro/escrutinio/sqlite"
	"github.com/otalvaro/escrutinio/tesseract"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	RecordService escrutinio.RecordService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("escrutinio"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'escrutinio --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Parsers = parse.NewRegistry()

	// The parse command only needs a parser; everything else uses the
	// record store.
	if cmd != "parse" {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set ESCRUTINIO_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.RecordService = sqlite.NewRecordService(m.DB)
		deps.DB = m.DB
		deps.Records = m.RecordService
	}

	if cmd == "batch" {
		recognizer, err := newRecognizer(ctx, cli.Batch.Engine, cli.Batch.Language, stderr)
		if err != nil {
			return err
		}
		deps.Recognizer = recognizer
	}

	return kongCtx.Run(deps)
}

// newRecognizer builds the OCR backend for the batch command.
func newRecognizer(ctx context.Context, engine, language string, stderr io.Writer) (escrutinio.Recognizer, error) {
	switch engine {
	case "tesseract":
		return tesseract.NewRecognizer(language), nil
	case "gemini":
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, fmt.Errorf("GEMINI_API_KEY not set")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewRecognizer(client), nil
	default:
		return nil, fmt.Errorf("unknown engine %q (want tesseract or gemini)", engine)
	}
}

func defaultDBPath() string {
	if path := os.Getenv("ESCRUTINIO_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "escrutinio.db"
	}
	dir := filepath.Join(home, ".escrutinio")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "escrutinio.db")
}
