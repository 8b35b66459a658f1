package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/otalvaro/escrutinio"
	"github.com/otalvaro/escrutinio/parse"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	parser := deps.Parsers.Get(escrutinio.DocumentTypeE14)
	record, warnings := parser.Parse(parse.SplitLines(string(data)))

	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(out))

	for _, w := range warnings {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", w)
	}
	if record.NeedsAudit() || warnings.Critical() {
		fmt.Fprintln(deps.Stderr, "record needs audit")
	}

	return nil
}
