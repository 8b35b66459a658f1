package main

import (
	"fmt"

	"github.com/otalvaro/escrutinio"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := escrutinio.RecordFilter{Limit: c.Limit}
	if c.Audit {
		needsAudit := true
		filter.NeedsAudit = &needsAudit
	}
	if c.Department != "" {
		filter.Department = &c.Department
	}
	if c.Table != "" {
		filter.Table = &c.Table
	}

	records, err := deps.Records.FindRecords(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", escrutinio.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No records found. Use 'escrutinio batch' to process pages.")
		return nil
	}

	for _, r := range records {
		audit := " "
		if r.NeedsAudit {
			audit = "!"
		}
		fmt.Fprintf(deps.Stdout, "%s %s  dept=%s mesa=%s page=%s  %s\n",
			audit, r.ID, r.Record.Geo.Department, r.Record.Geo.Table, r.Record.Page, r.ParsedAt)
	}

	return nil
}
