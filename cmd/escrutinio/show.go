package main

import (
	"encoding/json"
	"fmt"

	"github.com/otalvaro/escrutinio"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	record, err := deps.Records.FindRecordByID(deps.Ctx, c.ID)
	if err != nil {
		if escrutinio.ErrorCode(err) == escrutinio.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: record %q not found. Use 'escrutinio list' to see stored records.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", escrutinio.ErrorMessage(err))
		}
		return err
	}

	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(out))

	return nil
}
