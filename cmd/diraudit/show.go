package main

import (
	"fmt"

	"github.com/fwojciec/diraudit"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	status, err := parseStatus(c.NameStatus)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", diraudit.ErrorMessage(err))
		return err
	}

	run, err := deps.Runs.FindRunByID(deps.Ctx, c.RunID)
	if diraudit.ErrorCode(err) == diraudit.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: run %q not found. Use 'diraudit runs' to see archived runs.\n", c.RunID)
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", diraudit.ErrorMessage(err))
		return err
	}

	records, err := deps.Runs.FindRecords(deps.Ctx, run.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", diraudit.ErrorMessage(err))
		return err
	}

	filter := diraudit.RecordFilter{NameStatus: status}
	if c.Directory != "" {
		dir := diraudit.DirectoryID(c.Directory)
		filter.Directory = &dir
	}
	records = diraudit.FilterRecords(records, filter)

	if c.Output == "" && (c.Format == "" || c.Format == "text") {
		fmt.Fprintf(deps.Stdout, "Run %s (%s, %s)\n\n", run.ID, run.RosterPath, run.StartedAt.Local().Format("2006-01-02 15:04"))
	}
	return writeResults(deps, records, c.Output, c.Format)
}
