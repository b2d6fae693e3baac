package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/fwojciec/diraudit"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	filter := diraudit.RunFilter{Limit: c.Limit}
	if c.Roster != "" {
		filter.RosterPath = &c.Roster
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", diraudit.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'diraudit run --db' to archive one.")
		return nil
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tDURATION\tDOCTORS\tRECORDS\tFINGERPRINT\tROSTER")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			r.ID,
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			r.FinishedAt.Sub(r.StartedAt).Round(time.Second),
			r.Doctors,
			r.Records,
			r.Fingerprint,
			r.RosterPath,
		)
	}
	return tw.Flush()
}
