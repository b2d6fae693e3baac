package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/diraudit"
	"github.com/fwojciec/diraudit/audit"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	roster, err := deps.Roster.LoadRoster(deps.Ctx, c.Roster)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", diraudit.ErrorMessage(err))
		return err
	}
	if len(roster) == 0 {
		fmt.Fprintf(deps.Stderr, "error: roster %s has no doctors\n", c.Roster)
		return diraudit.Errorf(diraudit.EINVALID, "roster %s has no doctors", c.Roster)
	}

	progress := func(event audit.ProgressEvent) {
		switch event.Type {
		case audit.ProgressStarted:
			fmt.Fprintf(deps.Stderr, "Auditing %d doctors (%d directory searches)\n", len(roster), event.Total)
		case audit.ProgressCompleted:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] %s on %s: %d profiles\n",
				event.Completed, event.Total, event.Doctor, event.Directory, event.Records)
		case audit.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] %s on %s failed: %v\n",
				event.Completed, event.Total, event.Doctor, event.Directory, event.Error)
		case audit.ProgressFinished:
		}
	}

	started := time.Now().UTC()
	records, err := deps.Auditor.Audit(deps.Ctx, roster, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error auditing: %v\n", err)
		return err
	}

	if deps.Runs != nil {
		run := &diraudit.Run{
			RosterPath: c.Roster,
			Doctors:    len(roster),
			StartedAt:  started,
			FinishedAt: time.Now().UTC(),
		}
		if err := deps.Runs.CreateRun(deps.Ctx, run, records); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", diraudit.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "Archived run %s\n", run.ID)
	}

	return writeResults(deps, records, c.Output, c.Format)
}
