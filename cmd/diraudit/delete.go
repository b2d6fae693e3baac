package main

import (
	"fmt"

	"github.com/fwojciec/diraudit"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return diraudit.Errorf(diraudit.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Runs.DeleteRun(deps.Ctx, c.RunID); diraudit.ErrorCode(err) == diraudit.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: run %q not found. Use 'diraudit runs' to see archived runs.\n", c.RunID)
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", diraudit.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted run %s\n", c.RunID)
	return nil
}
