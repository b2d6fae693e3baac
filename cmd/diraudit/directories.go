package main

import (
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/fwojciec/diraudit"
)

// Run executes the directories command.
func (c *DirectoriesCmd) Run(deps *Dependencies) error {
	specific := deps.Extractors.Directories()

	cfg := diraudit.DefaultConfig()
	dirs := cfg.DirectoryIDs()
	for _, d := range specific {
		if !slices.Contains(dirs, d) {
			dirs = append(dirs, d)
		}
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DIRECTORY\tDEFAULT\tEXTRACTOR")
	for _, d := range dirs {
		extractor := "generic"
		if slices.Contains(specific, d) {
			extractor = "format-specific"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", d, yesNo(slices.Contains(diraudit.DefaultDirectories, d)), extractor)
	}
	return tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
