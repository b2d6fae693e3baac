package main

import (
	"context"
	"io"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/diraudit"
	"github.com/fwojciec/diraudit/audit"
	"github.com/fwojciec/diraudit/fs"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Roster     diraudit.RosterLoader
	Extractors diraudit.ExtractorRegistry
	Runs       diraudit.RunService
	Auditor    *audit.Auditor

	// Writers maps extensions such as ".csv" to result writers.
	Writers  map[string]diraudit.ResultWriter
	Exporter *fs.Exporter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  kong.ConfigFlag `help:"Load flag defaults from a JSON file."`
	Verbose bool            `short:"v" env:"DIRAUDIT_VERBOSE" help:"Enable debug logging"`
	DB      string          `name:"db" env:"DIRAUDIT_DB" help:"SQLite database for archived runs"`

	Run         RunCmd         `cmd:"" help:"Audit a roster against medical directories"`
	Directories DirectoriesCmd `cmd:"" help:"List default directories and their extractors"`
	Runs        RunsCmd        `cmd:"" help:"List archived runs"`
	Show        ShowCmd        `cmd:"" help:"Show the results of an archived run"`
	Delete      DeleteCmd      `cmd:"" help:"Delete an archived run"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Roster string `arg:"" help:"Roster file (.csv or .xlsx) with Name, Location and Website columns"`
	Output string `short:"o" help:"Write results to FILE (.csv, .xlsx or .json)"`
	Format string `enum:"text,csv,xlsx,json" default:"text" help:"Format written to stdout when no output file is given (text, csv, xlsx, json)"`

	Directories      []string      `short:"d" name:"directory" env:"DIRAUDIT_DIRECTORIES" help:"Directory domain to search (repeatable; defaults to the built-in list)"`
	MaxResults       int           `default:"3" help:"Search results checked per directory"`
	Concurrency      int           `short:"c" default:"1" help:"Doctor and directory pairs audited in parallel"`
	NameThreshold    float64       `default:"0.7" help:"Minimum similarity for a name match"`
	AddressThreshold float64       `default:"0.6" help:"Minimum similarity for an address match"`
	PageTimeout      time.Duration `default:"15s" help:"Timeout per page load"`
	RenderDelay      time.Duration `default:"2s" help:"Wait after page load for scripts to render"`
	SearchDelay      time.Duration `default:"1s" help:"Minimum interval between search queries"`
	FetchRate        float64       `default:"1" help:"Page fetches per second per directory"`
	NoBrowser        bool          `help:"Fetch static HTML instead of rendering with Chrome"`
	RespectRobots    bool          `help:"Skip profile pages disallowed by robots.txt"`

	APIKey   string `name:"api-key" env:"DIRAUDIT_API_KEY" help:"Google Custom Search API key"`
	EngineID string `name:"engine-id" env:"DIRAUDIT_ENGINE_ID" help:"Google Custom Search engine ID"`
}

// Config returns the audit configuration selected by the flags.
func (c *RunCmd) Config() diraudit.Config {
	cfg := diraudit.DefaultConfig()
	if len(c.Directories) > 0 {
		cfg.Directories = c.Directories
	}
	cfg.MaxResults = c.MaxResults
	cfg.Concurrency = c.Concurrency
	cfg.Thresholds = diraudit.Thresholds{
		Name:    c.NameThreshold,
		Address: c.AddressThreshold,
	}
	cfg.PageTimeout = c.PageTimeout
	cfg.RenderDelay = c.RenderDelay
	cfg.SearchDelay = c.SearchDelay
	cfg.FetchRate = c.FetchRate
	return cfg
}

// DirectoriesCmd is the "directories" subcommand.
type DirectoriesCmd struct{}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Roster string `help:"Only runs of this roster path"`
	Limit  int    `short:"n" default:"20" help:"Maximum runs to list"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	RunID      string `arg:"" name:"run-id" help:"Archived run ID"`
	Directory  string `help:"Only records from this directory"`
	NameStatus string `help:"Only records whose name comparison is Match, Mismatch or Missing"`
	Output     string `short:"o" help:"Write results to FILE (.csv, .xlsx or .json)"`
	Format     string `enum:"text,csv,xlsx,json" default:"text" help:"Format written to stdout when no output file is given (text, csv, xlsx, json)"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	RunID string `arg:"" name:"run-id" help:"Archived run ID"`
	Force bool   `help:"Confirm deletion"`
}
