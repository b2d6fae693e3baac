package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/diraudit"
	main "github.com/fwojciec/diraudit/cmd/diraudit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"run", "directories", "runs", "show", "delete"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	err := main.NewMain().Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "Usage:")
	assert.Contains(t, stdout.String(), "Flags:")
}

func TestRunCmd_Config(t *testing.T) {
	t.Parallel()

	t.Run("defaults match the default configuration", func(t *testing.T) {
		t.Parallel()

		cli := &main.CLI{}
		parser, err := kong.New(cli, kong.Exit(func(int) {}))
		require.NoError(t, err)
		_, err = parser.Parse([]string{"run", "roster.csv"})
		require.NoError(t, err)

		assert.Equal(t, diraudit.DefaultConfig(), cli.Run.Config())
	})

	t.Run("flags override the defaults", func(t *testing.T) {
		t.Parallel()

		cli := &main.CLI{}
		parser, err := kong.New(cli, kong.Exit(func(int) {}))
		require.NoError(t, err)
		_, err = parser.Parse([]string{
			"run", "roster.csv",
			"-d", "vitals.com", "-d", "webmd.com",
			"--max-results", "5",
			"-c", "4",
			"--name-threshold", "0.8",
			"--page-timeout", "30s",
		})
		require.NoError(t, err)

		cfg := cli.Run.Config()
		assert.Equal(t, []string{"vitals.com", "webmd.com"}, cfg.Directories)
		assert.Equal(t, 5, cfg.MaxResults)
		assert.Equal(t, 4, cfg.Concurrency)
		assert.InDelta(t, 0.8, cfg.Thresholds.Name, 1e-9)
		assert.InDelta(t, 0.6, cfg.Thresholds.Address, 1e-9)
		assert.Equal(t, 30*time.Second, cfg.PageTimeout)
	})
}
